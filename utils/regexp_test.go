package utils

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetRegexpCaptureGroups(t *testing.T) {
	tests := map[string]struct {
		pattern string
		search  string
		want    map[string]string
		wantErr bool
	}{
		"iw interface line": {
			pattern: `^\s*Interface\s+(?P<name>\S+)\s*$`,
			search:  "\tInterface wlan0",
			want:    map[string]string{"name": "wlan0"},
		},
		"unnamed groups are skipped": {
			pattern: `^(?P<key>\w+)=(\S+)$`,
			search:  "DAEMON_CONF=/etc/hostapd/hostapd.conf",
			want:    map[string]string{"key": "DAEMON_CONF"},
		},
		"no named groups": {
			pattern: `^(\w+)$`,
			search:  "wlan0",
			want:    map[string]string{},
		},
		"no match": {
			pattern: `^\s*Interface\s+(?P<name>\S+)\s*$`,
			search:  "phy#0",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := GetRegexpCaptureGroups(regexp.MustCompile(tt.pattern), tt.search)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetRegexpCaptureGroups() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("capture groups mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
