package version

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReleaseTagFromVer(t *testing.T) {
	tests := map[string]struct {
		ver  string
		want string
	}{
		"release":      {ver: "0.3.1", want: "v0.3.1"},
		"v prefix":     {ver: "v1.2.0", want: "v1.2.0"},
		"two segments": {ver: "1.4", want: "v1.4.0"},
		"dev build":    {ver: "0.0.0", want: ""},
		"prerelease":   {ver: "0.4.0-rc1", want: ""},
		"garbage":      {ver: "not-a-version", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, releaseTagFromVer(tt.ver)); diff != "" {
				t.Errorf("releaseTagFromVer(%q) mismatch (-want +got):\n%s", tt.ver, diff)
			}
		})
	}
}
