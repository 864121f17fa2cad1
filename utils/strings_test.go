package utils

import "testing"

func TestStripNonPrintChars(t *testing.T) {
	if got := StripNonPrintChars("my\x1b[Anet\r"); got != "my[Anet" {
		t.Errorf("StripNonPrintChars() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"wlp0s20f3_ap", 15, "wlp0s20f3_ap"},
		{"wlx00c0ca9abcde", 12, "wlx00c0ca9ab"},
		{"", 15, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
