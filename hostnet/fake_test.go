package hostnet

import (
	"net/netip"
	"testing"
)

var _ LinkManager = (*NetlinkManager)(nil)

func TestFakeLinks(t *testing.T) {
	f := NewFakeLinks("wlan0")

	if !f.LinkExists("wlan0") || f.LinkExists("wlan0_ap") {
		t.Fatal("unexpected link presence")
	}

	p := netip.MustParsePrefix("192.168.4.1/24")
	for range 2 {
		if err := f.AssignAddress("wlan0", p); err != nil {
			t.Fatalf("AssignAddress() error = %v", err)
		}
	}
	if got := f.Get("wlan0").Addrs; len(got) != 1 || got[0] != p {
		t.Errorf("Addrs = %v, want [%v]", got, p)
	}

	if err := f.SetUp("wlan1"); err == nil {
		t.Error("SetUp() on missing link returned nil error")
	}
}
