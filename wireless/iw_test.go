package wireless

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	aperrors "github.com/srl-labs/apsetup/errors"
	apexec "github.com/srl-labs/apsetup/exec"
	"github.com/srl-labs/apsetup/hostnet"
)

const iwDevTwoRadios = `phy#1
	Interface wlx00c0ca9abcde
		ifindex 5
		wdev 0x100000001
		addr 00:c0:ca:9a:bc:de
		type managed
		txpower 20.00 dBm
phy#0
	Unnamed/non-netdev interface
		wdev 0x2
		addr dc:a6:32:00:00:01
		type P2P-device
	Interface wlan0
		ifindex 3
		wdev 0x1
		addr dc:a6:32:00:00:00
		ssid homenet
		type managed
		channel 36 (5180 MHz), width: 80 MHz, center1: 5210 MHz
`

func TestParseIwDev(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{
			name: "two radios",
			out:  iwDevTwoRadios,
			want: []string{"wlx00c0ca9abcde", "wlan0"},
		},
		{
			name: "no wireless devices",
			out:  "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := cmp.Diff(tt.want, ParseIwDev(tt.out)); d != "" {
				t.Errorf("ParseIwDev() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	ctx := context.Background()

	t.Run("first present interface", func(t *testing.T) {
		r := apexec.NewRecorder().On("iw dev", apexec.Response{Stdout: iwDevTwoRadios})

		got, err := Discover(ctx, r, hostnet.NewFakeLinks("wlan0", "wlx00c0ca9abcde"))
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if got != "wlx00c0ca9abcde" {
			t.Errorf("Discover() = %q, want wlx00c0ca9abcde", got)
		}
	})

	t.Run("skips interfaces missing from the link table", func(t *testing.T) {
		r := apexec.NewRecorder().On("iw dev", apexec.Response{Stdout: iwDevTwoRadios})

		got, err := Discover(ctx, r, hostnet.NewFakeLinks("wlan0"))
		if err != nil || got != "wlan0" {
			t.Errorf("Discover() = %q, %v; want wlan0", got, err)
		}
	})

	t.Run("skips AP interface from a previous run", func(t *testing.T) {
		out := `phy#0
	Interface wlan0_ap
		ifindex 7
		wdev 0x3
		addr dc:a6:32:00:00:02
		ssid apsetup
		type AP
	Interface wlan0
		ifindex 3
		wdev 0x1
		addr dc:a6:32:00:00:00
		type managed
`
		r := apexec.NewRecorder().On("iw dev", apexec.Response{Stdout: out})
		links := hostnet.NewFakeLinks("wlan0", "wlan0_ap")

		got, err := Discover(ctx, r, links)
		if err != nil || got != "wlan0" {
			t.Fatalf("Discover() = %q, %v; want wlan0", got, err)
		}

		if ap := CreateAPInterface(ctx, r, links, got); ap != "wlan0_ap" {
			t.Errorf("CreateAPInterface() = %q, want wlan0_ap", ap)
		}
		if len(r.CommandsWithPrefix("iw dev wlan0 interface add")) != 0 {
			t.Error("existing AP interface was recreated")
		}
	})

	t.Run("none found", func(t *testing.T) {
		r := apexec.NewRecorder()

		_, err := Discover(ctx, r, hostnet.NewFakeLinks("eth0"))
		if !errors.Is(err, aperrors.ErrNoWirelessInterface) {
			t.Errorf("Discover() error = %v, want ErrNoWirelessInterface", err)
		}
	})

	t.Run("iw fails", func(t *testing.T) {
		r := apexec.NewRecorder().On("iw dev", apexec.Response{ReturnCode: 237, Stderr: "nl80211 not found."})

		_, err := Discover(ctx, r, hostnet.NewFakeLinks())
		if !errors.Is(err, aperrors.ErrNoWirelessInterface) {
			t.Errorf("Discover() error = %v, want ErrNoWirelessInterface", err)
		}
	})
}

func TestCreateAPInterface(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		r := apexec.NewRecorder()

		got := CreateAPInterface(ctx, r, hostnet.NewFakeLinks("wlan0"), "wlan0")
		if got != "wlan0_ap" {
			t.Errorf("CreateAPInterface() = %q, want wlan0_ap", got)
		}
		want := []string{"iw dev wlan0 interface add wlan0_ap type __ap"}
		if d := cmp.Diff(want, r.Commands()); d != "" {
			t.Errorf("commands mismatch (-want +got):\n%s", d)
		}
	})

	t.Run("falls back to the physical interface", func(t *testing.T) {
		r := apexec.NewRecorder().On("iw dev wlan0 interface add", apexec.Response{
			ReturnCode: 161,
			Stderr:     "command failed: Operation not supported (-95)",
		})

		if got := CreateAPInterface(ctx, r, hostnet.NewFakeLinks("wlan0"), "wlan0"); got != "wlan0" {
			t.Errorf("CreateAPInterface() = %q, want wlan0", got)
		}
	})

	t.Run("already exists", func(t *testing.T) {
		r := apexec.NewRecorder()

		if got := CreateAPInterface(ctx, r, hostnet.NewFakeLinks("wlan0", "wlan0_ap"), "wlan0"); got != "wlan0_ap" {
			t.Errorf("CreateAPInterface() = %q, want wlan0_ap", got)
		}
		if len(r.Commands()) != 0 {
			t.Errorf("unexpected commands: %v", r.Commands())
		}
	})

	t.Run("long names are truncated", func(t *testing.T) {
		if got := APInterfaceName("wlx00c0ca9abcde"); got != "wlx00c0ca9ab_ap" {
			t.Errorf("APInterfaceName() = %q", got)
		}
	})
}
