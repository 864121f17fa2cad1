package iptables

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	apexec "github.com/srl-labs/apsetup/exec"
	"github.com/srl-labs/apsetup/firewall/definitions"
)

var _ definitions.Firewall = (*IpTablesClient)(nil)

func TestInstallRules(t *testing.T) {
	// every check fails: no rule is present yet
	r := apexec.NewRecorder().On("iptables -t nat -C", apexec.Response{ReturnCode: 1}).
		On("iptables -t filter -C", apexec.Response{ReturnCode: 1})

	c := NewIpTablesClient(r, filepath.Join(t.TempDir(), "modules"))
	if err := c.InstallRules(context.Background(), definitions.NATRules("eth0", "wlan0_ap")); err != nil {
		t.Fatalf("InstallRules() error = %v", err)
	}

	want := []string{
		"iptables -t nat -A POSTROUTING -o eth0 -j MASQUERADE",
		"iptables -t filter -A FORWARD -i eth0 -o wlan0_ap -m state --state RELATED,ESTABLISHED -j ACCEPT",
		"iptables -t filter -A FORWARD -i wlan0_ap -o eth0 -j ACCEPT",
	}
	var got []string
	for _, c := range r.Commands() {
		if strings.Contains(c, " -A ") {
			got = append(got, c)
		}
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("installed rules mismatch (-want +got):\n%s", d)
	}
}

func TestInstallRulesSkipsExisting(t *testing.T) {
	// masquerade rule present, forward rules missing
	r := apexec.NewRecorder().On("iptables -t filter -C", apexec.Response{ReturnCode: 1})

	c := NewIpTablesClient(r, "/nonexistent")
	if err := c.InstallRules(context.Background(), definitions.NATRules("eth0", "wlan0")); err != nil {
		t.Fatalf("InstallRules() error = %v", err)
	}

	if got := r.CommandsWithPrefix("iptables -t nat -A"); len(got) != 0 {
		t.Errorf("existing rule installed again: %v", got)
	}
	if got := r.CommandsWithPrefix("iptables -t filter -A"); len(got) != 2 {
		t.Errorf("expected 2 forward rules, got %v", got)
	}
}

func TestInstallRulesFailure(t *testing.T) {
	r := apexec.NewRecorder().
		On("iptables -t nat -C", apexec.Response{ReturnCode: 1}).
		On("iptables -t nat -A", apexec.Response{ReturnCode: 2, Stderr: "iptables: No chain/target/match by that name."})

	c := NewIpTablesClient(r, "/nonexistent")
	if err := c.InstallRules(context.Background(), definitions.NATRules("eth0", "wlan0")); err == nil {
		t.Fatal("InstallRules() returned nil error")
	}
}

func TestSaveRules(t *testing.T) {
	saved := "*nat\n-A POSTROUTING -o eth0 -j MASQUERADE\nCOMMIT\n"
	r := apexec.NewRecorder().On("iptables-save", apexec.Response{Stdout: saved})

	path := filepath.Join(t.TempDir(), "etc", "iptables", "rules.v4")
	if err := NewIpTablesClient(r, "/nonexistent").SaveRules(context.Background(), path); err != nil {
		t.Fatalf("SaveRules() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != saved {
		t.Errorf("saved rules = %q, want %q", b, saved)
	}
}
