package definitions

import (
	"slices"
	"testing"
)

func TestNATRules(t *testing.T) {
	rules := NATRules("eth0", "wlan0_ap")
	if len(rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(rules))
	}

	masq := rules[0]
	if masq.Table != NATTable || masq.Chain != PostroutingChain ||
		!slices.Contains(masq.Spec, "MASQUERADE") || !hasArg(masq.Spec, "-o", "eth0") {
		t.Errorf("unexpected masquerade rule %q", masq)
	}

	for _, r := range rules[1:] {
		if r.Chain != ForwardChain {
			t.Errorf("rule %q not in FORWARD chain", r)
		}
		if !slices.Contains(r.Spec, "eth0") || !slices.Contains(r.Spec, "wlan0_ap") {
			t.Errorf("rule %q does not reference both interfaces", r)
		}
	}

	if !hasArg(rules[1].Spec, "--state", "RELATED,ESTABLISHED") || !hasArg(rules[1].Spec, "-i", "eth0") {
		t.Errorf("inbound rule %q does not restrict to established traffic from uplink", rules[1])
	}
	if !hasArg(rules[2].Spec, "-i", "wlan0_ap") || !hasArg(rules[2].Spec, "-o", "eth0") {
		t.Errorf("outbound rule %q does not allow ap to uplink", rules[2])
	}
}

func hasArg(spec []string, flag, value string) bool {
	i := slices.Index(spec, flag)
	return i >= 0 && i+1 < len(spec) && spec[i+1] == value
}
