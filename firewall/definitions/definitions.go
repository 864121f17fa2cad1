package definitions

import (
	"context"
	"strings"
)

const (
	NATTable    = "nat"
	FilterTable = "filter"

	PostroutingChain = "POSTROUTING"
	ForwardChain     = "FORWARD"
)

// FirewallRule is a single rule in a table chain.
// Spec holds the rule match and target arguments.
type FirewallRule struct {
	Table string
	Chain string
	Spec  []string
}

func (r *FirewallRule) String() string {
	return "-t " + r.Table + " " + r.Chain + " " + strings.Join(r.Spec, " ")
}

// NATRules returns the rules that masquerade AP client traffic leaving through
// uplink, allow return traffic of established flows from uplink to ap and
// everything from ap to uplink.
func NATRules(uplink, ap string) []*FirewallRule {
	return []*FirewallRule{
		{
			Table: NATTable,
			Chain: PostroutingChain,
			Spec:  []string{"-o", uplink, "-j", "MASQUERADE"},
		},
		{
			Table: FilterTable,
			Chain: ForwardChain,
			Spec: []string{
				"-i", uplink, "-o", ap,
				"-m", "state", "--state", "RELATED,ESTABLISHED",
				"-j", "ACCEPT",
			},
		},
		{
			Table: FilterTable,
			Chain: ForwardChain,
			Spec:  []string{"-i", ap, "-o", uplink, "-j", "ACCEPT"},
		},
	}
}

// Firewall is the interface firewall clients implement.
type Firewall interface {
	// InstallRules appends the rules missing from the running rule set.
	InstallRules(ctx context.Context, rules []*FirewallRule) error
	// SaveRules writes the running rule set to path.
	SaveRules(ctx context.Context, path string) error
	Name() string
}
