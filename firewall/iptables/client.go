package iptables

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	apconstants "github.com/srl-labs/apsetup/constants"
	apexec "github.com/srl-labs/apsetup/exec"
	"github.com/srl-labs/apsetup/firewall/definitions"
	"github.com/srl-labs/apsetup/utils"
)

const (
	ipTables     = "ip_tables"
	ip4tablesCmd = "iptables"
	iptSaveCmd   = "iptables-save"
)

// IpTablesClient is a client for iptables.
type IpTablesClient struct {
	r apexec.Runner
}

// NewIpTablesClient returns a new IpTablesClient. modulesPath is the
// kernel modules list, normally /proc/modules.
func NewIpTablesClient(r apexec.Runner, modulesPath string) *IpTablesClient {
	loaded, err := utils.IsKernelModuleLoaded(modulesPath, ipTables)
	switch {
	case err != nil:
		log.Debugf("could not check %s kernel module: %v", ipTables, err)
	case !loaded:
		// iptables loads it on first use
		log.Debugf("%s kernel module not loaded yet", ipTables)
	}

	return &IpTablesClient{r: r}
}

// Name returns the name of the firewall client.
func (*IpTablesClient) Name() string {
	return ipTables
}

// InstallRules appends every rule not yet present in its chain.
func (c *IpTablesClient) InstallRules(ctx context.Context, rules []*definitions.FirewallRule) error {
	for _, rule := range rules {
		if c.ruleExists(ctx, rule) {
			log.Debugf("iptables rule %q already present, skipping", rule)
			continue
		}

		cmd := apexec.NewExecCmdFromSlice(ruleCmd("-A", rule))

		log.Debugf("Installing iptables rule %q", rule)

		if _, err := apexec.RunChecked(ctx, c.r, cmd); err != nil {
			return fmt.Errorf("unable to install iptables rule: %w", err)
		}
	}

	return nil
}

// SaveRules dumps the running rule set with iptables-save into path.
func (c *IpTablesClient) SaveRules(ctx context.Context, path string) error {
	res, err := apexec.RunChecked(ctx, c.r, apexec.NewExecCmdFromSlice([]string{iptSaveCmd}))
	if err != nil {
		return fmt.Errorf("unable to save iptables rules: %w", err)
	}

	if err := utils.WriteFile(path, []byte(res.GetStdOutString()), apconstants.PermissionsFileDefault); err != nil {
		return fmt.Errorf("unable to write iptables rules to %s: %w", path, err)
	}

	log.Infof("Saved iptables rules to %s", path)

	return nil
}

// ruleExists checks the rule with `iptables -C`, which exits non-zero for a missing rule.
func (c *IpTablesClient) ruleExists(ctx context.Context, rule *definitions.FirewallRule) bool {
	res, err := c.r.Run(ctx, apexec.NewExecCmdFromSlice(ruleCmd("-C", rule)))
	if err != nil {
		log.Warnf("iptables check error: %v", err)
		return false
	}

	return !res.Failed()
}

func ruleCmd(op string, rule *definitions.FirewallRule) []string {
	cmd := []string{ip4tablesCmd, "-t", rule.Table, op, rule.Chain}
	return append(cmd, rule.Spec...)
}
