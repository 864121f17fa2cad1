// Package core runs the access point setup workflow.
package core

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/srl-labs/apsetup/apconfig"
	apconstants "github.com/srl-labs/apsetup/constants"
	"github.com/srl-labs/apsetup/distro"
	apexec "github.com/srl-labs/apsetup/exec"
	"github.com/srl-labs/apsetup/firewall/iptables"
	"github.com/srl-labs/apsetup/hostnet"
	"github.com/srl-labs/apsetup/pkgmgr"
	"github.com/srl-labs/apsetup/prompt"
	"github.com/srl-labs/apsetup/provision"
	"github.com/srl-labs/apsetup/service"
	"github.com/srl-labs/apsetup/wireless"
)

// Setup runs detection, installation, discovery, collection and provisioning in order.
type Setup struct {
	runner   apexec.Runner
	links    hostnet.LinkManager
	prompter *prompt.Prompter
	preset   *prompt.Preset
	root     string
}

// NewSetup returns a Setup acting on the local host unless overridden by opts.
func NewSetup(opts ...SetupOption) (*Setup, error) {
	s := &Setup{
		root:   "/",
		preset: &prompt.Preset{},
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.runner == nil {
		s.runner = apexec.NewHostRunner()
	}
	if s.links == nil {
		s.links = hostnet.NewNetlinkManager()
	}
	if s.prompter == nil {
		s.prompter = prompt.NewTerminal()
	}

	return s, nil
}

func (s *Setup) path(abs string) string {
	return filepath.Join(s.root, abs)
}

// Run executes the workflow. It returns errors.ErrCancelled when the operator
// declines the confirmation; installed packages stay installed in that case.
func (s *Setup) Run(ctx context.Context) error {
	family := distro.Detect(s.path(apconstants.OSReleasePath))
	pm := pkgmgr.New(family, s.runner)

	if err := pkgmgr.Install(ctx, s.runner, pm); err != nil {
		return err
	}

	phys, err := wireless.Discover(ctx, s.runner, s.links)
	if err != nil {
		return err
	}

	cfg := apconfig.New()
	cfg.Family = family
	cfg.PhysIface = phys

	if err := s.prompter.Collect(ctx, cfg, s.preset); err != nil {
		return err
	}

	if err := s.prompter.ConfirmApply(ctx, cfg, s.preset); err != nil {
		return err
	}

	log.Debug("Configuration confirmed", "ssid", cfg.SSID, "channel", cfg.Channel, "forwarding", cfg.Forwarding)

	p := &provision.Provisioner{
		Runner:   s.runner,
		Services: service.NewSystemd(s.runner),
		Links:    s.links,
		Firewall: iptables.NewIpTablesClient(s.runner, s.path(apconstants.ProcModulesPath)),
		Packages: pm,
		Root:     s.root,
	}

	return p.Apply(ctx, cfg)
}
