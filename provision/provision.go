// Package provision applies a confirmed access point configuration to the host.
package provision

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/srl-labs/apsetup/apconfig"
	apconstants "github.com/srl-labs/apsetup/constants"
	aperrors "github.com/srl-labs/apsetup/errors"
	apexec "github.com/srl-labs/apsetup/exec"
	"github.com/srl-labs/apsetup/firewall/definitions"
	"github.com/srl-labs/apsetup/hostnet"
	"github.com/srl-labs/apsetup/pkgmgr"
	"github.com/srl-labs/apsetup/service"
	"github.com/srl-labs/apsetup/utils"
	"github.com/srl-labs/apsetup/wireless"
)

var (
	daemonConfRe = regexp.MustCompile(`^\s*#?\s*DAEMON_CONF\s*=`)
	ipForwardRe  = regexp.MustCompile(`^\s*#?\s*net\.ipv4\.ip_forward\s*=`)
)

// Provisioner writes the daemon configuration and brings the access point up.
type Provisioner struct {
	Runner   apexec.Runner
	Services service.Manager
	Links    hostnet.LinkManager
	Firewall definitions.Firewall
	Packages pkgmgr.PackageManager
	// Root is prepended to every file path written.
	Root string
}

func (p *Provisioner) path(abs string) string {
	if p.Root == "" {
		return abs
	}
	return filepath.Join(p.Root, abs)
}

// Apply provisions the access point described by cfg. cfg.APIface is set to the
// interface actually used for broadcasting.
// Only a failing hostapd start is returned as an error: every other step logs a
// warning and the run continues. There is no rollback. A cancelled ctx stops the
// run before the next step.
func (p *Provisioner) Apply(ctx context.Context, cfg *apconfig.Config) error {
	if err := p.soft(ctx, "preparing services", p.prepareServices(ctx)); err != nil {
		return err
	}

	cfg.APIface = wireless.CreateAPInterface(ctx, p.Runner, p.Links, cfg.PhysIface)

	if err := p.soft(ctx, "configuring dnsmasq", p.configureDnsmasq(ctx, cfg)); err != nil {
		return err
	}

	if err := p.soft(ctx, "configuring hostapd", p.configureHostapd(cfg)); err != nil {
		return err
	}

	if err := p.soft(ctx, "addressing "+cfg.APIface, p.configureAddressing(cfg)); err != nil {
		return err
	}

	if cfg.Forwarding {
		if err := p.soft(ctx, "enabling forwarding", p.configureForwarding(ctx, cfg)); err != nil {
			return err
		}
	}

	log.Info("Starting hostapd", "interface", cfg.APIface)

	if err := p.Services.Start(ctx, apconstants.HostapdService); err != nil {
		return fmt.Errorf("%w: %v. Check the logs with 'journalctl -u %s'",
			aperrors.ErrDaemonStart, err, apconstants.HostapdService)
	}

	log.Info("Access point is up", "ssid", cfg.SSID, "interface", cfg.APIface, "address", cfg.APPrefix())

	return nil
}

// soft logs a failed step as a warning. It only returns an error when ctx is done.
func (*Provisioner) soft(ctx context.Context, step string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		log.Warnf("%s failed, continuing: %v", step, err)
	}

	return nil
}

// prepareServices stops both daemons, then unmasks and enables hostapd.
// Every command is attempted; the failures are joined.
func (p *Provisioner) prepareServices(ctx context.Context) error {
	var errs []error

	for _, svc := range []string{apconstants.HostapdService, apconstants.DnsmasqService} {
		errs = append(errs, p.Services.Stop(ctx, svc))
	}

	errs = append(errs,
		p.Services.Unmask(ctx, apconstants.HostapdService),
		p.Services.Enable(ctx, apconstants.HostapdService),
	)

	return errors.Join(errs...)
}

func (p *Provisioner) configureDnsmasq(ctx context.Context, cfg *apconfig.Config) error {
	conf, err := apconfig.RenderDnsmasq(cfg)
	if err != nil {
		return err
	}

	path := p.path(apconstants.DnsmasqConfPath)
	if err := utils.WriteFile(path, []byte(conf), apconstants.PermissionsFileDefault); err != nil {
		return fmt.Errorf("failed to write dnsmasq configuration: %w", err)
	}

	log.Infof("Wrote dnsmasq configuration to %s", path)

	return p.Services.Restart(ctx, apconstants.DnsmasqService)
}

func (p *Provisioner) configureHostapd(cfg *apconfig.Config) error {
	conf, err := apconfig.RenderHostapd(cfg)
	if err != nil {
		return err
	}

	path := p.path(apconstants.HostapdConfPath)
	if err := utils.WriteFile(path, []byte(conf), apconstants.PermissionsSecretFile); err != nil {
		return fmt.Errorf("failed to write hostapd configuration: %w", err)
	}

	log.Infof("Wrote hostapd configuration to %s", path)

	line := fmt.Sprintf("DAEMON_CONF=%q", apconstants.HostapdConfPath)
	if err := utils.SetLine(p.path(apconstants.HostapdDefaultPath), daemonConfRe, line,
		apconstants.PermissionsFileDefault); err != nil {
		return fmt.Errorf("failed to point hostapd to its configuration: %w", err)
	}

	return nil
}

func (p *Provisioner) configureAddressing(cfg *apconfig.Config) error {
	if err := p.Links.AssignAddress(cfg.APIface, cfg.APPrefix()); err != nil {
		return err
	}

	return p.Links.SetUp(cfg.APIface)
}

// configureForwarding turns on IPv4 forwarding and NAT towards the uplink and
// persists both. Every part is attempted; the failures are joined.
func (p *Provisioner) configureForwarding(ctx context.Context, cfg *apconfig.Config) error {
	log.Info("Enabling internet forwarding", "uplink", cfg.Uplink, "firewall", p.Firewall.Name())

	var errs []error

	cmd := apexec.NewExecCmdFromSlice([]string{"sysctl", "-w", "net.ipv4.ip_forward=1"})
	if _, err := apexec.RunChecked(ctx, p.Runner, cmd); err != nil {
		errs = append(errs, fmt.Errorf("failed to enable IP forwarding: %w", err))
	}

	if err := utils.SetLine(p.path(apconstants.SysctlConfPath), ipForwardRe, "net.ipv4.ip_forward=1",
		apconstants.PermissionsFileDefault); err != nil {
		errs = append(errs, fmt.Errorf("failed to persist IP forwarding: %w", err))
	}

	if err := p.Firewall.InstallRules(ctx, definitions.NATRules(cfg.Uplink, cfg.APIface)); err != nil {
		errs = append(errs, err)
	}

	if err := p.Firewall.SaveRules(ctx, p.path(p.Packages.RulesPath())); err != nil {
		errs = append(errs, err)
	}

	for _, svc := range p.Packages.RulesServices() {
		if !p.Runner.LookPath(svc) {
			log.Debugf("%s is not installed, saved rules are loaded by other means", svc)
			continue
		}
		if err := p.Services.Enable(ctx, svc); err != nil {
			errs = append(errs, fmt.Errorf("saved firewall rules may not be restored on boot: %w", err))
		}
	}

	return errors.Join(errs...)
}
