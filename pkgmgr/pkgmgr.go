// Package pkgmgr holds the per-family commands for installing dependencies
// and persisting firewall rules.
package pkgmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	apconstants "github.com/srl-labs/apsetup/constants"
	"github.com/srl-labs/apsetup/distro"
	aperrors "github.com/srl-labs/apsetup/errors"
	apexec "github.com/srl-labs/apsetup/exec"
)

// PackageManager is the set of family specific capabilities.
type PackageManager interface {
	Family() distro.Family
	// Packages lists the packages providing hostapd, dnsmasq, wireless tooling and iptables.
	Packages() []string
	// InstallCommands returns the non-interactive commands installing pkgs, run in order.
	InstallCommands(pkgs []string) []*apexec.ExecCmd
	// RulesPath is the file the saved iptables rule set is loaded from on boot.
	RulesPath() string
	// RulesServices are enabled so the saved rules are restored on boot.
	RulesServices() []string
}

// New returns the PackageManager for family f. The runner is used to pick
// between alternative binaries of the family (e.g. dnf and yum).
func New(f distro.Family, r apexec.Runner) PackageManager {
	switch f {
	case distro.RedHat:
		bin := "dnf"
		if !r.LookPath(bin) {
			bin = "yum"
		}
		return &redhat{bin: bin}
	case distro.Arch:
		return &arch{}
	default:
		return &debian{}
	}
}

// Install runs the install commands of pm for its packages.
// The first non-zero exit aborts the installation.
func Install(ctx context.Context, r apexec.Runner, pm PackageManager) error {
	pkgs := pm.Packages()
	log.Info("Installing dependencies", "family", pm.Family(), "packages", strings.Join(pkgs, " "))

	for _, cmd := range pm.InstallCommands(pkgs) {
		res, err := r.Run(ctx, cmd)
		if err != nil {
			return fmt.Errorf("%w: %v", aperrors.ErrInstallFailed, err)
		}
		if res.Failed() {
			return fmt.Errorf("%w: %v", aperrors.ErrInstallFailed, res.AsError())
		}
	}

	log.Info("Dependencies installed")

	return nil
}

type debian struct{}

func (*debian) Family() distro.Family { return distro.Debian }

func (*debian) Packages() []string {
	return []string{"hostapd", "dnsmasq", "iw", "wireless-tools", "iptables", "iptables-persistent"}
}

func (*debian) InstallCommands(pkgs []string) []*apexec.ExecCmd {
	return []*apexec.ExecCmd{
		apexec.NewExecCmdFromSlice([]string{"apt-get", "update"}).WithEnv(apconstants.EnvDebianFrontend),
		apexec.NewExecCmdFromSlice(append([]string{"apt-get", "install", "-y"}, pkgs...)).
			WithEnv(apconstants.EnvDebianFrontend),
	}
}

func (*debian) RulesPath() string { return "/etc/iptables/rules.v4" }

func (*debian) RulesServices() []string { return []string{"netfilter-persistent"} }

type redhat struct {
	bin string
}

func (*redhat) Family() distro.Family { return distro.RedHat }

func (*redhat) Packages() []string {
	return []string{"hostapd", "dnsmasq", "iw", "wireless-tools", "iptables-services"}
}

func (r *redhat) InstallCommands(pkgs []string) []*apexec.ExecCmd {
	return []*apexec.ExecCmd{
		apexec.NewExecCmdFromSlice(append([]string{r.bin, "install", "-y"}, pkgs...)),
	}
}

func (*redhat) RulesPath() string { return "/etc/sysconfig/iptables" }

func (*redhat) RulesServices() []string { return []string{"iptables"} }

type arch struct{}

func (*arch) Family() distro.Family { return distro.Arch }

func (*arch) Packages() []string {
	return []string{"hostapd", "dnsmasq", "iw", "wireless_tools", "iptables"}
}

func (*arch) InstallCommands(pkgs []string) []*apexec.ExecCmd {
	return []*apexec.ExecCmd{
		apexec.NewExecCmdFromSlice(append([]string{"pacman", "-Sy", "--noconfirm", "--needed"}, pkgs...)),
	}
}

func (*arch) RulesPath() string { return "/etc/iptables/iptables.rules" }

func (*arch) RulesServices() []string { return []string{"iptables"} }
