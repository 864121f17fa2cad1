// Package wireless discovers wireless interfaces and creates AP mode interfaces with iw.
package wireless

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	apconstants "github.com/srl-labs/apsetup/constants"
	aperrors "github.com/srl-labs/apsetup/errors"
	apexec "github.com/srl-labs/apsetup/exec"
	"github.com/srl-labs/apsetup/hostnet"
	"github.com/srl-labs/apsetup/utils"
)

var ifaceLineRe = regexp.MustCompile(`^\s*Interface\s+(?P<name>\S+)\s*$`)

// ParseIwDev returns interface names in the order `iw dev` lists them.
func ParseIwDev(out string) []string {
	var ifaces []string

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		groups, err := utils.GetRegexpCaptureGroups(ifaceLineRe, scanner.Text())
		if err != nil {
			continue
		}
		ifaces = append(ifaces, groups["name"])
	}

	return ifaces
}

// Discover returns the first wireless interface present on the host.
// Virtual AP interfaces left by an earlier run are skipped when their parent
// is listed and present, so a re-run doesn't stack a new AP interface on top of them.
func Discover(ctx context.Context, r apexec.Runner, links hostnet.LinkManager) (string, error) {
	res, err := apexec.RunChecked(ctx, r, apexec.MustExecCmd("iw dev"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", aperrors.ErrNoWirelessInterface, err)
	}

	ifaces := ParseIwDev(res.GetStdOutString())

	virtual := map[string]bool{}
	for _, iface := range ifaces {
		if links.LinkExists(iface) {
			virtual[APInterfaceName(iface)] = true
		}
	}

	for _, iface := range ifaces {
		if virtual[iface] {
			log.Debugf("%s is the AP interface of a listed radio, skipping", iface)
			continue
		}

		if !links.LinkExists(iface) {
			log.Debugf("iw reported %s but the link is not present, skipping", iface)
			continue
		}

		log.Info("Found wireless interface", "interface", iface)
		return iface, nil
	}

	return "", aperrors.ErrNoWirelessInterface
}

// APInterfaceName returns the virtual AP interface name for a physical interface.
func APInterfaceName(phys string) string {
	base := utils.Truncate(phys, apconstants.IfNameMaxLen-len(apconstants.APIfaceSuffix))
	return base + apconstants.APIfaceSuffix
}

// CreateAPInterface adds a virtual AP mode interface on top of phys and
// returns the interface to broadcast on. If the radio can't host a virtual
// interface, phys itself is returned.
func CreateAPInterface(ctx context.Context, r apexec.Runner, links hostnet.LinkManager, phys string) string {
	ap := APInterfaceName(phys)

	if links.LinkExists(ap) {
		log.Infof("Virtual AP interface %s already exists", ap)
		return ap
	}

	cmd := apexec.NewExecCmdFromSlice([]string{"iw", "dev", phys, "interface", "add", ap, "type", "__ap"})
	if _, err := apexec.RunChecked(ctx, r, cmd); err != nil {
		log.Warnf("failed to create virtual AP interface %s: %v. Using %s directly", ap, err, phys)
		return phys
	}

	log.Info("Created virtual AP interface", "interface", ap, "parent", phys)

	return ap
}
