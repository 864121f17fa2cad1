// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hostnet

import (
	"net/netip"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/vishvananda/netlink"
)

// LinkManager configures host network links.
type LinkManager interface {
	// LinkExists reports whether a link with the given name is present.
	LinkExists(name string) bool
	// AssignAddress sets addr on the link, replacing an identical address if present.
	AssignAddress(name string, addr netip.Prefix) error
	// SetUp sets the link administratively up.
	SetUp(name string) error
}

// NetlinkManager is a LinkManager talking to the kernel over netlink.
type NetlinkManager struct{}

func NewNetlinkManager() *NetlinkManager {
	return &NetlinkManager{}
}

func (*NetlinkManager) LinkExists(name string) bool {
	_, err := netlink.LinkByName(name)
	return err == nil
}

func (*NetlinkManager) AssignAddress(name string, addr netip.Prefix) error {
	l, err := netlink.LinkByName(name)
	if err != nil {
		return errors.Wrapf(err, "failed to lookup link %q", name)
	}

	a, err := netlink.ParseAddr(addr.String())
	if err != nil {
		return errors.Wrapf(err, "failed to parse address %s", addr)
	}

	log.Debugf("Assigning %s to %s", addr, name)

	if err := netlink.AddrReplace(l, a); err != nil {
		return errors.Wrapf(err, "failed to assign %s to %s", addr, name)
	}

	return nil
}

func (*NetlinkManager) SetUp(name string) error {
	l, err := netlink.LinkByName(name)
	if err != nil {
		return errors.Wrapf(err, "failed to lookup link %q", name)
	}

	if err := netlink.LinkSetUp(l); err != nil {
		return errors.Wrapf(err, "failed to set %s up", name)
	}

	if l.Attrs().OperState != netlink.OperUp {
		// an AP interface stays dormant until hostapd starts beaconing
		log.Debugf("link %s is administratively up, operational state: %s", name, l.Attrs().OperState)
	}

	return nil
}
