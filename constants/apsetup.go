// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package constants

const (
	Apsetup = "apsetup"

	HostapdService = "hostapd"
	DnsmasqService = "dnsmasq"

	// APIfaceSuffix is appended to the physical interface name to form
	// the virtual AP interface name.
	APIfaceSuffix = "_ap"

	// IfNameMaxLen is IFNAMSIZ minus the trailing NUL.
	IfNameMaxLen = 15
)

// defaults applied when the operator leaves a field empty.
const (
	DefaultChannel   = 7
	DefaultAPAddress = "192.168.4.1"

	DefaultDHCPStartHost = 2
	DefaultDHCPEndHost   = 20

	DHCPLeaseTime = "24h"
	DHCPNetmask   = "255.255.255.0"
	APPrefixLen   = 24

	LocalDomain = "wlan"
)

// UpstreamDNS servers configured in dnsmasq when forwarding is enabled.
var UpstreamDNS = []string{"8.8.8.8", "8.8.4.4"}

const (
	MinPassphraseLen = 8
	MaxPassphraseLen = 63
	MaxSSIDLen       = 32
)

const (
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)
