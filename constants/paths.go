package constants

import "os"

const (
	OSReleasePath = "/etc/os-release"

	HostapdConfPath    = "/etc/hostapd/hostapd.conf"
	HostapdDefaultPath = "/etc/default/hostapd"
	DnsmasqConfPath    = "/etc/dnsmasq.conf"
	SysctlConfPath     = "/etc/sysctl.conf"

	ProcModulesPath = "/proc/modules"
)

const (
	PermissionsDirDefault  os.FileMode = 0o755
	PermissionsFileDefault os.FileMode = 0o644
	// hostapd.conf carries the passphrase in clear text.
	PermissionsSecretFile os.FileMode = 0o600
)
