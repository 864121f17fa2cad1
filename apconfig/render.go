package apconfig

import (
	apconstants "github.com/srl-labs/apsetup/constants"
	"github.com/srl-labs/apsetup/utils"
)

const hostapdTemplate = `interface={{ .APIface }}
driver=nl80211
ssid={{ .SSID }}
hw_mode=g
channel={{ .Channel }}
wmm_enabled=0
macaddr_acl=0
auth_algs=1
ignore_broadcast_ssid=0
wpa=2
wpa_passphrase={{ .Passphrase }}
wpa_key_mgmt=WPA-PSK
rsn_pairwise=CCMP
`

const dnsmasqTemplate = `interface={{ .Interface }}
dhcp-range={{ .Start }},{{ .End }},{{ .Netmask }},{{ .LeaseTime }}
{{- if .Forwarding }}
{{- range .Servers }}
server={{ . }}
{{- end }}
no-hosts
domain={{ .Domain }}
log-queries
bogus-priv
domain-needed
{{- end }}
`

// RenderHostapd renders the hostapd configuration.
func RenderHostapd(c *Config) (string, error) {
	return utils.RenderTemplate("hostapd", hostapdTemplate, c)
}

type dnsmasqData struct {
	Interface  string
	Start      string
	End        string
	Netmask    string
	LeaseTime  string
	Forwarding bool
	Servers    []string
	Domain     string
}

// RenderDnsmasq renders the dnsmasq configuration. Upstream resolvers and
// the local domain are only set when forwarding is enabled.
func RenderDnsmasq(c *Config) (string, error) {
	d := dnsmasqData{
		Interface:  c.APIface,
		Start:      c.DHCPStart.String(),
		End:        c.DHCPEnd.String(),
		Netmask:    apconstants.DHCPNetmask,
		LeaseTime:  apconstants.DHCPLeaseTime,
		Forwarding: c.Forwarding,
		Servers:    apconstants.UpstreamDNS,
		Domain:     apconstants.LocalDomain,
	}

	return utils.RenderTemplate("dnsmasq", dnsmasqTemplate, d)
}
