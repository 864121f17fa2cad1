// Package apconfig holds the access point settings collected from the operator
// and renders them into hostapd and dnsmasq configuration files.
package apconfig

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	apconstants "github.com/srl-labs/apsetup/constants"
	"github.com/srl-labs/apsetup/distro"
	aperrors "github.com/srl-labs/apsetup/errors"
)

// Config is the full set of values of one provisioning run.
type Config struct {
	Family distro.Family
	// PhysIface is the discovered wireless interface.
	PhysIface string
	// APIface is the interface hostapd broadcasts on: a virtual AP interface
	// or PhysIface when one couldn't be created.
	APIface string

	SSID       string
	Passphrase string
	Channel    int

	Forwarding bool
	Uplink     string

	APAddress netip.Addr
	DHCPStart netip.Addr
	DHCPEnd   netip.Addr
}

// New returns a Config with defaults applied.
func New() *Config {
	ap := netip.MustParseAddr(apconstants.DefaultAPAddress)
	start, end := DefaultDHCPRange(ap)

	return &Config{
		Channel:   apconstants.DefaultChannel,
		APAddress: ap,
		DHCPStart: start,
		DHCPEnd:   end,
	}
}

// APPrefix is the AP address with the /24 prefix length assigned to the AP interface.
func (c *Config) APPrefix() netip.Prefix {
	return netip.PrefixFrom(c.APAddress, apconstants.APPrefixLen)
}

// Validate checks every field. Interface names are checked only when set.
func (c *Config) Validate() error {
	if err := ValidateSSID(c.SSID); err != nil {
		return err
	}
	if err := ValidatePassphrase(c.Passphrase); err != nil {
		return err
	}
	if err := ValidateChannel(c.Channel); err != nil {
		return err
	}
	if c.Forwarding {
		if err := ValidateUplink(c.Uplink); err != nil {
			return err
		}
	}
	if !c.APAddress.Is4() {
		return fmt.Errorf("%w: AP address %q is not an IPv4 address", aperrors.ErrIncorrectInput, c.APAddress)
	}
	if err := ValidateDHCPAddr(c.APAddress, c.DHCPStart); err != nil {
		return err
	}
	if err := ValidateDHCPAddr(c.APAddress, c.DHCPEnd); err != nil {
		return err
	}
	if c.DHCPEnd.Less(c.DHCPStart) {
		return fmt.Errorf("%w: DHCP range end %s is lower than start %s",
			aperrors.ErrIncorrectInput, c.DHCPEnd, c.DHCPStart)
	}
	return nil
}

func ValidateSSID(ssid string) error {
	switch {
	case ssid == "":
		return fmt.Errorf("%w: SSID cannot be empty", aperrors.ErrIncorrectInput)
	case len(ssid) > apconstants.MaxSSIDLen:
		return fmt.Errorf("%w: SSID is longer than %d bytes", aperrors.ErrIncorrectInput, apconstants.MaxSSIDLen)
	case strings.ContainsAny(ssid, "\r\n"):
		return fmt.Errorf("%w: SSID cannot contain line breaks", aperrors.ErrIncorrectInput)
	}
	return nil
}

func ValidatePassphrase(p string) error {
	switch {
	case len(p) < apconstants.MinPassphraseLen:
		return fmt.Errorf("%w: passphrase must be at least %d characters",
			aperrors.ErrIncorrectInput, apconstants.MinPassphraseLen)
	case len(p) > apconstants.MaxPassphraseLen:
		return fmt.Errorf("%w: passphrase must be at most %d characters",
			aperrors.ErrIncorrectInput, apconstants.MaxPassphraseLen)
	case strings.ContainsAny(p, "\r\n"):
		return fmt.Errorf("%w: passphrase cannot contain line breaks", aperrors.ErrIncorrectInput)
	}
	return nil
}

// ValidateChannel accepts the 2.4GHz channels 1 to 14.
func ValidateChannel(ch int) error {
	if ch < 1 || ch > 14 {
		return fmt.Errorf("%w: channel %d is not a 2.4GHz channel (1-14)", aperrors.ErrIncorrectInput, ch)
	}
	return nil
}

// ParseChannel parses s as a channel. An empty string yields the default channel.
func ParseChannel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return apconstants.DefaultChannel, nil
	}
	ch, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: channel %q is not a number", aperrors.ErrIncorrectInput, s)
	}
	return ch, ValidateChannel(ch)
}

func ValidateUplink(iface string) error {
	if strings.TrimSpace(iface) == "" {
		return fmt.Errorf("%w: uplink interface cannot be empty", aperrors.ErrIncorrectInput)
	}
	return nil
}

// ParseIPv4 parses s as an IPv4 address.
func ParseIPv4(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil || !a.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: %q is not an IPv4 address", aperrors.ErrIncorrectInput, s)
	}
	return a, nil
}

// ValidateDHCPAddr checks that addr lies in the /24 of the AP address.
func ValidateDHCPAddr(ap, addr netip.Addr) error {
	p := netip.PrefixFrom(ap, apconstants.APPrefixLen).Masked()
	if !addr.Is4() || !p.Contains(addr) {
		return fmt.Errorf("%w: DHCP address %s is outside of %s", aperrors.ErrIncorrectInput, addr, p)
	}
	return nil
}

// DefaultDHCPRange returns <prefix>.2 and <prefix>.20 of the /24 ap belongs to.
func DefaultDHCPRange(ap netip.Addr) (start, end netip.Addr) {
	b := ap.As4()
	b[3] = apconstants.DefaultDHCPStartHost
	start = netip.AddrFrom4(b)
	b[3] = apconstants.DefaultDHCPEndHost
	end = netip.AddrFrom4(b)
	return start, end
}

// MaskPassphrase keeps the first and last two characters and masks the rest.
// Passphrases of four characters or fewer are masked entirely.
func MaskPassphrase(p string) string {
	r := []rune(p)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:2]) + strings.Repeat("*", len(r)-4) + string(r[len(r)-2:])
}
