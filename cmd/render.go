package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/srl-labs/apsetup/apconfig"
	apconstants "github.com/srl-labs/apsetup/constants"
	aperrors "github.com/srl-labs/apsetup/errors"
	"github.com/srl-labs/apsetup/wireless"
)

func renderCmd(o *Options) *cobra.Command {
	c := &cobra.Command{
		Use:   "render",
		Short: "print the hostapd and dnsmasq configuration setup would write",
		Long: "render builds the configuration from flags alone and prints it without " +
			"touching the host. --ssid and --passphrase are required.",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return renderFn(cobraCmd.OutOrStdout(), o.Setup)
		},
	}

	addAPFlags(c.Flags(), o.Setup)

	c.Flags().StringVarP(&o.Setup.Interface, "interface", "i", o.Setup.Interface,
		"physical wireless interface the virtual AP interface is created on")
	c.Flags().StringVarP(&o.Setup.Format, "format", "f", o.Setup.Format,
		"output format; one of [plain, json, yaml]")

	return c
}

// renderedFile is a configuration file as it would be written on the host.
type renderedFile struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
}

func renderFn(w io.Writer, o *SetupOptions) error {
	cfg, err := configFromOptions(o)
	if err != nil {
		return err
	}

	hostapd, err := apconfig.RenderHostapd(cfg)
	if err != nil {
		return err
	}

	dnsmasq, err := apconfig.RenderDnsmasq(cfg)
	if err != nil {
		return err
	}

	files := []renderedFile{
		{Path: apconstants.HostapdConfPath, Content: hostapd},
		{Path: apconstants.DnsmasqConfPath, Content: dnsmasq},
	}

	switch o.Format {
	case apconstants.FormatJSON:
		b, err := json.MarshalIndent(files, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))

		return err
	case apconstants.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(files); err != nil {
			return err
		}

		return enc.Close()
	case apconstants.FormatPlain:
		for _, f := range files {
			if _, err := fmt.Fprintf(w, "# %s\n%s\n", f.Path, f.Content); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", aperrors.ErrIncorrectInput, o.Format)
	}
}

// configFromOptions builds a validated configuration from flags, applying
// the same defaults setup offers when asking.
func configFromOptions(o *SetupOptions) (*apconfig.Config, error) {
	cfg := apconfig.New()
	cfg.PhysIface = o.Interface
	cfg.APIface = wireless.APInterfaceName(o.Interface)
	cfg.SSID = o.SSID
	cfg.Passphrase = o.Passphrase
	cfg.Forwarding = o.Forward
	cfg.Uplink = o.Uplink

	if o.Channel != 0 {
		cfg.Channel = o.Channel
	}

	if o.APAddress != "" {
		ap, err := apconfig.ParseIPv4(o.APAddress)
		if err != nil {
			return nil, err
		}
		cfg.APAddress = ap
		cfg.DHCPStart, cfg.DHCPEnd = apconfig.DefaultDHCPRange(ap)
	}

	if o.DHCPStart != "" {
		start, err := apconfig.ParseIPv4(o.DHCPStart)
		if err != nil {
			return nil, err
		}
		cfg.DHCPStart = start
	}

	if o.DHCPEnd != "" {
		end, err := apconfig.ParseIPv4(o.DHCPEnd)
		if err != nil {
			return nil, err
		}
		cfg.DHCPEnd = end
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
