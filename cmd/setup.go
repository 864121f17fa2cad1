// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/srl-labs/apsetup/cmd/common"
	"github.com/srl-labs/apsetup/core"
	aperrors "github.com/srl-labs/apsetup/errors"
)

func setupCmd(o *Options) *cobra.Command {
	c := &cobra.Command{
		Use:   "setup",
		Short: "install and configure hostapd and dnsmasq to run an access point",
		Long: "setup detects the distribution, installs the access point packages, " +
			"asks for the network settings and configures the wireless interface, " +
			"DHCP and optionally NAT forwarding to an uplink interface.\n" +
			"Answers given as flags or APSETUP_SETUP_* variables are not asked again.",
		PreRunE: common.SudoCheck,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return setupFn(cobraCmd, o)
		},
	}

	addAPFlags(c.Flags(), o.Setup)

	c.Flags().BoolVarP(&o.Setup.AssumeYes, "yes", "y", o.Setup.AssumeYes,
		"apply the configuration without asking for confirmation")
	c.Flags().StringVarP(&o.Setup.Root, "root", "", o.Setup.Root,
		"directory every configuration file is read from and written under")
	_ = c.Flags().MarkHidden("root")

	return c
}

// addAPFlags adds the flags prefilling the access point questions.
func addAPFlags(fs *pflag.FlagSet, o *SetupOptions) {
	fs.StringVarP(&o.SSID, "ssid", "", o.SSID, "network name")
	fs.StringVarP(&o.Passphrase, "passphrase", "", o.Passphrase, "WPA2 passphrase, 8 to 63 characters")
	fs.IntVarP(&o.Channel, "channel", "", o.Channel, "2.4GHz channel, 1 to 14 (default 7 when asked)")
	fs.BoolVarP(&o.Forward, "forward", "", o.Forward, "forward client traffic to the uplink interface with NAT")
	fs.StringVarP(&o.Uplink, "uplink", "", o.Uplink, "uplink interface used when forwarding, e.g. eth0")
	fs.StringVarP(&o.APAddress, "ip", "", o.APAddress, "access point IPv4 address (default 192.168.4.1 when asked)")
	fs.StringVarP(&o.DHCPStart, "dhcp-start", "", o.DHCPStart, "first address leased to clients")
	fs.StringVarP(&o.DHCPEnd, "dhcp-end", "", o.DHCPEnd, "last address leased to clients")
}

func setupFn(cobraCmd *cobra.Command, o *Options) error {
	opts := []core.SetupOption{
		core.WithPreset(o.Setup.Preset()),
	}

	if o.Setup.Root != "" {
		opts = append(opts, core.WithRoot(o.Setup.Root))
	}

	s, err := core.NewSetup(opts...)
	if err != nil {
		return err
	}

	err = s.Run(cobraCmd.Context())
	if errors.Is(err, aperrors.ErrCancelled) {
		log.Info("Setup cancelled, no configuration was written")
		return nil
	}

	return err
}
