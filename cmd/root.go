// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/srl-labs/apsetup/cmd/version"
	apconstants "github.com/srl-labs/apsetup/constants"
)

// Entrypoint builds the root command with all subcommands attached and
// flags bound to their APSETUP_ environment variables.
func Entrypoint() (*cobra.Command, error) {
	o := GetOptions()

	c := &cobra.Command{
		Use:   apconstants.Apsetup,
		Short: "turn a Linux host with a wireless card into a WiFi access point",
		PersistentPreRunE: func(cobraCmd *cobra.Command, _ []string) error {
			return preRunFn(cobraCmd, o)
		},
		SilenceUsage: true,
	}

	c.PersistentFlags().CountVarP(&o.Global.DebugCount, "debug", "d", "enable debug mode")
	c.PersistentFlags().StringVarP(&o.Global.LogLevel, "log-level", "", o.Global.LogLevel,
		"logging level; one of [debug, info, warn, error, fatal]")
	c.PersistentFlags().StringVarP(&o.Global.LogFile, "log-file", "", o.Global.LogFile,
		"also write logs to this file, rotated when it grows large")
	_ = c.MarkPersistentFlagFilename("log-file")

	c.AddCommand(
		setupCmd(o),
		renderCmd(o),
		version.VersionCmd,
	)

	if err := initViper(c); err != nil {
		return nil, err
	}

	return c, nil
}

func preRunFn(cobraCmd *cobra.Command, o *Options) error {
	updateOptionsFromViper(cobraCmd, o)

	o.Setup.ForwardSet = flagIsSet(cobraCmd, "forward")

	return setupLogging(o.Global)
}
