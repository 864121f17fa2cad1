// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	apconstants "github.com/srl-labs/apsetup/constants"
	"github.com/srl-labs/apsetup/prompt"
	"github.com/srl-labs/apsetup/utils"
)

var optionsInstance *Options //nolint:gochecknoglobals

// GetOptions returns the options shared by every command, creating them with
// defaults on first use.
func GetOptions() *Options {
	if optionsInstance == nil {
		optionsInstance = &Options{
			Global: &GlobalOptions{
				LogLevel: "info",
			},
			Setup: &SetupOptions{
				Format:    apconstants.FormatPlain,
				Interface: "wlan0",
			},
		}
	}

	return optionsInstance
}

type Options struct {
	Global *GlobalOptions
	Setup  *SetupOptions
}

type GlobalOptions struct {
	DebugCount int
	LogLevel   string
	LogFile    string
}

// SetupOptions holds the answers that can be given up front instead of interactively.
// Zero values mean the question is asked.
type SetupOptions struct {
	SSID       string
	Passphrase string
	Channel    int
	Forward    bool
	// ForwardSet is true when --forward was given on the command line or via env.
	ForwardSet bool
	Uplink     string
	APAddress  string
	DHCPStart  string
	DHCPEnd    string
	AssumeYes  bool
	Root       string

	// render only
	Interface string
	Format    string
}

// Preset converts the options into prefilled prompt answers.
func (o *SetupOptions) Preset() *prompt.Preset {
	p := &prompt.Preset{
		SSID:       o.SSID,
		Passphrase: o.Passphrase,
		Channel:    o.Channel,
		Uplink:     o.Uplink,
		APAddress:  o.APAddress,
		DHCPStart:  o.DHCPStart,
		DHCPEnd:    o.DHCPEnd,
		AssumeYes:  o.AssumeYes,
	}

	if o.ForwardSet {
		p.Forwarding = utils.Pointer(o.Forward)
	}

	return p
}
