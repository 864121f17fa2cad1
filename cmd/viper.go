// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apconstants "github.com/srl-labs/apsetup/constants"
)

var v *viper.Viper //nolint:gochecknoglobals

// initViper binds every flag of cmd and its subcommands to an environment variable.
// Keys are "<command path>.<flag>", e.g. "setup.dhcp-start" is read from
// APSETUP_SETUP_DHCP_START. Root persistent flags are also bound without a path
// so APSETUP_LOG_LEVEL works for every command.
func initViper(cmd *cobra.Command) error {
	v = viper.New()

	v.SetEnvPrefix(apconstants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", "/", "_", ".", "_"))
	v.AutomaticEnv()

	return bindFlags(cmd, "")
}

func isRootCmd(cmd *cobra.Command) bool {
	return cmd.Name() == apconstants.Apsetup || cmd.Name() == ""
}

func joinKey(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}

func bindFlags(cmd *cobra.Command, parentPath string) error {
	path := parentPath
	if !isRootCmd(cmd) {
		path = joinKey(parentPath, cmd.Name())
	}

	var err error

	bind := func(key string, f *pflag.Flag) {
		if err == nil {
			err = v.BindPFlag(key, f)
		}
	}

	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if isRootCmd(cmd) {
			bind(f.Name, f)
		}
		if path != "" {
			bind(joinKey(path, f.Name), f)
		}
	})

	// local flags are only reachable with their command path
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if path == "" || cmd.PersistentFlags().Lookup(f.Name) != nil {
			return
		}
		bind(joinKey(path, f.Name), f)
	})

	if err != nil {
		return err
	}

	for _, sub := range cmd.Commands() {
		if err := bindFlags(sub, path); err != nil {
			return err
		}
	}

	return nil
}

// getCommandPath returns the dotted path of cmd below the root, e.g. "setup".
func getCommandPath(cmd *cobra.Command) string {
	var parts []string

	for c := cmd; c != nil && !isRootCmd(c); c = c.Parent() {
		parts = append(parts, c.Name())
	}

	slices.Reverse(parts)

	return strings.Join(parts, ".")
}

// updateOptionsFromViper copies environment values into the flags of cmd,
// including inherited persistent flags, that were not given on the command line.
func updateOptionsFromViper(cmd *cobra.Command, _ *Options) {
	path := getCommandPath(cmd)
	seen := map[string]bool{}

	visit := func(f *pflag.Flag) {
		if seen[f.Name] {
			return
		}
		seen[f.Name] = true

		updateFlagFromViper(f, path)
	}

	cmd.Flags().VisitAll(visit)
	cmd.PersistentFlags().VisitAll(visit)

	for p := cmd.Parent(); p != nil; p = p.Parent() {
		p.PersistentFlags().VisitAll(visit)
	}
}

// viperKey returns the key a flag's value is stored under for the command at path.
// The namespaced key wins; root persistent flags fall back to their bare name.
func viperKey(name, path string) (string, bool) {
	if path != "" {
		key := joinKey(path, name)
		if v.IsSet(key) {
			return key, true
		}
		if !slices.Contains(v.AllKeys(), name) {
			return "", false
		}
	}

	return name, v.IsSet(name)
}

func updateFlagFromViper(f *pflag.Flag, path string) {
	if f.Changed {
		return
	}

	key, ok := viperKey(f.Name, path)
	if !ok {
		return
	}

	val := v.GetString(key)
	if f.Value.Type() == "stringSlice" {
		val = strings.Join(v.GetStringSlice(key), ",")
	}

	if val != "" {
		_ = f.Value.Set(val)
	}
}

// flagIsSet reports whether the named flag of cmd was given on the command line
// or through its environment variable.
func flagIsSet(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return false
	}
	if f.Changed || v == nil {
		return f.Changed
	}

	return v.IsSet(joinKey(getCommandPath(cmd), name))
}
