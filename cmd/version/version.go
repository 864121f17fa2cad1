// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package version

import (
	_ "embed"
	"fmt"

	gover "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

// Version variables set at build time (e.g., with -ldflags).
var (
	Version = "0.0.0"
	commit  = "none"
	date    = "unknown"
)

const repoUrl = "https://github.com/srl-labs/apsetup"

//go:embed logo.txt
var projASCIILogo string

// VersionCmd defines the version command.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show apsetup version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, projASCIILogo)
		fmt.Fprintf(w, "    version: %s\n", Version)
		fmt.Fprintf(w, "     commit: %s\n", commit)
		fmt.Fprintf(w, "       date: %s\n", date)
		fmt.Fprintf(w, "     source: %s\n", repoUrl)
		if tag := releaseTagFromVer(Version); tag != "" {
			fmt.Fprintf(w, " rel. notes: %s/releases/tag/%s\n", repoUrl, tag)
		}

		return nil
	},
}

// releaseTagFromVer returns the git tag a version was released under,
// e.g. 0.3.1 => v0.3.1. Development and unparseable versions have no tag.
func releaseTagFromVer(ver string) string {
	v, err := gover.NewVersion(ver)
	if err != nil || v.Prerelease() != "" {
		return ""
	}

	segments := v.Segments()
	if segments[0] == 0 && segments[1] == 0 && segments[2] == 0 {
		return ""
	}

	return fmt.Sprintf("v%d.%d.%d", segments[0], segments[1], segments[2])
}
