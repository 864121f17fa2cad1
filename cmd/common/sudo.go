package common

import (
	"github.com/spf13/cobra"

	"github.com/srl-labs/apsetup/utils"
)

// SudoCheck is a cobra PreRunE that refuses to run without root privileges.
func SudoCheck(_ *cobra.Command, _ []string) error {
	return utils.CheckRootPrivs()
}
