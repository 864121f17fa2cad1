package utils

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	aperrors "github.com/srl-labs/apsetup/errors"
)

const ROOT_UID = 0

// CheckRootPrivs returns an error unless the process runs with an effective UID of root.
func CheckRootPrivs() error {
	_, euid, _ := unix.Getresuid()
	return checkEUID(euid)
}

func checkEUID(euid int) error {
	if euid != ROOT_UID {
		return fmt.Errorf("%w, effective UID: %d", aperrors.ErrNotRoot, euid)
	}

	log.Debug("Running as root")

	return nil
}
