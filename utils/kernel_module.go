package utils

import (
	"bufio"
	"os"
	"strings"
)

// IsKernelModuleLoaded checks if a kernel module is loaded by parsing the modules file,
// normally /proc/modules.
func IsKernelModuleLoaded(modulesPath, name string) (bool, error) {
	f, err := os.Open(modulesPath)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && fields[0] == name {
			return true, nil
		}
	}
	return false, scanner.Err()
}
