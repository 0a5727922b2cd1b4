//go:build !windows

package env

import (
	"os"
	"strconv"
)

// installTimestamp approximates the Windows InstallDate registry value with
// the modification time of a system path written once at install time.
func installTimestamp() string {
	for _, path := range []string{"/var/log/installer", "/etc/machine-id", "/var/db/.AppleSetupDone"} {
		if info, err := os.Stat(path); err == nil {
			return strconv.FormatInt(info.ModTime().Unix(), 10)
		}
	}
	return ""
}
