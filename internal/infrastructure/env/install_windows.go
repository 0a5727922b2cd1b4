//go:build windows

package env

import (
	"strconv"

	"golang.org/x/sys/windows/registry"
)

// installTimestamp reads HKLM InstallDate, the same source the native game
// patch uses.
func installTimestamp() string {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue("InstallDate")
	if err != nil {
		return ""
	}
	return strconv.FormatUint(value, 10)
}
