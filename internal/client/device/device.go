// Package device probes the platform metadata reported on login. Everything
// here is best-effort: a probe that fails yields a blank string, never an
// error.
package device

import (
	"os"
	"runtime"
	"strings"
)

// osReleasePath is a test seam.
var osReleasePath = "/proc/sys/kernel/osrelease"

// Info returns the platform name and OS version of the device. Either value
// may be blank when the probe fails.
func Info() (platform, osVersion string) {
	platform = runtime.GOOS

	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return platform, ""
	}
	return platform, strings.TrimSpace(string(data))
}
