// SPDX-License-Identifier: MPL-2.0

package platform

import "strings"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// windowsLauncherSuffixes are probed, in order, before the bare executable name.
var windowsLauncherSuffixes = []string{".cmd", ".bat"}

// IsWindows reports whether goos names a Windows-family operating system.
func IsWindows(goos string) bool {
	return strings.EqualFold(goos, Windows)
}

// ExecutableCandidates returns the file names to probe for an executable
// named name on goos. Windows probes launcher scripts first and the bare
// name last; every other OS probes only the bare name.
//
// When withPowerShell is set, a ".ps1" launcher is probed after ".bat".
func ExecutableCandidates(goos, name string, withPowerShell bool) []string {
	if !IsWindows(goos) {
		return []string{name}
	}

	candidates := make([]string, 0, len(windowsLauncherSuffixes)+2)
	for _, suffix := range windowsLauncherSuffixes {
		candidates = append(candidates, name+suffix)
	}
	if withPowerShell {
		candidates = append(candidates, name+".ps1")
	}
	return append(candidates, name)
}
