// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"strings"
)

// HostEnviron captures the current process environment as a map. It is
// meant to be called once, when an invoker is built.
func HostEnviron() map[string]string {
	return EnvironMap(os.Environ())
}

// EnvironMap converts "KEY=value" entries into a map. Entries without '=' are
// skipped; later duplicates win. Windows pseudo-variables such as "=C:" are
// kept under their full name.
func EnvironMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		// Skip the leading '=' of Windows per-drive variables when cutting.
		key, value, found := strings.Cut(entry[min(1, len(entry)):], "=")
		if !found {
			continue
		}
		if strings.HasPrefix(entry, "=") {
			key = "=" + key
		}
		env[key] = value
	}
	return env
}
