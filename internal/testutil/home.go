// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// SetConfigHome points the platform's per-user configuration root at dir
// for the rest of the test and returns the directory that will then hold
// application config directories.
//
// Platform handling:
//   - Windows: sets APPDATA
//   - macOS: sets HOME (configuration lives under Library/Application Support)
//   - Linux/others: sets XDG_CONFIG_HOME
//
// It uses t.Setenv, so callers must not run in parallel.
func SetConfigHome(t testing.TB, dir string) string {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Setenv("APPDATA", dir)
		return dir
	case "darwin":
		t.Setenv("HOME", dir)
		return filepath.Join(dir, "Library", "Application Support")
	default:
		t.Setenv("XDG_CONFIG_HOME", dir)
		return dir
	}
}
