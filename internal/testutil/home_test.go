// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSetConfigHome(t *testing.T) {
	dir := t.TempDir()
	got := SetConfigHome(t, dir)

	var env string
	switch runtime.GOOS {
	case "windows":
		env = "APPDATA"
	case "darwin":
		env = "HOME"
		if want := filepath.Join(dir, "Library", "Application Support"); got != want {
			t.Errorf("SetConfigHome() = %q, want %q", got, want)
		}
	default:
		env = "XDG_CONFIG_HOME"
	}
	if runtime.GOOS != "darwin" && got != dir {
		t.Errorf("SetConfigHome() = %q, want %q", got, dir)
	}
	if v := os.Getenv(env); v != dir {
		t.Errorf("%s = %q, want %q", env, v, dir)
	}
}
