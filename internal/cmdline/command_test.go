// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"slices"
	"testing"
)

func TestCommand_Environ(t *testing.T) {
	t.Parallel()

	cmd := &Command{Env: map[string]string{"B": "2", "A": "1", "C": "x=y"}}
	want := []string{"A=1", "B=2", "C=x=y"}
	if got := cmd.Environ(); !slices.Equal(got, want) {
		t.Errorf("Environ() = %q, want %q", got, want)
	}
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	cmd := &Command{
		Executable: "/opt/maven/bin/mvn",
		Args:       []string{"-D", "key with spaces=value", "install"},
	}
	want := `/opt/maven/bin/mvn -D 'key with spaces=value' install`
	if got := cmd.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
