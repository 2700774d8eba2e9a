// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
)

// ExitCode represents a process exit status code.
// Exit codes are in the range 0-255 on POSIX systems; processes killed by
// a signal are reported as 128 plus the signal number.
type ExitCode int

// IsSignal reports whether the code encodes termination by a signal.
func (c ExitCode) IsSignal() bool { return c > 128 && c <= 128+64 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// exitCodeOf extracts the exit code from the error returned by exec.Cmd.Wait.
// ok is false when err does not describe a process exit.
func exitCodeOf(err error) (code ExitCode, ok bool) {
	if err == nil {
		return 0, true
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, false
	}
	return exitCodeFromState(exitErr.ProcessState), true
}

// exitCodeFromState maps a process state to an exit code. Windows codes are
// 32-bit and are returned as-is.
func exitCodeFromState(ps *os.ProcessState) ExitCode {
	if code := ps.ExitCode(); code >= 0 {
		return ExitCode(code)
	}
	return signaledExitCode(ps)
}
