// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// errGracefulUnsupported reports that console processes cannot be asked to
// exit without a console control event, which a piped child does not receive.
var errGracefulUnsupported = errors.New("graceful termination is not supported on windows")

func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

func terminateGroup(*os.Process) error {
	return errGracefulUnsupported
}

func killGroup(p *os.Process) error {
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func signaledExitCode(ps *os.ProcessState) ExitCode {
	return ExitCode(ps.ExitCode())
}
