// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup starts the process as the leader of a new process group so
// that termination reaches the tool's own children.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminateGroup asks the process group to exit.
func terminateGroup(p *os.Process) error {
	return signalGroup(p, unix.SIGTERM)
}

// killGroup forcibly kills the process group and the process itself.
func killGroup(p *os.Process) error {
	groupErr := signalGroup(p, unix.SIGKILL)
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return errors.Join(groupErr, err)
	}
	return groupErr
}

func signalGroup(p *os.Process, sig unix.Signal) error {
	err := unix.Kill(-p.Pid, sig)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}

func signaledExitCode(ps *os.ProcessState) ExitCode {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitCode(128 + int(ws.Signal()))
	}
	return ExitCode(ps.ExitCode())
}
