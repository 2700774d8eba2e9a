// SPDX-License-Identifier: MPL-2.0

//go:build !unix && !windows

package runtime

import (
	"errors"
	"os"
	"os/exec"
)

var errGracefulUnsupported = errors.New("graceful termination is not supported on this platform")

func setProcessGroup(*exec.Cmd) {}

func terminateGroup(*os.Process) error { return errGracefulUnsupported }

func killGroup(p *os.Process) error {
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func signaledExitCode(ps *os.ProcessState) ExitCode { return ExitCode(ps.ExitCode()) }
