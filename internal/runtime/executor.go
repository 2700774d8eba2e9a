// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/invowk/mvninvoke/internal/cmdline"
	"github.com/invowk/mvninvoke/pkg/invocation"
)

// DefaultKillGrace is how long a terminated process group may take to exit
// before it is killed.
const DefaultKillGrace = 3 * time.Second

type (
	// Executor launches commands and supervises them until they exit.
	// It holds no per-run state and may be shared by concurrent callers.
	Executor struct {
		// Logger receives lifecycle diagnostics. Nil discards them.
		Logger *slog.Logger
		// KillGrace overrides DefaultKillGrace when positive.
		KillGrace time.Duration
		// SpawnPrefix is prepended to every launch, e.g. to escape a Flatpak sandbox.
		SpawnPrefix []string
	}

	// Streams wires the process's standard streams.
	Streams struct {
		// Input feeds stdin when non-nil. A nil Input leaves stdin at the
		// null device. The copy runs until Input returns EOF or an error,
		// which may be after Run has returned. Readers with read deadlines
		// (pipes, network connections) get an expired deadline once the run
		// is over.
		Input io.Reader
		// Output receives stdout lines. Nil discards them.
		Output invocation.OutputHandler
		// Error receives stderr lines. Nil discards them.
		Error invocation.OutputHandler
	}

	// Outcome describes how a run ended.
	Outcome struct {
		// ExitCode is invocation.ExitCodeUnset unless the process reported an exit.
		ExitCode int
		// Err is an *invocation.ExecutionError, or nil when ExitCode is authoritative.
		Err error
		// PID is the process ID, or zero if the process never started.
		PID int
		// Duration is the wall time from launch to completion.
		Duration time.Duration
	}
)

func (e *Executor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (e *Executor) killGrace() time.Duration {
	if e.KillGrace > 0 {
		return e.KillGrace
	}
	return DefaultKillGrace
}

// Run launches cmd and blocks until it has exited and both output streams
// are drained. A positive timeout bounds the run; on expiry, or when ctx
// ends first, the process group is terminated and the Outcome carries
// KindTimeout or KindCanceled with an unset exit code.
func (e *Executor) Run(ctx context.Context, cmd *cmdline.Command, streams Streams, timeout time.Duration) *Outcome {
	out := &Outcome{ExitCode: invocation.ExitCodeUnset}
	start := time.Now()
	defer func() { out.Duration = time.Since(start) }()

	log := e.logger()
	c := e.prepare(cmd)

	stdout, err := c.StdoutPipe()
	if err != nil {
		out.Err = launchError(err)
		return out
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		out.Err = launchError(err)
		return out
	}
	var stdin io.WriteCloser
	if streams.Input != nil {
		if stdin, err = c.StdinPipe(); err != nil {
			out.Err = launchError(err)
			return out
		}
	}

	if err := c.Start(); err != nil {
		out.Err = launchError(err)
		return out
	}
	out.PID = c.Process.Pid
	log.DebugContext(ctx, "process started", "pid", out.PID, "executable", c.Path, "dir", c.Dir)

	if stdin != nil {
		// Not waited on: the reader may block forever (e.g., an idle terminal)
		// and must not delay completion.
		fed := make(chan struct{})
		go func() {
			defer close(fed)
			feedInput(ctx, log, stdin, streams.Input)
		}()
		defer releaseInput(streams.Input, fed)
	}

	var (
		wg        sync.WaitGroup
		closing   atomic.Bool
		streamErr = make(chan error, 2)
	)
	pump := func(name string, r io.Reader, h invocation.OutputHandler) {
		if h == nil {
			h = invocation.NopHandler()
		}
		if err := pumpLines(r, h); err != nil && !closing.Load() {
			streamErr <- fmt.Errorf("%s: %w", name, err)
			// Keep the pipe drained so the process cannot block on a full buffer.
			_, _ = io.Copy(io.Discard, r)
		}
	}
	wg.Go(func() { pump("stdout", stdout, streams.Output) })
	wg.Go(func() { pump("stderr", stderr, streams.Error) })

	// Wait must follow the pumps: it closes the pipes once the process exits.
	done := make(chan error, 1)
	go func() {
		wg.Wait()
		done <- c.Wait()
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	var waitErr error
	select {
	case waitErr = <-done:
	case <-expired:
		log.WarnContext(ctx, "process timed out, terminating", "pid", out.PID, "timeout", timeout)
		closing.Store(true)
		e.terminate(ctx, c, done, stdout, stderr)
		out.Err = &invocation.ExecutionError{Kind: invocation.KindTimeout, Timeout: timeout}
		return out
	case <-ctx.Done():
		log.WarnContext(ctx, "invocation canceled, terminating process", "pid", out.PID)
		closing.Store(true)
		e.terminate(ctx, c, done, stdout, stderr)
		out.Err = &invocation.ExecutionError{Kind: invocation.KindCanceled, Err: context.Cause(ctx)}
		return out
	}

	select {
	case err := <-streamErr:
		out.Err = &invocation.ExecutionError{Kind: invocation.KindStream, Err: err}
		return out
	default:
	}

	code, ok := exitCodeOf(waitErr)
	if !ok {
		out.Err = &invocation.ExecutionError{Kind: invocation.KindStream, Err: waitErr}
		return out
	}
	out.ExitCode = int(code)
	if code.IsSignal() {
		log.DebugContext(ctx, "process exited with a signal status", "pid", out.PID, "exit_code", code.String())
	} else {
		log.DebugContext(ctx, "process exited", "pid", out.PID, "exit_code", code.String())
	}
	return out
}

// prepare builds the exec.Cmd for cmd, applying the spawn prefix.
func (e *Executor) prepare(cmd *cmdline.Command) *exec.Cmd {
	name, args := cmd.Executable, cmd.Args
	if len(e.SpawnPrefix) > 0 {
		name = e.SpawnPrefix[0]
		args = slices.Concat(e.SpawnPrefix[1:], []string{cmd.Executable}, cmd.Args)
	}

	c := exec.Command(name, args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Environ()
	setProcessGroup(c)
	return c
}

// terminate asks the process group to exit, kills it after the grace period,
// and waits for the supervisor goroutine to finish.
func (e *Executor) terminate(ctx context.Context, c *exec.Cmd, done <-chan error, pipes ...io.Closer) {
	log := e.logger()

	if err := terminateGroup(c.Process); err == nil {
		grace := time.NewTimer(e.killGrace())
		defer grace.Stop()
		select {
		case <-done:
			return
		case <-grace.C:
			log.WarnContext(ctx, "process did not exit after termination request, killing", "pid", c.Process.Pid, "grace", e.killGrace())
		}
	} else {
		log.DebugContext(ctx, "graceful termination unavailable", "pid", c.Process.Pid, "error", err)
	}

	if err := killGroup(c.Process); err != nil {
		log.DebugContext(ctx, "kill failed", "pid", c.Process.Pid, "error", err)
	}
	// Descendants outside the group may still hold the pipes open.
	for _, p := range pipes {
		_ = p.Close()
	}
	<-done
}

// feedInput copies input to the process's stdin and closes it at end of input.
func feedInput(ctx context.Context, log *slog.Logger, stdin io.WriteCloser, input io.Reader) {
	defer func() { _ = stdin.Close() }()
	if _, err := io.Copy(stdin, input); err != nil && !isClosedPipe(err) && !errors.Is(err, os.ErrDeadlineExceeded) {
		log.DebugContext(ctx, "failed to write process input", "error", err)
	}
}

// releaseInput interrupts a read still pending on input after the run has
// ended. Only readers with read deadlines can be interrupted; the deadline
// is left in place.
func releaseInput(input io.Reader, fed <-chan struct{}) {
	select {
	case <-fed:
		return
	default:
	}
	if d, ok := input.(interface{ SetReadDeadline(t time.Time) error }); ok {
		_ = d.SetReadDeadline(time.Now())
	}
}

func isClosedPipe(err error) bool {
	return errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EPIPE)
}

func launchError(err error) *invocation.ExecutionError {
	return &invocation.ExecutionError{Kind: invocation.KindLaunch, Err: err}
}
