// SPDX-License-Identifier: MPL-2.0

package invoker

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/invowk/mvninvoke/internal/cmdline"
	"github.com/invowk/mvninvoke/internal/logging"
	"github.com/invowk/mvninvoke/internal/metrics"
	"github.com/invowk/mvninvoke/internal/runtime"
	"github.com/invowk/mvninvoke/internal/toolpath"
	"github.com/invowk/mvninvoke/pkg/invocation"
)

// Invoker compiles and runs invocation requests. Its configuration is fixed
// at construction, so one Invoker may serve concurrent Execute calls.
type Invoker struct {
	logger      *slog.Logger
	input       io.Reader
	output      invocation.OutputHandler
	errOutput   invocation.OutputHandler
	defaults    cmdline.Defaults
	properties  map[string]string
	environ     map[string]string
	powerShell  bool
	killGrace   time.Duration
	spawnPrefix []string
	recorder    metrics.Recorder
	newID       func() string

	resolver *toolpath.Resolver
}

// New creates an Invoker. The host environment is captured here, once; later
// changes to the process environment do not affect it.
func New(opts ...Option) *Invoker {
	i := &Invoker{
		logger:    slog.Default(),
		output:    invocation.WriterHandler(os.Stdout),
		errOutput: invocation.WriterHandler(os.Stderr),
		recorder:  metrics.NoopRecorder{},
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.environ == nil {
		i.environ = runtime.HostEnviron()
	}

	i.resolver = &toolpath.Resolver{
		Properties: i.properties,
		Environ:    i.environ,
		PowerShell: i.powerShell,
		Logger:     i.logger,
	}
	return i
}

// Compile returns the command Execute would launch for req, without
// launching it.
func (i *Invoker) Compile(ctx context.Context, req *invocation.Request) (*cmdline.Command, error) {
	if i.logger == nil {
		return nil, invocation.NewConfigurationError("compile command line", "", invocation.ErrLoggerRequired)
	}
	return cmdline.New(i.logger, i.resolver, i.defaults).Compile(ctx, req)
}

// Execute compiles req and runs it to completion.
//
// The returned error is non-nil only for configuration problems, in which
// case nothing was launched. Every other outcome is described by the Result.
func (i *Invoker) Execute(ctx context.Context, req *invocation.Request) (*invocation.Result, error) {
	if i.logger == nil {
		err := invocation.NewConfigurationError("execute invocation", "", invocation.ErrLoggerRequired)
		i.record(nil, err)
		return nil, err
	}

	id := i.newID()
	log := i.logger.With("invocation", id)

	cmd, err := cmdline.New(log, i.resolver, i.defaults).Compile(ctx, req)
	if err != nil {
		log.ErrorContext(ctx, "invalid invocation", "error", err)
		i.record(nil, err)
		return nil, err
	}

	if logging.DebugEnabled(ctx, log) {
		log.DebugContext(ctx, "executing: "+cmd.String(), "dir", cmd.Dir)
	}

	executor := &runtime.Executor{Logger: log, KillGrace: i.killGrace, SpawnPrefix: i.spawnPrefix}
	out := executor.Run(ctx, cmd, i.streams(ctx, log, req), timeoutOf(req))

	res := invocation.NewResult(id)
	res.ExitCode = out.ExitCode
	res.Duration = out.Duration
	if out.Err != nil {
		res.ExecutionError = out.Err
		log.ErrorContext(ctx, "invocation failed", "error", out.Err, "duration", out.Duration)
	} else {
		log.InfoContext(ctx, "invocation finished", "exit_code", res.ExitCode, "duration", out.Duration)
	}

	i.record(res, nil)
	return res, nil
}

// streams selects stdin and the output consumers for req. Batch mode never
// feeds input.
func (i *Invoker) streams(ctx context.Context, log *slog.Logger, req *invocation.Request) runtime.Streams {
	s := runtime.Streams{
		Output: req.OutputHandlerOr(i.output),
		Error:  req.ErrorHandlerOr(i.errOutput),
	}

	input := req.InputStreamOr(i.input)
	switch {
	case req.BatchMode && input != nil:
		log.InfoContext(ctx, "batch mode enabled, ignoring input stream")
	case !req.BatchMode && input == nil:
		log.WarnContext(ctx, "interactive mode without an input stream, the process may wait for input that never arrives")
	case !req.BatchMode:
		s.Input = input
	}
	return s
}

func (i *Invoker) record(res *invocation.Result, err error) {
	if i.recorder == nil {
		return
	}
	outcome := metrics.Classify(res, err)
	i.recorder.IncInvocation(outcome)
	if res != nil {
		i.recorder.ObserveInvocationDuration(outcome, res.Duration)
	}
}

func timeoutOf(req *invocation.Request) time.Duration {
	if req.TimeoutInSeconds <= invocation.NoTimeout {
		return 0
	}
	return time.Duration(req.TimeoutInSeconds) * time.Second
}
