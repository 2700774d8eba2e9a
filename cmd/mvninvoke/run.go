// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/invowk/mvninvoke/internal/metrics"
	"github.com/invowk/mvninvoke/pkg/invocation"
)

// Exit codes for runs that did not produce a build exit status.
const (
	exitCodeFailure  = 1
	exitCodeTimeout  = 124
	exitCodeCanceled = 130
)

func newRunCommand(app *App, global *globalFlags) *cobra.Command {
	rf := &requestFlags{}

	runCmd := &cobra.Command{
		Use:   "run [goals...] [-- args...]",
		Short: "Run a Maven build",
		Long: `Run a Maven build and exit with its exit code.

Goals are re-split on whitespace: quotes group words and backslashes are
kept, so "clean install", '"-Dkey=a b"' and -Drepo=C:\m2 all behave as
expected. Tokens after -- are passed through verbatim.`,
		Example: `  mvninvoke run clean install
  mvninvoke run -d ./service -P ci --projects core --also-make verify
  mvninvoke run --timeout 15m package -- -Dmaven.test.skip=true`,
		RunE: func(cmd *cobra.Command, positional []string) error {
			ctx := cmd.Context()

			cfg, err := app.loadConfig(ctx, global)
			if err != nil {
				return fail(cmd, app, err, exitCodeFailure)
			}
			logger, err := app.newLogger(cfg, global)
			if err != nil {
				return fail(cmd, app, err, exitCodeFailure)
			}

			goals, args := splitAtDash(cmd, positional)
			req, err := rf.toRequest(cmd, cfg, goals, args)
			if err != nil {
				return fail(cmd, app, err, exitCodeFailure)
			}

			recorder, flush := newMetrics(rf.metricsTextfileOr(cfg))
			defer func() {
				if err := flush(); err != nil {
					logger.Warn("failed to write metrics", "error", err)
				}
			}()

			res, err := app.newInvoker(cfg, logger, recorder).Execute(ctx, req)
			if err != nil {
				return fail(cmd, app, classifyError(err, global.verbose), exitCodeFailure)
			}
			return exitWith(cmd, app, res, global.verbose, logger)
		},
	}
	rf.register(runCmd.Flags())
	return runCmd
}

// exitWith maps a finished invocation onto the CLI exit code.
func exitWith(cmd *cobra.Command, app *App, res *invocation.Result, verbose bool, logger *slog.Logger) error {
	if res.ExecutionError != nil {
		code := exitCodeFailure
		switch {
		case errors.Is(res.ExecutionError, invocation.ErrTimeout):
			code = exitCodeTimeout
		case errors.Is(res.ExecutionError, invocation.ErrCanceled):
			code = exitCodeCanceled
		}
		return fail(cmd, app, classifyError(res.ExecutionError, verbose), code)
	}
	if res.ExitCode != 0 {
		logger.Debug("build failed", "exit_code", res.ExitCode)
		cmd.SilenceErrors = true
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

// fail renders err and returns an ExitError carrying code. Rendering here
// keeps fang from printing the error a second time.
func fail(cmd *cobra.Command, app *App, err error, code int) error {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		svcErr = newServiceError(err, 0, "\n"+ErrorStyle.Render("Error:")+" "+err.Error()+"\n")
	}
	renderServiceError(app.stderr, svcErr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: code, Err: err}
}

// newMetrics returns a Prometheus recorder and a function that writes its
// metrics to path. Without a path, metrics are discarded.
func newMetrics(path string) (metrics.Recorder, func() error) {
	if path == "" {
		return metrics.NoopRecorder{}, func() error { return nil }
	}
	reg := prom.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), func() error {
		return metrics.WriteTextfile(reg, path)
	}
}
