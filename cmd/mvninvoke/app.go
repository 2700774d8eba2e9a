// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/invowk/mvninvoke/internal/config"
	"github.com/invowk/mvninvoke/internal/logging"
	"github.com/invowk/mvninvoke/internal/metrics"
	"github.com/invowk/mvninvoke/pkg/invocation"
	"github.com/invowk/mvninvoke/pkg/invoker"
	"github.com/invowk/mvninvoke/pkg/platform"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App and builds its
	// Invoker through it.
	App struct {
		Config  ConfigProvider
		Sandbox func() platform.SandboxType
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Sandbox func() platform.SandboxType
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		configPath string
		verbose    bool
		logLevel   string
		logFormat  string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Sandbox == nil {
		deps.Sandbox = platform.DetectSandbox
	}

	return &App{
		Config:  deps.Config,
		Sandbox: deps.Sandbox,
		stdin:   deps.Stdin,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
}

// loadConfig loads configuration honoring --config.
func (a *App) loadConfig(ctx context.Context, flags *globalFlags) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, classifyError(err, flags.verbose)
	}
	return cfg, nil
}

// loadConfigWithSource is loadConfig that also reports the file read. For
// providers that cannot tell, the path is located separately.
func (a *App) loadConfigWithSource(ctx context.Context, flags *globalFlags) (*config.Config, string, error) {
	opts := config.LoadOptions{ConfigFilePath: flags.configPath}
	if sp, ok := a.Config.(config.SourceProvider); ok {
		cfg, path, err := sp.LoadWithSource(ctx, opts)
		if err != nil {
			return nil, "", classifyError(err, flags.verbose)
		}
		return cfg, path, nil
	}

	cfg, err := a.loadConfig(ctx, flags)
	if err != nil {
		return nil, "", err
	}
	path, err := config.SourcePath(opts)
	if err != nil {
		return nil, "", classifyError(err, flags.verbose)
	}
	return cfg, path, nil
}

// newLogger builds the diagnostic logger. Flags win over the config file;
// --verbose forces debug.
func (a *App) newLogger(cfg *config.Config, flags *globalFlags) (*slog.Logger, error) {
	levelName := cfg.Log.Level
	if flags.logLevel != "" {
		levelName = flags.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		level = slog.LevelDebug
	}

	format := cfg.Log.Format
	if flags.logFormat != "" {
		format = flags.logFormat
	}
	return logging.New(a.stderr, logging.Options{
		Level:  level,
		Format: strings.ToLower(format),
		Prefix: config.AppName,
	})
}

// newInvoker builds an Invoker from the loaded configuration.
func (a *App) newInvoker(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) *invoker.Invoker {
	opts := []invoker.Option{
		invoker.WithLogger(logger),
		invoker.WithInputStream(a.stdin),
		invoker.WithOutputHandler(invocation.WriterHandler(a.stdout)),
		invoker.WithErrorHandler(invocation.WriterHandler(a.stderr)),
		invoker.WithMavenHome(cfg.MavenHome),
		invoker.WithMavenExecutable(cfg.MavenExecutable),
		invoker.WithWorkingDirectory(cfg.WorkingDirectory),
		invoker.WithLocalRepositoryDirectory(cfg.LocalRepository),
		invoker.WithKillGrace(cfg.KillGrace()),
		invoker.WithRecorder(recorder),
	}
	if cfg.Sandbox.SpawnOnHost {
		if prefix := platform.HostSpawnPrefix(a.Sandbox()); len(prefix) > 0 {
			logger.Debug("launching on host from sandbox", "prefix", strings.Join(prefix, " "))
			opts = append(opts, invoker.WithSpawnPrefix(prefix))
		}
	}
	return invoker.New(opts...)
}
