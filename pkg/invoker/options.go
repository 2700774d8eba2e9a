// SPDX-License-Identifier: MPL-2.0

package invoker

import (
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/invowk/mvninvoke/internal/metrics"
	"github.com/invowk/mvninvoke/pkg/invocation"
)

// Option configures an Invoker.
type Option func(*Invoker)

// WithLogger sets the logger. A nil logger makes every Execute fail with
// invocation.ErrLoggerRequired.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Invoker) {
		i.logger = logger
	}
}

// WithInputStream sets the stdin source used for interactive requests that
// bring no input of their own.
//
// Input is copied on a goroutine that ends only when r returns EOF or an
// error. A reader that blocks forever, such as an idle terminal, keeps that
// goroutine alive after Execute returns; readers with read deadlines (os.Pipe
// ends, net.Conn) are given an expired deadline once the run is over.
func WithInputStream(r io.Reader) Option {
	return func(i *Invoker) {
		i.input = r
	}
}

// WithOutputHandler sets the default stdout consumer.
func WithOutputHandler(h invocation.OutputHandler) Option {
	return func(i *Invoker) {
		i.output = h
	}
}

// WithErrorHandler sets the default stderr consumer.
func WithErrorHandler(h invocation.OutputHandler) Option {
	return func(i *Invoker) {
		i.errOutput = h
	}
}

// WithWorkingDirectory sets the directory used when a request names neither
// a base directory nor a POM file.
func WithWorkingDirectory(dir string) Option {
	return func(i *Invoker) {
		i.defaults.WorkingDirectory = dir
	}
}

// WithLocalRepositoryDirectory sets the default local repository.
func WithLocalRepositoryDirectory(dir string) Option {
	return func(i *Invoker) {
		i.defaults.LocalRepositoryDirectory = dir
	}
}

// WithMavenHome sets the default Maven home.
func WithMavenHome(dir string) Option {
	return func(i *Invoker) {
		i.defaults.MavenHome = dir
	}
}

// WithMavenExecutable sets the default executable, absolute or a bare name.
func WithMavenExecutable(exe string) Option {
	return func(i *Invoker) {
		i.defaults.MavenExecutable = exe
	}
}

// WithProperties sets the process-wide properties consulted for the Maven
// home ("maven.home"). The map is copied.
func WithProperties(props map[string]string) Option {
	return func(i *Invoker) {
		i.properties = maps.Clone(props)
	}
}

// WithEnviron replaces the captured host environment. The map is copied.
func WithEnviron(env map[string]string) Option {
	return func(i *Invoker) {
		i.environ = maps.Clone(env)
	}
}

// WithPowerShell enables probing ".ps1" launchers on Windows.
func WithPowerShell(enabled bool) Option {
	return func(i *Invoker) {
		i.powerShell = enabled
	}
}

// WithKillGrace sets how long a terminated process may take to exit before
// it is killed.
func WithKillGrace(d time.Duration) Option {
	return func(i *Invoker) {
		i.killGrace = d
	}
}

// WithSpawnPrefix prepends argv to every launch, e.g. "flatpak-spawn --host".
func WithSpawnPrefix(argv []string) Option {
	return func(i *Invoker) {
		i.spawnPrefix = slices.Clone(argv)
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(i *Invoker) {
		i.recorder = r
	}
}

// WithIDGenerator overrides how invocation IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(i *Invoker) {
		i.newID = fn
	}
}
