// SPDX-License-Identifier: MPL-2.0

package toolpath

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/invowk/mvninvoke/pkg/invocation"
	"github.com/invowk/mvninvoke/pkg/platform"
)

const (
	// HomeProperty is the property consulted for the Maven home.
	HomeProperty = "maven.home"
	// HomeEnvVar is the primary environment variable naming the Maven home.
	HomeEnvVar = "MAVEN_HOME"
	// LegacyHomeEnvVar is consulted after HomeEnvVar.
	LegacyHomeEnvVar = "M2_HOME"

	// DefaultExecutable is the launcher looked up under <home>/bin.
	DefaultExecutable = "mvn"
	// WrapperExecutable is the project-local launcher looked up in the project directory.
	WrapperExecutable = "mvnw"
)

type (
	// Resolver decides the Maven home and executable. It holds only read-only
	// inputs and is safe for concurrent use.
	Resolver struct {
		// Properties are process-wide properties such as "maven.home".
		Properties map[string]string
		// Environ is the host environment, captured once.
		Environ map[string]string
		// GOOS selects the executable probing rules. Empty means runtime.GOOS.
		GOOS string
		// PowerShell enables probing ".ps1" launchers on Windows.
		PowerShell bool
		// Logger receives best-effort diagnostics. Nil discards them.
		Logger *slog.Logger
	}

	// Lookup carries the per-invocation inputs of ResolveExecutable.
	Lookup struct {
		// Executable is an explicit executable, absolute or a bare name.
		Executable string
		// Home is an explicit Maven home (request value or invoker default).
		Home string
		// ProjectDir is searched before <home>/bin.
		ProjectDir string
	}

	// Resolution is the outcome of Resolve.
	Resolution struct {
		// Executable is the path to launch.
		Executable string
		// Home is the Maven home the executable was found in. It is empty
		// when the executable was given as an absolute path or found in
		// the project directory.
		Home string
	}
)

// OS returns the operating system the resolver probes for.
func (r *Resolver) OS() string {
	if r.GOOS != "" {
		return r.GOOS
	}
	return runtime.GOOS
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// ResolveHome picks the Maven home from home, the "maven.home" property,
// MAVEN_HOME or M2_HOME, in that order, and validates it.
//
// A home that is not a directory but whose parent is named "bin" is taken to
// point at the executable; the grandparent is returned instead.
func (r *Resolver) ResolveHome(ctx context.Context, home string) (string, error) {
	source := "configured home"
	if home == "" {
		switch {
		case r.Properties[HomeProperty] != "":
			home, source = r.Properties[HomeProperty], "${"+HomeProperty+"}"
		case r.Environ[HomeEnvVar] != "":
			home, source = r.Environ[HomeEnvVar], HomeEnvVar
		case r.Environ[LegacyHomeEnvVar] != "":
			home, source = r.Environ[LegacyHomeEnvVar], LegacyHomeEnvVar
		default:
			return "", &invocation.ConfigurationError{
				Op: "resolve maven home",
				Err: fmt.Errorf("%w: not configured, and neither ${%s}, %s nor %s is set",
					invocation.ErrHomeNotFound, HomeProperty, HomeEnvVar, LegacyHomeEnvVar),
			}
		}
	}

	if !isDir(home) {
		binDir := filepath.Dir(home)
		if filepath.Base(binDir) != "bin" {
			return "", &invocation.ConfigurationError{
				Op:   "resolve maven home",
				Path: home,
				Err:  fmt.Errorf("%w: %s is not a directory", invocation.ErrHomeNotFound, source),
			}
		}
		// The caller pointed at the executable instead of the installation.
		home = filepath.Dir(binDir)
	}

	r.logger().DebugContext(ctx, "using maven home", "home", home, "source", source)
	return home, nil
}

// ResolveExecutable returns the canonical path of the executable to launch.
func (r *Resolver) ResolveExecutable(ctx context.Context, l Lookup) (string, error) {
	res, err := r.Resolve(ctx, l)
	if err != nil {
		return "", err
	}
	return res.Executable, nil
}

// Resolve locates the executable to launch and the home it belongs to.
//
// An absolute Lookup.Executable is returned verbatim. Otherwise the project
// directory and then <home>/bin are probed; the home is only resolved when
// the project directory has no match.
func (r *Resolver) Resolve(ctx context.Context, l Lookup) (Resolution, error) {
	if l.Executable != "" && filepath.IsAbs(l.Executable) {
		return Resolution{Executable: l.Executable}, nil
	}

	projectName, homeName := WrapperExecutable, DefaultExecutable
	if l.Executable != "" {
		projectName, homeName = l.Executable, l.Executable
	}

	var searched []string
	if l.ProjectDir != "" {
		searched = append(searched, l.ProjectDir)
		if found, ok := r.probe(l.ProjectDir, projectName); ok {
			return Resolution{Executable: CanonicalOrAbs(ctx, r.logger(), "maven executable", found)}, nil
		}
		r.logger().DebugContext(ctx, "no executable in project directory", "dir", l.ProjectDir, "name", projectName)
	}

	home, err := r.ResolveHome(ctx, l.Home)
	if err != nil {
		var cfgErr *invocation.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Searched = append(searched, cfgErr.Searched...)
		}
		return Resolution{}, err
	}

	binDir := filepath.Join(home, "bin")
	searched = append(searched, binDir)
	if found, ok := r.probe(binDir, homeName); ok {
		return Resolution{
			Executable: CanonicalOrAbs(ctx, r.logger(), "maven executable", found),
			Home:       CanonicalOrAbs(ctx, r.logger(), "maven home", home),
		}, nil
	}

	return Resolution{}, &invocation.ConfigurationError{
		Op:       "resolve maven executable",
		Path:     homeName,
		Searched: searched,
		Err:      invocation.ErrExecutableNotFound,
	}
}

// probe returns the first candidate for name in dir that is a regular file.
func (r *Resolver) probe(dir, name string) (string, bool) {
	for _, candidate := range platform.ExecutableCandidates(r.OS(), name, r.PowerShell) {
		p := filepath.Join(dir, candidate)
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
