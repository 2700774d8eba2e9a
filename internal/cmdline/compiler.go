// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/anmitsu/go-shlex"

	"github.com/invowk/mvninvoke/internal/toolpath"
	"github.com/invowk/mvninvoke/pkg/invocation"
	"github.com/invowk/mvninvoke/pkg/platform"
)

type (
	// Defaults are invoker-level values used when a request leaves them unset.
	Defaults struct {
		WorkingDirectory         string
		LocalRepositoryDirectory string
		MavenHome                string
		MavenExecutable          string
	}

	// Compiler turns requests into commands. It is configured once and holds
	// no per-request state, so one Compiler may serve concurrent callers.
	Compiler struct {
		Defaults Defaults
		// Resolver locates the executable; its Environ is also the environment
		// inherited by the launched process.
		Resolver *toolpath.Resolver
		// Logger is required.
		Logger *slog.Logger
	}
)

// New creates a Compiler.
func New(logger *slog.Logger, resolver *toolpath.Resolver, defaults Defaults) *Compiler {
	return &Compiler{Defaults: defaults, Resolver: resolver, Logger: logger}
}

// Compile builds the command for req. Every failure is an
// *invocation.ConfigurationError; nothing has been launched when it returns.
func (c *Compiler) Compile(ctx context.Context, req *invocation.Request) (*Command, error) {
	if c.Logger == nil {
		return nil, invocation.NewConfigurationError("compile command line", "", invocation.ErrLoggerRequired)
	}
	resolver := c.Resolver
	if resolver == nil {
		resolver = &toolpath.Resolver{Logger: c.Logger}
	}

	dir := c.workingDirectory(ctx, req)

	resolved, err := resolver.Resolve(ctx, toolpath.Lookup{
		Executable: firstNonEmpty(req.MavenExecutable, c.Defaults.MavenExecutable),
		Home:       firstNonEmpty(req.MavenHome, c.Defaults.MavenHome),
		ProjectDir: dir,
	})
	if err != nil {
		return nil, err
	}

	var args []string
	args = appendFlags(args, req)
	args = appendReactorBehavior(args, req)

	args, err = c.appendLocalRepository(ctx, args, req)
	if err != nil {
		return nil, err
	}

	args = c.appendPomLocation(ctx, args, req, dir)
	args = c.appendSettings(ctx, args, req)
	args = appendProperties(args, req.Properties)
	args = appendProfiles(args, req.Profiles)

	args, err = appendGoals(args, req)
	if err != nil {
		return nil, err
	}

	if req.Threads != "" {
		args = append(args, flagThreads, req.Threads)
	}

	return &Command{
		Executable: resolved.Executable,
		Args:       args,
		Env:        c.environment(req, resolver.Environ, resolved.Home, platform.IsWindows(resolver.OS())),
		Dir:        dir,
	}, nil
}

// workingDirectory picks the base directory, the POM's parent, the default
// directory or the process's current directory, in that order.
func (c *Compiler) workingDirectory(ctx context.Context, req *invocation.Request) string {
	dir := req.BaseDirectory
	if dir == "" && req.PomFile != "" {
		dir = filepath.Dir(req.PomFile)
	}
	if dir == "" {
		dir = c.Defaults.WorkingDirectory
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			c.Logger.DebugContext(ctx, "failed to read current directory", "error", err)
			wd = "."
		}
		dir = wd
	} else if isFile(dir) {
		c.Logger.WarnContext(ctx, "base directory is a file, using its parent directory", "path", dir)
		dir = filepath.Dir(dir)
	}

	return toolpath.CanonicalOrAbs(ctx, c.Logger, "working directory", dir)
}

func appendFlags(args []string, req *invocation.Request) []string {
	if req.BatchMode {
		args = append(args, flagBatchMode)
	}
	if req.Offline {
		args = append(args, flagOffline)
	}

	switch req.UpdateSnapshots {
	case invocation.UpdateSnapshotsAlways:
		args = append(args, flagUpdateSnapshots)
	case invocation.UpdateSnapshotsNever:
		args = append(args, flagNoSnapshotUpdates)
	case invocation.UpdateSnapshotsDefault:
	}

	if !req.Recursive {
		args = append(args, flagNonRecursive)
	}

	// -X already shows errors; -e would be redundant.
	if req.Debug {
		args = append(args, flagDebug)
	} else if req.ShowErrors {
		args = append(args, flagShowErrors)
	}

	switch req.GlobalChecksumPolicy {
	case invocation.ChecksumPolicyFail:
		args = append(args, flagStrictChecksums)
	case invocation.ChecksumPolicyWarn:
		args = append(args, flagLaxChecksums)
	case invocation.ChecksumPolicyUnset:
	}

	if req.NonPluginUpdates {
		args = append(args, flagNonPluginUpdates)
	}
	if req.ShowVersion {
		args = append(args, flagShowVersion)
	}
	if req.Quiet {
		args = append(args, flagQuiet)
	}
	if req.NoTransferProgress {
		args = append(args, flagNoTransfer)
	}
	if req.Builder != "" {
		args = append(args, flagBuilder, req.Builder)
	}
	return args
}

func appendReactorBehavior(args []string, req *invocation.Request) []string {
	if opt := req.ReactorFailureBehavior.ShortOption(); opt != "" {
		args = append(args, "-"+opt)
	}

	if req.ResumeFrom != "" {
		args = append(args, flagResumeFrom, req.ResumeFrom)
	}

	// -am and -amd only qualify a project list.
	if len(req.Projects) > 0 {
		args = append(args, flagProjects, strings.Join(req.Projects, ","))
		if req.AlsoMake {
			args = append(args, flagAlsoMake)
		}
		if req.AlsoMakeDependents {
			args = append(args, flagAlsoMakeDeps)
		}
	}
	return args
}

func (c *Compiler) appendLocalRepository(ctx context.Context, args []string, req *invocation.Request) ([]string, error) {
	repo := req.LocalRepositoryOr(c.Defaults.LocalRepositoryDirectory)
	if repo == "" {
		return args, nil
	}

	repo = toolpath.CanonicalOrAbs(ctx, c.Logger, "local repository", repo)
	if !isDir(repo) {
		return nil, invocation.NewConfigurationError("validate local repository", repo, invocation.ErrLocalRepositoryNotDirectory)
	}

	return append(args, flagProperty, localRepoProperty+"="+repo), nil
}

// appendPomLocation emits -f unless the POM is <dir>/pom.xml. A POM inside
// dir is named by its file name, any other by its full path.
func (c *Compiler) appendPomLocation(ctx context.Context, args []string, req *invocation.Request, dir string) []string {
	pom := req.PomFile
	switch {
	case pom != "":
	case req.BaseDirectory != "" && isFile(req.BaseDirectory):
		c.Logger.WarnContext(ctx, "base directory is a file, using it as the POM location", "path", req.BaseDirectory)
		pom = req.BaseDirectory
	default:
		pom = filepath.Join(dir, firstNonEmpty(req.PomFileName, defaultPomName))
	}

	pom = toolpath.CanonicalOrAbs(ctx, c.Logger, "POM", pom)
	parent, name := filepath.Dir(pom), filepath.Base(pom)

	if parent == dir {
		if name == defaultPomName {
			return args
		}
		c.Logger.DebugContext(ctx, "POM file is not named pom.xml, passing it with -f", "pom", name)
		return append(args, flagFile, name)
	}

	c.Logger.DebugContext(ctx, "POM file is outside the working directory, passing its path with -f", "pom", pom, "dir", dir)
	return append(args, flagFile, pom)
}

func (c *Compiler) appendSettings(ctx context.Context, args []string, req *invocation.Request) []string {
	files := []struct {
		flag, what, path string
	}{
		{flagSettings, "user settings", req.UserSettingsFile},
		{flagGlobalSettings, "global settings", req.GlobalSettingsFile},
		{flagToolchains, "toolchains", req.ToolchainsFile},
		{flagGlobalToolchains, "global toolchains", req.GlobalToolchainsFile},
	}

	for _, f := range files {
		if f.path == "" {
			continue
		}
		args = append(args, f.flag, toolpath.CanonicalOrAbs(ctx, c.Logger, f.what, f.path))
	}
	return args
}

// appendProperties emits properties sorted by key so compilation is deterministic.
func appendProperties(args []string, props map[string]string) []string {
	for _, k := range slices.Sorted(maps.Keys(props)) {
		args = append(args, flagProperty, k+"="+props[k])
	}
	return args
}

func appendProfiles(args []string, profiles []string) []string {
	if len(profiles) == 0 {
		return args
	}
	return append(args, flagProfiles, strings.Join(profiles, ","))
}

// goalTokenizer splits like a shell without escapes: quotes group words and
// are dropped, backslashes stay literal so Windows paths survive.
type goalTokenizer struct {
	shlex.DefaultTokenizer
}

func (*goalTokenizer) IsEscape(rune) bool { return false }

func splitGoals(line string) ([]string, error) {
	lexer := shlex.NewLexerString(line, true, true)
	lexer.SetTokenizer(&goalTokenizer{})
	return lexer.Split()
}

// appendGoals joins Goals into one line, splits it on unquoted whitespace,
// then appends Args verbatim.
func appendGoals(args []string, req *invocation.Request) ([]string, error) {
	if len(req.Goals) > 0 {
		line := strings.Join(req.Goals, " ")
		fields, err := splitGoals(line)
		if err != nil {
			return nil, invocation.NewConfigurationError("set goals", line, fmt.Errorf("%w: %w", invocation.ErrInvalidGoals, err))
		}
		args = append(args, fields...)
	}
	return append(args, req.Args...), nil
}

// environment starts from the host environment when inherited, then applies
// derived variables, then the request's explicit overrides. A resolved home
// replaces inherited M2_HOME and MAVEN_HOME so the launcher cannot pick up a
// different installation. foldCase makes later keys replace earlier ones
// that differ only in case, as Windows treats them as one variable.
func (c *Compiler) environment(req *invocation.Request, host map[string]string, home string, foldCase bool) map[string]string {
	env := make(map[string]string)
	set := func(key, value string) {
		if foldCase {
			for k := range env {
				if k != key && strings.EqualFold(k, key) {
					delete(env, k)
				}
			}
		}
		env[key] = value
	}

	if req.ShellEnvironmentInherited {
		maps.Copy(env, host)
		set(EnvTerminateCmd, "on")
		if home != "" {
			set(toolpath.LegacyHomeEnvVar, home)
			set(toolpath.HomeEnvVar, home)
		}
	}

	if req.JavaHome != "" {
		javaHome, err := filepath.Abs(req.JavaHome)
		if err != nil {
			javaHome = req.JavaHome
		}
		set(EnvJavaHome, javaHome)
	}
	if req.MavenOpts != "" {
		set(EnvMavenOpts, req.MavenOpts)
	}

	for _, k := range slices.Sorted(maps.Keys(req.ShellEnvironments)) {
		set(k, req.ShellEnvironments[k])
	}
	return env
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
