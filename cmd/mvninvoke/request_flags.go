// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/invowk/mvninvoke/internal/config"
	"github.com/invowk/mvninvoke/internal/runtime"
	"github.com/invowk/mvninvoke/pkg/invocation"
)

// requestFlags are the flags shared by run and compile. Each maps onto one
// invocation.Request field.
type requestFlags struct {
	baseDir     string
	pomFile     string
	pomFileName string

	defines  []string
	profiles []string

	batch              bool
	debug              bool
	offline            bool
	updateSnapshots    string
	nonRecursive       bool
	showErrors         bool
	nonPluginUpdates   bool
	showVersion        bool
	quiet              bool
	noTransferProgress bool

	reactorFailure string
	projects       []string
	alsoMake       bool
	alsoMakeDeps   bool
	resumeFrom     string

	checksumPolicy string
	builder        string
	threads        string

	settings         string
	globalSettings   string
	toolchains       string
	globalToolchains string
	localRepository  string

	javaHome     string
	mavenOpts    string
	noInheritEnv bool
	envVars      []string
	envFiles     []string

	mavenHome       string
	mavenExecutable string
	timeout         time.Duration

	metricsTextfile string
}

func (f *requestFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.baseDir, "basedir", "d", "", "project directory (or POM file) to build")
	fs.StringVarP(&f.pomFile, "file", "f", "", "explicit POM file")
	fs.StringVar(&f.pomFileName, "pom-name", "", "POM file name relative to the project directory")

	fs.StringArrayVarP(&f.defines, "define", "D", nil, "build property KEY=VALUE (repeatable)")
	fs.StringSliceVarP(&f.profiles, "activate-profiles", "P", nil, "profiles to activate")

	fs.BoolVarP(&f.batch, "batch", "B", true, "run in non-interactive batch mode")
	fs.BoolVarP(&f.debug, "debug", "X", false, "produce Maven debug output")
	fs.BoolVarP(&f.offline, "offline", "o", false, "work offline")
	fs.StringVar(&f.updateSnapshots, "update-snapshots", "default", "snapshot updates: always, never, default")
	fs.BoolVarP(&f.nonRecursive, "non-recursive", "N", false, "do not recurse into sub-projects")
	fs.BoolVarP(&f.showErrors, "errors", "e", false, "produce execution error messages")
	fs.BoolVar(&f.nonPluginUpdates, "no-plugin-updates", false, "suppress plugin update checks")
	fs.BoolVarP(&f.showVersion, "show-version", "V", false, "display Maven version without stopping the build")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "quiet Maven output, errors only")
	fs.BoolVar(&f.noTransferProgress, "no-transfer-progress", false, "do not display transfer progress")

	fs.StringVar(&f.reactorFailure, "reactor-failure", "fail-fast", "reactor failure behavior: fail-fast, fail-at-end, fail-never")
	fs.StringSliceVar(&f.projects, "projects", nil, "reactor projects to build")
	fs.BoolVar(&f.alsoMake, "also-make", false, "also build projects required by --projects")
	fs.BoolVar(&f.alsoMakeDeps, "also-make-dependents", false, "also build projects that depend on --projects")
	fs.StringVar(&f.resumeFrom, "resume-from", "", "resume the reactor from this project")

	fs.StringVar(&f.checksumPolicy, "checksum-policy", "", "global checksum policy: fail, warn")
	fs.StringVarP(&f.builder, "builder", "b", "", "reactor builder id")
	fs.StringVarP(&f.threads, "threads", "T", "", "thread count, e.g. 4 or 2.0C")

	fs.StringVarP(&f.settings, "settings", "s", "", "user settings file")
	fs.StringVar(&f.globalSettings, "global-settings", "", "global settings file")
	fs.StringVar(&f.toolchains, "toolchains", "", "user toolchains file")
	fs.StringVar(&f.globalToolchains, "global-toolchains", "", "global toolchains file")
	fs.StringVar(&f.localRepository, "local-repository", "", "local repository directory")

	fs.StringVar(&f.javaHome, "java-home", "", "JAVA_HOME for the build")
	fs.StringVar(&f.mavenOpts, "maven-opts", "", "MAVEN_OPTS for the build")
	fs.BoolVar(&f.noInheritEnv, "no-inherit-env", false, "do not pass the host environment to the build")
	fs.StringArrayVar(&f.envVars, "env", nil, "environment variable KEY=VALUE (repeatable)")
	fs.StringArrayVar(&f.envFiles, "env-file", nil, "dotenv file to load; suffix with ? to make it optional (repeatable)")

	fs.StringVar(&f.mavenHome, "maven-home", "", "Maven installation directory")
	fs.StringVar(&f.mavenExecutable, "maven-executable", "", "Maven executable name or absolute path")
	fs.DurationVar(&f.timeout, "timeout", 0, "kill the build after this duration (0 uses the configured timeout)")

	fs.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
}

// toRequest builds the request for goals and args. Configuration supplies
// defaults that explicitly set flags override.
func (f *requestFlags) toRequest(cmd *cobra.Command, cfg *config.Config, goals, args []string) (*invocation.Request, error) {
	req := invocation.NewRequest()
	req.BaseDirectory = f.baseDir
	req.PomFile = f.pomFile
	req.PomFileName = f.pomFileName
	req.Goals = goals
	req.Args = args
	req.Profiles = f.profiles

	props, err := parseKeyValues("define", f.defines)
	if err != nil {
		return nil, err
	}
	req.Properties = mergeMaps(cfg.Properties, props)

	req.BatchMode = cfg.BatchMode
	if cmd.Flags().Changed("batch") {
		req.BatchMode = f.batch
	}
	req.Debug = f.debug
	req.Offline = f.offline
	if req.UpdateSnapshots, err = invocation.ParseUpdateSnapshotsPolicy(f.updateSnapshots); err != nil {
		return nil, err
	}
	req.Recursive = !f.nonRecursive
	req.ShowErrors = f.showErrors
	req.NonPluginUpdates = f.nonPluginUpdates
	req.ShowVersion = f.showVersion
	req.Quiet = f.quiet
	req.NoTransferProgress = f.noTransferProgress

	if req.ReactorFailureBehavior, err = invocation.ParseReactorFailureBehavior(f.reactorFailure); err != nil {
		return nil, err
	}
	req.Projects = f.projects
	req.AlsoMake = f.alsoMake
	req.AlsoMakeDependents = f.alsoMakeDeps
	req.ResumeFrom = f.resumeFrom

	if req.GlobalChecksumPolicy, err = invocation.ParseChecksumPolicy(f.checksumPolicy); err != nil {
		return nil, err
	}
	req.Builder = f.builder
	req.Threads = f.threads

	req.UserSettingsFile = f.settings
	req.GlobalSettingsFile = f.globalSettings
	req.ToolchainsFile = f.toolchains
	req.GlobalToolchainsFile = f.globalToolchains
	req.LocalRepositoryDirectory = f.localRepository

	req.JavaHome = f.javaHome
	req.MavenOpts = f.mavenOpts
	req.ShellEnvironmentInherited = !f.noInheritEnv
	if req.ShellEnvironments, err = f.environment(cfg); err != nil {
		return nil, err
	}

	req.MavenHome = f.mavenHome
	req.MavenExecutable = f.mavenExecutable

	req.TimeoutInSeconds = cfg.TimeoutSeconds
	if f.timeout > 0 {
		req.TimeoutInSeconds = max(1, int(f.timeout.Round(time.Second)/time.Second))
	}
	return req, nil
}

// environment layers configured variables, env files and --env, in that
// order of increasing precedence.
func (f *requestFlags) environment(cfg *config.Config) (map[string]string, error) {
	env := maps.Clone(cfg.Env)
	if env == nil {
		env = make(map[string]string)
	}

	if len(f.envFiles) > 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		for _, path := range f.envFiles {
			if err := runtime.LoadEnvFile(env, path, cwd); err != nil {
				return nil, err
			}
		}
	}

	vars, err := parseKeyValues("env", f.envVars)
	if err != nil {
		return nil, err
	}
	maps.Copy(env, vars)

	if len(env) == 0 {
		return nil, nil
	}
	return env, nil
}

// metricsTextfileOr returns the --metrics-textfile value or the configured one.
func (f *requestFlags) metricsTextfileOr(cfg *config.Config) string {
	if f.metricsTextfile != "" {
		return f.metricsTextfile
	}
	return cfg.Metrics.Textfile
}

// parseKeyValues parses KEY=VALUE entries. The value may be empty or
// contain further '=' characters; the key may not be empty.
func parseKeyValues(flag string, entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	result := make(map[string]string, len(entries))
	for _, kv := range entries {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			// -D name without a value defines the property as "true".
			if flag == "define" && key != "" {
				result[key] = "true"
				continue
			}
			return nil, fmt.Errorf("--%s %q: expected KEY=VALUE", flag, kv)
		}
		if key == "" {
			return nil, fmt.Errorf("--%s %q: empty key", flag, kv)
		}
		result[key] = value
	}
	return result, nil
}

func mergeMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]string, len(override))
	}
	maps.Copy(out, override)
	return out
}

// splitAtDash separates goals from the tokens after "--", which are passed
// through verbatim.
func splitAtDash(cmd *cobra.Command, positional []string) (goals, args []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return positional, nil
	}
	return positional[:dash], positional[dash:]
}
