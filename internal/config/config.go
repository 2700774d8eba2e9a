// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/invowk/mvninvoke/internal/issue"
	"github.com/invowk/mvninvoke/pkg/platform"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "mvninvoke"
	// EnvPrefix prefixes environment variables that override file settings.
	EnvPrefix = "MVNINVOKE"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the preferred config file extension.
	ConfigFileExt = "cue"
	// TOMLFileExt is the alternative config file extension.
	TOMLFileExt = "toml"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the mvninvoke configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// SourcePath returns the config file that Load would read, or "" when none
// exists and defaults apply.
func SourcePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'mvninvoke config init' to create a configuration file").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	for _, candidate := range []string{
		filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
		filepath.Join(cfgDir, ConfigFileName+"."+TOMLFileExt),
		ConfigFileName + "." + ConfigFileExt,
		ConfigFileName + "." + TOMLFileExt,
	} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	resolvedPath, err := SourcePath(opts)
	if err != nil {
		return nil, "", err
	}

	var configMap map[string]any
	if resolvedPath != "" {
		configMap, err = loadFileMap(resolvedPath)
		if err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'mvninvoke config dump' to see the effective configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
		// Viper preserves defaults and lets env overrides win.
		if err := v.MergeConfigMap(configMap); err != nil {
			return nil, "", fmt.Errorf("failed to merge config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	// Viper lowercases keys, which would corrupt property and variable names.
	cfg.Properties = stringMap(configMap["properties"])
	cfg.Env = stringMap(configMap["env"])

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check MVNINVOKE_* environment variables for invalid values").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	defaults := DefaultConfig()
	v.SetDefault("maven_home", defaults.MavenHome)
	v.SetDefault("maven_executable", defaults.MavenExecutable)
	v.SetDefault("working_directory", defaults.WorkingDirectory)
	v.SetDefault("local_repository", defaults.LocalRepository)
	v.SetDefault("timeout_seconds", defaults.TimeoutSeconds)
	v.SetDefault("kill_grace_seconds", defaults.KillGraceSeconds)
	v.SetDefault("batch_mode", defaults.BatchMode)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("sandbox.spawn_on_host", defaults.Sandbox.SpawnOnHost)
	v.SetDefault("metrics.textfile", defaults.Metrics.Textfile)
	return v
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadFileMap reads a CUE or TOML config file, validates it against the
// #Config schema and returns its contents as a map.
func loadFileMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := checkFileSize(data, maxConfigFileSize, path); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	var userValue cue.Value
	if strings.EqualFold(filepath.Ext(path), "."+TOMLFileExt) {
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		userValue = ctx.Encode(raw)
	} else {
		userValue = ctx.CompileBytes(data, cue.Filename(path))
	}
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}

	// Config fields are optional, so validation does not require concreteness.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, formatCUEError(err, path)
	}
	return configMap, nil
}

func stringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = fmt.Sprint(val)
	}
	return out
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration into cfgDir (the
// platform config directory when empty) unless a config file already exists
// there. format is "cue" or "toml". It returns the file path and whether it
// was written.
func CreateDefaultConfig(cfgDir, format string) (string, bool, error) {
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", false, err
		}
		cfgDir = dir
	}
	if format == "" {
		format = ConfigFileExt
	}

	var content []byte
	switch format {
	case ConfigFileExt:
		content = []byte(GenerateCUE(DefaultConfig()))
	case TOMLFileExt:
		b, err := GenerateTOML(DefaultConfig())
		if err != nil {
			return "", false, err
		}
		content = b
	default:
		return "", false, fmt.Errorf("unsupported config format %q (expected %s or %s)", format, ConfigFileExt, TOMLFileExt)
	}

	for _, ext := range []string{ConfigFileExt, TOMLFileExt} {
		existing := filepath.Join(cfgDir, ConfigFileName+"."+ext)
		if fileExists(existing) {
			return existing, false, nil
		}
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+format)
	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// mvninvoke configuration file\n\n")

	if cfg.MavenHome != "" {
		fmt.Fprintf(&sb, "maven_home: %q\n", cfg.MavenHome)
	}
	if cfg.MavenExecutable != "" {
		fmt.Fprintf(&sb, "maven_executable: %q\n", cfg.MavenExecutable)
	}
	if cfg.WorkingDirectory != "" {
		fmt.Fprintf(&sb, "working_directory: %q\n", cfg.WorkingDirectory)
	}
	if cfg.LocalRepository != "" {
		fmt.Fprintf(&sb, "local_repository: %q\n", cfg.LocalRepository)
	}
	fmt.Fprintf(&sb, "timeout_seconds: %d\n", cfg.TimeoutSeconds)
	fmt.Fprintf(&sb, "kill_grace_seconds: %d\n", cfg.KillGraceSeconds)
	fmt.Fprintf(&sb, "batch_mode: %v\n", cfg.BatchMode)

	writeCUEMap(&sb, "properties", cfg.Properties)
	writeCUEMap(&sb, "env", cfg.Env)

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	fmt.Fprintf(&sb, "\tformat: %q\n", cfg.Log.Format)
	sb.WriteString("}\n")

	sb.WriteString("\nsandbox: {\n")
	fmt.Fprintf(&sb, "\tspawn_on_host: %v\n", cfg.Sandbox.SpawnOnHost)
	sb.WriteString("}\n")

	if cfg.Metrics.Textfile != "" {
		sb.WriteString("\nmetrics: {\n")
		fmt.Fprintf(&sb, "\ttextfile: %q\n", cfg.Metrics.Textfile)
		sb.WriteString("}\n")
	}

	return sb.String()
}

func writeCUEMap(sb *strings.Builder, name string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s: {\n", name)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(sb, "\t%q: %q\n", k, m[k])
	}
	sb.WriteString("}\n")
}

// GenerateTOML generates a TOML representation of the configuration.
func GenerateTOML(cfg *Config) ([]byte, error) {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return b, nil
}
