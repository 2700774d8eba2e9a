// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invowk/mvninvoke/internal/logging"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the application configuration.
	Config struct {
		MavenHome        string            `json:"maven_home"         mapstructure:"maven_home"         toml:"maven_home,omitempty"`
		MavenExecutable  string            `json:"maven_executable"   mapstructure:"maven_executable"   toml:"maven_executable,omitempty"`
		WorkingDirectory string            `json:"working_directory"  mapstructure:"working_directory"  toml:"working_directory,omitempty"`
		LocalRepository  string            `json:"local_repository"   mapstructure:"local_repository"   toml:"local_repository,omitempty"`
		TimeoutSeconds   int               `json:"timeout_seconds"    mapstructure:"timeout_seconds"    toml:"timeout_seconds"`
		KillGraceSeconds int               `json:"kill_grace_seconds" mapstructure:"kill_grace_seconds" toml:"kill_grace_seconds"`
		BatchMode        bool              `json:"batch_mode"         mapstructure:"batch_mode"         toml:"batch_mode"`
		Properties       map[string]string `json:"properties"         mapstructure:"-"                  toml:"properties,omitempty"`
		Env              map[string]string `json:"env"                mapstructure:"-"                  toml:"env,omitempty"`
		Log              LogConfig         `json:"log"                mapstructure:"log"                toml:"log"`
		Sandbox          SandboxConfig     `json:"sandbox"            mapstructure:"sandbox"            toml:"sandbox"`
		Metrics          MetricsConfig     `json:"metrics"            mapstructure:"metrics"            toml:"metrics"`
	}

	// LogConfig configures diagnostic logging.
	LogConfig struct {
		Level  string `json:"level"  mapstructure:"level"  toml:"level"`
		Format string `json:"format" mapstructure:"format" toml:"format"`
	}

	// SandboxConfig configures launching from inside Flatpak or Snap.
	SandboxConfig struct {
		SpawnOnHost bool `json:"spawn_on_host" mapstructure:"spawn_on_host" toml:"spawn_on_host"`
	}

	// MetricsConfig configures metrics export.
	MetricsConfig struct {
		Textfile string `json:"textfile" mapstructure:"textfile" toml:"textfile,omitempty"`
	}

	// InvalidConfigError reports every invalid field of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		TimeoutSeconds:   0,
		KillGraceSeconds: 3,
		BatchMode:        true,
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		Sandbox: SandboxConfig{SpawnOnHost: true},
	}
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks values that environment overrides may have set after
// schema validation.
func (c *Config) Validate() error {
	var errs []error
	if c.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds: must not be negative, got %d", c.TimeoutSeconds))
	}
	if c.KillGraceSeconds < 0 {
		errs = append(errs, fmt.Errorf("kill_grace_seconds: must not be negative, got %d", c.KillGraceSeconds))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON, logging.FormatLogfmt:
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Timeout returns TimeoutSeconds as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// KillGrace returns KillGraceSeconds as a duration.
func (c *Config) KillGrace() time.Duration {
	return time.Duration(c.KillGraceSeconds) * time.Second
}
