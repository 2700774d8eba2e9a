// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper, with CUE (or
// TOML) as the file format.
//
// Configuration is loaded from ~/.config/mvninvoke/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/mvninvoke/config.cue on macOS, %APPDATA%\mvninvoke\config.cue
// on Windows). A config.toml in the same directory is used when no config.cue exists.
// Every scalar setting can be overridden with an MVNINVOKE_-prefixed environment
// variable, e.g. MVNINVOKE_TIMEOUT_SECONDS or MVNINVOKE_LOG_LEVEL.
//
// Files of either format are validated against the CUE schema in config_schema.cue
// so that both produce the same error messages for invalid values.
package config
