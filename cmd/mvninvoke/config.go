// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/invowk/mvninvoke/internal/config"
)

// newConfigCommand creates the `mvninvoke config` command tree.
func newConfigCommand(app *App, global *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mvninvoke configuration",
		Long: `Manage mvninvoke configuration.

Configuration is stored in:
  - Linux: ~/.config/mvninvoke/config.cue
  - macOS: ~/Library/Application Support/mvninvoke/config.cue
  - Windows: %APPDATA%\mvninvoke\config.cue

A config.toml in the same directory is read when no config.cue exists.
Scalar settings can be overridden with MVNINVOKE_* environment variables,
e.g. MVNINVOKE_TIMEOUT_SECONDS=600.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := app.loadConfigWithSource(cmd.Context(), global)
			if err != nil {
				return fail(cmd, app, err, exitCodeFailure)
			}
			showConfig(app, cfg, path)
			return nil
		},
	})

	var dumpFormat string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE, TOML or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), global)
			if err != nil {
				return fail(cmd, app, err, exitCodeFailure)
			}
			return dumpConfig(app, cfg, dumpFormat)
		},
	}
	dumpCmd.Flags().StringVar(&dumpFormat, "format", config.ConfigFileExt, "output format: cue, toml, json")
	cfgCmd.AddCommand(dumpCmd)

	var initFormat string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("", initFormat)
			if err != nil {
				return fail(cmd, app, fmt.Errorf("failed to create config: %w", err), exitCodeFailure)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&initFormat, "format", config.ConfigFileExt, "file format: cue, toml")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return fail(cmd, app, err, exitCodeFailure)
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)

			path, err := config.SourcePath(config.LoadOptions{ConfigFilePath: global.configPath})
			if err != nil {
				return fail(cmd, app, err, exitCodeFailure)
			}
			if path == "" {
				fmt.Fprintf(app.stdout, "Config file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
			} else {
				fmt.Fprintf(app.stdout, "Config file: %s\n", path)
			}
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App, cfg *config.Config, path string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(w)

	value := func(s string) string {
		if s == "" {
			return SubtitleStyle.Render("(unset)")
		}
		return valueStyle.Render(s)
	}

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("maven_home"), value(cfg.MavenHome))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("maven_executable"), value(cfg.MavenExecutable))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("working_directory"), value(cfg.WorkingDirectory))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("local_repository"), value(cfg.LocalRepository))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("timeout_seconds"), value(strconv.Itoa(cfg.TimeoutSeconds)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("kill_grace_seconds"), value(strconv.Itoa(cfg.KillGraceSeconds)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("batch_mode"), value(strconv.FormatBool(cfg.BatchMode)))

	for _, section := range []struct {
		name string
		m    map[string]string
	}{{"properties", cfg.Properties}, {"env", cfg.Env}} {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", keyStyle.Render(section.name))
		if len(section.m) == 0 {
			fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
			continue
		}
		for _, k := range slices.Sorted(maps.Keys(section.m)) {
			fmt.Fprintf(w, "  %s = %s\n", k, valueStyle.Render(section.m[k]))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", value(cfg.Log.Level))
	fmt.Fprintf(w, "  format: %s\n", value(cfg.Log.Format))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("sandbox"))
	fmt.Fprintf(w, "  spawn_on_host: %s\n", value(strconv.FormatBool(cfg.Sandbox.SpawnOnHost)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("metrics"))
	fmt.Fprintf(w, "  textfile: %s\n", value(cfg.Metrics.Textfile))
}

func dumpConfig(app *App, cfg *config.Config, format string) error {
	switch format {
	case config.ConfigFileExt:
		fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	case config.TOMLFileExt:
		b, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(app.stdout, string(b))
	case "json":
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q (expected cue, toml or json)", format)
	}
	return nil
}
