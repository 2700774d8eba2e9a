// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompileCommand(app *App, global *globalFlags) *cobra.Command {
	rf := &requestFlags{}
	var showEnv bool

	compileCmd := &cobra.Command{
		Use:   "compile [goals...] [-- args...]",
		Short: "Print the Maven command line without running it",
		Long: `Resolve the Maven executable and print the command line that run would
launch, quoted for a POSIX shell. Nothing is executed.`,
		Example: `  mvninvoke compile clean install
  mvninvoke compile --show-env -D skipTests=true package`,
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

			command, err := app.newInvoker(cfg, logger, nil).Compile(ctx, req)
			if err != nil {
				return fail(cmd, app, classifyError(err, global.verbose), exitCodeFailure)
			}

			if global.verbose {
				fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("# directory:"), command.Dir)
			}
			fmt.Fprintln(app.stdout, command.String())
			if showEnv {
				for _, kv := range command.Environ() {
					fmt.Fprintln(app.stdout, kv)
				}
			}
			return nil
		},
	}
	rf.register(compileCmd.Flags())
	compileCmd.Flags().BoolVar(&showEnv, "show-env", false, "also print the build environment, one KEY=VALUE per line")
	return compileCmd
}
