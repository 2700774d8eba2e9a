// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for mvninvoke.
//
// The root command wires configuration, logging and metrics into an
// invoker.Invoker; the run and compile subcommands translate their flags
// into an invocation.Request.
package cmd
