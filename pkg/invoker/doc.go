// SPDX-License-Identifier: MPL-2.0

// Package invoker is the entry point for running Maven as a library call.
//
// An Invoker is configured once with defaults (logger, streams, Maven home,
// executable, local repository, working directory) and then executes any
// number of invocation.Request values, concurrently if desired:
//
//	inv := invoker.New(invoker.WithLogger(logger), invoker.WithMavenHome("/opt/maven"))
//	req := invocation.NewRequest()
//	req.BaseDirectory = "/src/app"
//	req.Goals = []string{"clean", "verify"}
//	res, err := inv.Execute(ctx, req)
//
// Execute returns an error only for configuration problems detected before
// launch. Launch failures, timeouts and stream failures are reported in
// Result.ExecutionError; a non-zero Result.ExitCode is a tool-level failure.
package invoker
