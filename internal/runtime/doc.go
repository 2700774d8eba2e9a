// SPDX-License-Identifier: MPL-2.0

// Package runtime launches compiled commands and supervises them.
//
// The Executor starts one process per call, pumps its stdout and stderr line
// by line into output handlers, optionally feeds its stdin, and enforces a
// timeout. On timeout or cancellation the whole process group is asked to
// terminate, then killed after a grace period.
//
// Outcomes never panic and never return a bare error: an Outcome carries
// either an exit code or an *invocation.ExecutionError describing why no
// exit code could be observed.
package runtime
