// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"math"
	"time"
)

// ExitCodeUnset marks a Result whose process never reported an exit status.
const ExitCodeUnset = math.MinInt32

// Result is the outcome of one invocation.
//
// A non-zero ExitCode with a nil ExecutionError means the tool ran and
// reported a failure. A non-nil ExecutionError means the tool could not be
// run to completion; ExitCode is then ExitCodeUnset and must not be relied on.
type Result struct {
	// ID identifies the invocation in log records.
	ID string
	// ExitCode is the native exit status of the process.
	ExitCode int
	// ExecutionError is an *ExecutionError when the process could not be run to completion.
	ExecutionError error
	// Duration is the wall time between launch and completion.
	Duration time.Duration
}

// NewResult creates a Result with an unset exit code.
func NewResult(id string) *Result {
	return &Result{ID: id, ExitCode: ExitCodeUnset}
}

// HasExitCode reports whether the process reported an exit status.
func (r *Result) HasExitCode() bool {
	return r.ExitCode != ExitCodeUnset
}

// Success returns true if the process ran to completion and exited with 0.
func (r *Result) Success() bool {
	return r.ExecutionError == nil && r.ExitCode == 0
}
