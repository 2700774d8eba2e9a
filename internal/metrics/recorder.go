// SPDX-License-Identifier: MPL-2.0

package metrics

import (
	"errors"
	"time"

	"github.com/invowk/mvninvoke/pkg/invocation"
)

// OutcomeLabel classifies a finished invocation.
type OutcomeLabel string

const (
	OutcomeSuccess     OutcomeLabel = "success"
	OutcomeFailure     OutcomeLabel = "failure"
	OutcomeConfigError OutcomeLabel = "config_error"
	OutcomeLaunchError OutcomeLabel = "launch_error"
	OutcomeTimeout     OutcomeLabel = "timeout"
	OutcomeCanceled    OutcomeLabel = "canceled"
	OutcomeStreamError OutcomeLabel = "stream_error"
)

type (
	// Recorder receives invocation metrics. Implementations must be safe for
	// concurrent use.
	Recorder interface {
		IncInvocation(outcome OutcomeLabel)
		ObserveInvocationDuration(outcome OutcomeLabel, d time.Duration)
	}

	// NoopRecorder discards everything (default when metrics are not configured).
	NoopRecorder struct{}
)

func (NoopRecorder) IncInvocation(OutcomeLabel)                            {}
func (NoopRecorder) ObserveInvocationDuration(OutcomeLabel, time.Duration) {}

// Classify maps a result, or the configuration error that prevented one,
// to an outcome label.
func Classify(res *invocation.Result, err error) OutcomeLabel {
	if err != nil || res == nil {
		return OutcomeConfigError
	}

	switch {
	case res.ExecutionError == nil && res.ExitCode == 0:
		return OutcomeSuccess
	case res.ExecutionError == nil:
		return OutcomeFailure
	case errors.Is(res.ExecutionError, invocation.ErrTimeout):
		return OutcomeTimeout
	case errors.Is(res.ExecutionError, invocation.ErrCanceled):
		return OutcomeCanceled
	case errors.Is(res.ExecutionError, invocation.ErrStream):
		return OutcomeStreamError
	default:
		return OutcomeLaunchError
	}
}
