// SPDX-License-Identifier: MPL-2.0

package metrics

import (
	"errors"
	"testing"

	"github.com/invowk/mvninvoke/pkg/invocation"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	exited := func(code int) *invocation.Result {
		r := invocation.NewResult("id")
		r.ExitCode = code
		return r
	}
	failed := func(kind invocation.ExecutionKind) *invocation.Result {
		r := invocation.NewResult("id")
		r.ExecutionError = &invocation.ExecutionError{Kind: kind}
		return r
	}

	tests := []struct {
		name string
		res  *invocation.Result
		err  error
		want OutcomeLabel
	}{
		{"configuration error", nil, errors.New("bad"), OutcomeConfigError},
		{"exit zero", exited(0), nil, OutcomeSuccess},
		{"exit non-zero", exited(1), nil, OutcomeFailure},
		{"timeout", failed(invocation.KindTimeout), nil, OutcomeTimeout},
		{"canceled", failed(invocation.KindCanceled), nil, OutcomeCanceled},
		{"stream", failed(invocation.KindStream), nil, OutcomeStreamError},
		{"launch", failed(invocation.KindLaunch), nil, OutcomeLaunchError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.res, tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNoopRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder = NoopRecorder{}
	r.IncInvocation(OutcomeSuccess)
	r.ObserveInvocationDuration(OutcomeSuccess, 0)
}
