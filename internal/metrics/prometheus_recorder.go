// SPDX-License-Identifier: MPL-2.0

package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mvninvoke"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	invocations *prom.CounterVec
	duration    *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		invocations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Invocations by outcome",
		}, []string{"outcome"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "invocation_duration_seconds",
			Help:      "Wall time of launched invocations",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.invocations, pr.duration)
	return pr
}

func (p *PrometheusRecorder) IncInvocation(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.invocations.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveInvocationDuration(outcome OutcomeLabel, d time.Duration) {
	if p == nil {
		return
	}
	p.duration.WithLabelValues(string(outcome)).Observe(d.Seconds())
}

// WriteTextfile writes every metric of g to path in the text exposition
// format, atomically, for the node exporter textfile collector.
func WriteTextfile(g prom.Gatherer, path string) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
