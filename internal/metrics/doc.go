// SPDX-License-Identifier: MPL-2.0

// Package metrics records invocation counts and durations.
//
// Recorder is the hook used by the invoker; NoopRecorder is the default and
// PrometheusRecorder exports to a Prometheus registry. A registry can be
// persisted for the node exporter textfile collector with WriteTextfile.
package metrics
