// Package metrics defines the sinks that observe predictions. Sinks such as
// the Prometheus and log sinks in infra/metrics record one PredictionEvent per
// request and are built from configuration through the sink registry.
// NewMetricsSink returns a MultiSink automatically when several sinks are
// configured.
package metrics
