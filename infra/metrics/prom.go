package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/premium/core/metrics"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	value    prometheus.Histogram
	info     *prometheus.GaugeVec
	loadTime prometheus.Gauge
}

// NewPromSink registers prediction metrics on the default Prometheus registerer.
// The exporter should be started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// that are already registered are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "premium_predictions_total",
		Help: "Total number of prediction requests by outcome",
	}, []string{"pipeline", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "premium_prediction_duration_seconds",
		Help:    "Time spent validating and evaluating a prediction request",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
	}, []string{"pipeline"})
	value := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "premium_prediction_value",
		Help:    "Distribution of predicted premiums",
		Buckets: prometheus.ExponentialBuckets(50, 2, 10),
	})
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "premium_artifact_info",
		Help: "Pipeline and model kind loaded at startup",
	}, []string{"pipeline", "model"})
	loadTime := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "premium_artifact_load_seconds",
		Help: "Time spent loading artifacts at startup",
	})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if value, err = register(reg, value); err != nil {
		return nil, err
	}
	if info, err = register(reg, info); err != nil {
		return nil, err
	}
	if loadTime, err = register(reg, loadTime); err != nil {
		return nil, err
	}
	return &PromSink{requests: requests, duration: duration, value: value, info: info, loadTime: loadTime}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPrediction counts the request and observes its latency and value.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.requests.WithLabelValues(ev.Pipeline, string(ev.Outcome)).Inc()
	s.duration.WithLabelValues(ev.Pipeline).Observe(ev.Duration.Seconds())
	if ev.Outcome == coremetrics.OutcomeOK {
		s.value.Observe(ev.Value)
	}
	return nil
}

// RecordArtifacts publishes the loaded pipeline as an info gauge.
func (s *PromSink) RecordArtifacts(info coremetrics.ArtifactInfo) error {
	s.info.Reset()
	s.info.WithLabelValues(info.Pipeline, info.Model).Set(1)
	s.loadTime.Set(info.LoadTime.Seconds())
	return nil
}
