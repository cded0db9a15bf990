package metrics

import (
	"time"
)

// Outcome labels the result of a prediction request.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// PredictionEvent describes one handled prediction request.
type PredictionEvent struct {
	RequestID string
	Pipeline  string
	Model     string
	Outcome   Outcome
	// Value is the premium returned to the caller; zero unless Outcome is ok.
	Value    float64
	Duration time.Duration
	Error    string
	Time     time.Time
}

// MetricsSink records prediction events for observability purposes.
type MetricsSink interface {
	RecordPrediction(ev PredictionEvent) error
}

// ArtifactInfo describes the pipeline loaded at startup.
type ArtifactInfo struct {
	Pipeline string
	Model    string
	// Detail summarises the model shape when the model can describe itself.
	Detail   string
	Paths    []string
	LoadTime time.Duration
}

// ArtifactRecorder is implemented by sinks that expose the loaded pipeline.
type ArtifactRecorder interface {
	RecordArtifacts(info ArtifactInfo) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error { return nil }
func (NopSink) RecordArtifacts(ArtifactInfo) error     { return nil }
