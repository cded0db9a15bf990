package metrics

import "errors"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPrediction forwards the event to every sink and joins their errors.
func (m *MultiSink) RecordPrediction(ev PredictionEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordArtifacts forwards artifact info to sinks able to record it.
func (m *MultiSink) RecordArtifacts(info ArtifactInfo) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(ArtifactRecorder); ok {
			if err := rec.RecordArtifacts(info); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
