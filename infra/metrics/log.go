package metrics

import (
	coremetrics "github.com/kilianp07/premium/core/metrics"
	"github.com/kilianp07/premium/infra/logger"
)

// LogSink writes every prediction event as a structured debug entry.
type LogSink struct {
	log logger.Logger
}

// NewLogSink returns a LogSink writing through l.
func NewLogSink(l logger.Logger) *LogSink {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &LogSink{log: l}
}

func (s *LogSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	fields := map[string]any{
		"request_id":  ev.RequestID,
		"pipeline":    ev.Pipeline,
		"model":       ev.Model,
		"outcome":     string(ev.Outcome),
		"duration_ms": float64(ev.Duration.Microseconds()) / 1000,
	}
	if ev.Outcome == coremetrics.OutcomeOK {
		fields["prediction"] = ev.Value
	} else {
		fields["error"] = ev.Error
	}
	s.log.Debugw("prediction", fields)
	return nil
}

func (s *LogSink) RecordArtifacts(info coremetrics.ArtifactInfo) error {
	s.log.Infof("loaded %s pipeline (model %s) from %v in %s", info.Pipeline, info.Model, info.Paths, info.LoadTime)
	return nil
}
