package metrics

import (
	"github.com/kilianp07/premium/core/factory"
	coremetrics "github.com/kilianp07/premium/core/metrics"
	"github.com/kilianp07/premium/infra/logger"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct{}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		sink, err := NewPromSink()
		if err != nil {
			return nil, err
		}
		return sink, nil
	})

	_ = coremetrics.RegisterMetricsSink("log", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			Component string `json:"component"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Component == "" {
			c.Component = "predictions"
		}
		return NewLogSink(logger.New(c.Component)), nil
	})
}
