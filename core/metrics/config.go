package metrics

import (
	"fmt"

	"github.com/kilianp07/premium/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	// PrometheusAddr is the listen address of the /metrics endpoint. Empty
	// disables the exporter.
	PrometheusAddr string                 `json:"prometheus_addr"`
	Sinks          []factory.ModuleConfig `json:"sinks"`
}

// DefaultPrometheusAddr serves /metrics when a Prometheus sink is active and
// no address is configured.
const DefaultPrometheusAddr = ":9100"

// SetDefaults enables the Prometheus sink when no sink is configured and
// gives it a scrape address.
func (c *Config) SetDefaults() {
	if len(c.Sinks) == 0 {
		c.Sinks = []factory.ModuleConfig{{Type: "prometheus"}}
	}
	if c.PrometheusAddr == "" {
		for _, s := range c.Sinks {
			if s.Type == "prometheus" {
				c.PrometheusAddr = DefaultPrometheusAddr
				break
			}
		}
	}
}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics sink %d: type is required", i)
		}
	}
	return nil
}
