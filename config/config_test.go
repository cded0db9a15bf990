package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/premium/core/prediction"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `server:
  addr: ":8080"
  read_timeout: 3s
  shutdown_timeout: 1m
  max_body_bytes: 2048
  rate_limit: 20
  allowed_origins: ["https://quote.example"]
pipeline:
  mode: scaled
  model_path: artifacts/model.json
logging:
  level: debug
  format: console
metrics:
  prometheus_addr: ":9100"
  sinks:
    - type: "nop"
tracing:
  enabled: true
  endpoint: "http://collector:4318"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"addr", cfg.Server.Addr, ":8080"},
		{"read_timeout", cfg.Server.ReadTimeout, 3 * time.Second},
		{"write_timeout default", cfg.Server.WriteTimeout, 10 * time.Second},
		{"shutdown_timeout", cfg.Server.ShutdownTimeout, time.Minute},
		{"max_body_bytes", cfg.Server.MaxBodyBytes, int64(2048)},
		{"rate_burst default", cfg.Server.RateBurst, 21},
		{"origin", cfg.Server.AllowedOrigins[0], "https://quote.example"},
		{"mode", cfg.Pipeline.Mode, prediction.ModeScaled},
		{"model_path", cfg.Pipeline.ModelPath, "artifacts/model.json"},
		{"column default", cfg.Pipeline.ColumnTransformerPath, DefaultColumnTransformerPath},
		{"level", cfg.Logging.Level, "debug"},
		{"format", cfg.Logging.Format, "console"},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9100"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"tracing endpoint", cfg.Tracing.Endpoint, "http://collector:4318"},
		{"service_name", cfg.Tracing.ServiceName, "premium"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"pipeline": {"mode": "raw", "model_path": "m.json"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "m.json", cfg.Pipeline.ModelPath)
	assert.Equal(t, ":5000", cfg.Server.Addr)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, prediction.ModeRaw, cfg.Pipeline.Mode)
	assert.Equal(t, DefaultModelPath, cfg.Pipeline.ModelPath)
	assert.Equal(t, DefaultTargetTransformerPath, cfg.Pipeline.TargetTransformerPath)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "prometheus", cfg.Metrics.Sinks[0].Type)
	assert.Equal(t, ":9100", cfg.Metrics.PrometheusAddr)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_MetricsAddrOnlyForPrometheus(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", "metrics:\n  sinks:\n    - type: log\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Metrics.PrometheusAddr)

	cfg, err = Load(writeFile(t, "config.yaml", "metrics:\n  sinks:\n    - type: log\n    - type: prometheus\n"))
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Metrics.PrometheusAddr)
}

func TestLoadDefault_MissingFile(t *testing.T) {
	cfg, err := LoadDefault(filepath.Join(t.TempDir(), DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)

	_, err = Load(filepath.Join(t.TempDir(), DefaultPath))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "server:\n  addr: \":8080\"\n")
	t.Setenv("PREMIUM_SERVER__ADDR", ":9999")
	t.Setenv("PREMIUM_PIPELINE__MODE", "scaled")
	t.Setenv("PREMIUM_SERVER__IDLE_TIMEOUT", "90s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, prediction.ModeScaled, cfg.Pipeline.Mode)
	assert.Equal(t, 90*time.Second, cfg.Server.IdleTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"mode":      "pipeline:\n  mode: boosted\n",
		"level":     "logging:\n  level: loud\n",
		"format":    "logging:\n  format: xml\n",
		"tracing":   "tracing:\n  enabled: true\n",
		"ratio":     "tracing:\n  sample_ratio: 2\n",
		"sink type": "metrics:\n  sinks:\n    - conf: {}\n",
		"body":      "server:\n  max_body_bytes: -1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", data))
			assert.Error(t, err)
		})
	}

	_, err := Load(writeFile(t, "config.toml", "x = 1"))
	assert.ErrorContains(t, err, "unsupported config format")
}
