package test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/premium/app"
	"github.com/kilianp07/premium/config"
	"github.com/kilianp07/premium/test/util"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "app", "testdata", name))
	require.NoError(t, err)
	return p
}

// startService loads a YAML config and serves it until the test ends.
func startService(t *testing.T, yaml string) (*app.Service, *config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	svc, err := app.New(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("service did not stop")
		}
		_ = svc.Close()
	})

	waitCtx, waitCancel := context.WithTimeout(context.Background(), util.ServerTimeout)
	defer waitCancel()
	require.NoError(t, util.WaitForHTTP(waitCtx, "http://"+cfg.Server.Addr+"/healthz", http.StatusOK))
	return svc, cfg
}

func TestServiceExposesPredictionMetrics(t *testing.T) {
	apiAddr, err := util.FreeAddr()
	require.NoError(t, err)
	promAddr, err := util.FreeAddr()
	require.NoError(t, err)

	_, cfg := startService(t, fmt.Sprintf(`server:
  addr: %q
pipeline:
  mode: raw
  model_path: %q
metrics:
  prometheus_addr: %q
  sinks:
    - type: prometheus
    - type: log
logging:
  level: warn
`, apiAddr, fixture(t, "rf_model.json"), promAddr))

	body, err := os.ReadFile(fixture(t, "request.json"))
	require.NoError(t, err)
	resp, err := http.Post("http://"+cfg.Server.Addr+"/predict", "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	out, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"prediction":325}`, string(out))

	ctx, cancel := context.WithTimeout(context.Background(), util.MetricTimeout)
	defer cancel()
	metricsURL := "http://" + promAddr + "/metrics"
	require.NoError(t, util.WaitForMetric(ctx, metricsURL, `premium_predictions_total{outcome="ok",pipeline="raw"}`))
	require.NoError(t, util.WaitForMetric(ctx, metricsURL, `premium_artifact_info{model="random_forest",pipeline="raw"} 1`))
}

func TestServiceEnvOverrides(t *testing.T) {
	apiAddr, err := util.FreeAddr()
	require.NoError(t, err)
	t.Setenv("PREMIUM_SERVER__ADDR", apiAddr)
	t.Setenv("PREMIUM_PIPELINE__MODE", "scaled")
	t.Setenv("PREMIUM_SERVER__RATE_LIMIT", "1")
	t.Setenv("PREMIUM_SERVER__RATE_BURST", "2")

	_, cfg := startService(t, fmt.Sprintf(`pipeline:
  model_path: %q
  column_transformer_path: %q
  target_transformer_path: %q
metrics:
  sinks:
    - type: nop
`, fixture(t, "scaled_model.json"), fixture(t, "column_transformer.json"), fixture(t, "target_transformer.json")))
	require.Equal(t, apiAddr, cfg.Server.Addr)

	// the readiness probe spent part of the burst, so the limiter must trip
	// within a handful of requests
	var codes []int
	for i := 0; i < 4; i++ {
		resp, err := http.Post("http://"+apiAddr+"/predict", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		_ = resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Contains(t, codes, http.StatusTooManyRequests)
	assert.Contains(t, codes, http.StatusBadRequest)
}
