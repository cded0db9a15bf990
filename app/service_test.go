package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kilianp07/premium/config"
	"github.com/kilianp07/premium/core/factory"
	"github.com/kilianp07/premium/core/prediction"
)

func testConfig(t *testing.T, mode prediction.Mode) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Pipeline = config.PipelineConfig{
		Mode:                  mode,
		ModelPath:             filepath.Join("testdata", "rf_model.json"),
		ColumnTransformerPath: filepath.Join("testdata", "column_transformer.json"),
		TargetTransformerPath: filepath.Join("testdata", "target_transformer.json"),
	}
	if mode == prediction.ModeScaled {
		cfg.Pipeline.ModelPath = filepath.Join("testdata", "scaled_model.json")
	}
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func readRequest(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "request.json"))
	require.NoError(t, err)
	return string(data)
}

func TestLoadPipeline_Raw(t *testing.T) {
	cfg := testConfig(t, prediction.ModeRaw)
	// raw mode must not touch the transformer files
	cfg.Pipeline.ColumnTransformerPath = filepath.Join(t.TempDir(), "missing.json")
	cfg.Pipeline.TargetTransformerPath = filepath.Join(t.TempDir(), "missing.json")

	p, info, err := LoadPipeline(cfg.Pipeline)
	require.NoError(t, err)
	assert.Equal(t, prediction.ModeRaw, p.Mode())
	assert.Equal(t, "random_forest", info.Model)
	assert.Equal(t, "2 trees, max depth 1", info.Detail)
	assert.Len(t, info.Paths, 1)
}

func TestLoadPipeline_Scaled(t *testing.T) {
	p, info, err := LoadPipeline(testConfig(t, prediction.ModeScaled).Pipeline)
	require.NoError(t, err)
	assert.Equal(t, prediction.ModeScaled, p.Mode())
	assert.Equal(t, "decision_tree", p.ModelKind())
	assert.Len(t, info.Paths, 3)
}

func TestLoadPipeline_Errors(t *testing.T) {
	cfg := testConfig(t, prediction.ModeScaled)
	cfg.Pipeline.TargetTransformerPath = filepath.Join(t.TempDir(), "missing.json")
	_, _, err := LoadPipeline(cfg.Pipeline)
	assert.Error(t, err)

	cfg = testConfig(t, prediction.ModeRaw)
	cfg.Pipeline.ModelPath = filepath.Join(t.TempDir(), "missing.json")
	_, _, err = LoadPipeline(cfg.Pipeline)
	assert.Error(t, err)

	// an 11-wide tree cannot follow a transformer that only keeps 3 columns
	dir := t.TempDir()
	ct := filepath.Join(dir, "ct.json")
	require.NoError(t, os.WriteFile(ct, []byte(`{"type":"column_transformer","conf":{"transformers":[
		{"kind":"passthrough","columns":["Power","Weight","Old"]}]}}`), 0o644))
	cfg = testConfig(t, prediction.ModeScaled)
	cfg.Pipeline.ColumnTransformerPath = ct
	_, _, err = LoadPipeline(cfg.Pipeline)
	assert.Error(t, err)
}

func TestService_Handler(t *testing.T) {
	cases := []struct {
		mode prediction.Mode
		want string
	}{
		{prediction.ModeRaw, `{"prediction":325}`},
		{prediction.ModeScaled, `{"prediction":350}`},
	}
	for _, c := range cases {
		t.Run(string(c.mode), func(t *testing.T) {
			svc, err := New(context.Background(), testConfig(t, c.mode))
			require.NoError(t, err)
			defer svc.Close()

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(readRequest(t)))
			req.Header.Set("Origin", "https://quote.example")
			svc.Handler().ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, c.want, rr.Body.String())
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}

func TestService_Preflight(t *testing.T) {
	svc, err := New(context.Background(), testConfig(t, prediction.ModeRaw))
	require.NoError(t, err)
	defer svc.Close()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "https://quote.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	svc.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestService_TracesRejectedRequests(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	cfg := testConfig(t, prediction.ModeRaw)
	cfg.Server.RateLimit = 1
	cfg.Server.RateBurst = 1
	svc, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer svc.Close()

	preflight := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	preflight.Header.Set("Origin", "https://quote.example")
	preflight.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rr, preflight)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Len(t, rec.Ended(), 1)

	codes := map[int]int{}
	for range 3 {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(readRequest(t)))
		svc.Handler().ServeHTTP(rr, req)
		codes[rr.Code]++
	}
	assert.Positive(t, codes[http.StatusTooManyRequests])
	assert.Len(t, rec.Ended(), 4)
}

func TestNew_MissingArtifact(t *testing.T) {
	cfg := testConfig(t, prediction.ModeRaw)
	cfg.Pipeline.ModelPath = filepath.Join(t.TempDir(), "rf_model.json")
	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "artifacts")
}

func TestService_Serve(t *testing.T) {
	svc, err := New(context.Background(), testConfig(t, prediction.ModeRaw))
	require.NoError(t, err)
	defer svc.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/predict", "application/json", strings.NewReader(`{"Power": 1}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "Driving_experience")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
