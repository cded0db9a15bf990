package scenarios

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kilianp07/premium/app"
	"github.com/kilianp07/premium/config"
	"github.com/kilianp07/premium/core/factory"
	"github.com/kilianp07/premium/core/prediction"
)

// FixtureDir holds the artifacts scenarios run against.
var FixtureDir = filepath.Join("..", "..", "app", "testdata")

func RunScenario(t *testing.T, sc *Scenario) {
	cfg := &config.Config{}
	cfg.Pipeline = config.PipelineConfig{
		Mode:                  prediction.Mode(sc.Mode),
		ModelPath:             filepath.Join(FixtureDir, "rf_model.json"),
		ColumnTransformerPath: filepath.Join(FixtureDir, "column_transformer.json"),
		TargetTransformerPath: filepath.Join(FixtureDir, "target_transformer.json"),
	}
	if cfg.Pipeline.Mode == prediction.ModeScaled {
		cfg.Pipeline.ModelPath = filepath.Join(FixtureDir, "scaled_model.json")
	}
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	cfg.Logging.Level = "warn"
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	svc, err := app.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	for _, r := range sc.Requests {
		body, err := r.Body(sc.Base)
		if err != nil {
			t.Fatalf("%s: body: %v", r.Name, err)
		}
		method := r.Method
		if method == "" {
			method = http.MethodPost
		}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/predict", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		svc.Handler().ServeHTTP(rr, req)

		checkResponse(t, sc.Name+"/"+r.Name, rr, r.Expected)
	}
}

func checkResponse(t *testing.T, name string, rr *httptest.ResponseRecorder, want Expected) {
	t.Helper()
	if rr.Code != want.Status {
		t.Errorf("%s: status %d, want %d (%s)", name, rr.Code, want.Status, rr.Body.String())
		return
	}
	if rr.Code == http.StatusNoContent {
		return
	}
	var out struct {
		Prediction *float64 `json:"prediction"`
		Error      string   `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Errorf("%s: decode response: %v", name, err)
		return
	}
	if want.Prediction != nil {
		if out.Prediction == nil || *out.Prediction != *want.Prediction {
			t.Errorf("%s: prediction %v, want %v", name, out.Prediction, *want.Prediction)
		}
	}
	if want.ErrorContains != "" && !bytes.Contains([]byte(out.Error), []byte(want.ErrorContains)) {
		t.Errorf("%s: error %q does not mention %q", name, out.Error, want.ErrorContains)
	}
}
