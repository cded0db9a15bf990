package predict

import (
	"net/http"

	"github.com/kilianp07/premium/api/middleware"
	"github.com/kilianp07/premium/core/prediction"
)

// HealthResponse describes the loaded pipeline.
type HealthResponse struct {
	Status   string `json:"status"`
	Pipeline string `json:"pipeline"`
	Model    string `json:"model"`
}

// NewHealthHandler reports liveness and which pipeline is being served.
// Artifacts are loaded before the listener binds, so a reachable handler is
// always ready.
func NewHealthHandler(p prediction.Pipeline) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			middleware.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Pipeline: string(p.Mode()),
			Model:    p.ModelKind(),
		})
	})
}

// Routes mounts the prediction API on a new mux.
func Routes(h *Handler, p prediction.Pipeline) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/predict", h)
	mux.Handle("/healthz", NewHealthHandler(p))
	return mux
}
