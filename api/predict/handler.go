// Package predict exposes the premium prediction endpoint.
package predict

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/kilianp07/premium/api/middleware"
	"github.com/kilianp07/premium/core/features"
	coremetrics "github.com/kilianp07/premium/core/metrics"
	"github.com/kilianp07/premium/core/prediction"
	"github.com/kilianp07/premium/infra/logger"
)

// DefaultMaxBodyBytes caps the request body when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

// Response is the success payload of POST /predict.
type Response struct {
	Prediction float64 `json:"prediction"`
}

// ErrorResponse is the failure payload of POST /predict.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves POST /predict.
type Handler struct {
	pipeline prediction.Pipeline
	sink     coremetrics.MetricsSink
	log      logger.Logger
	maxBody  int64
	now      func() time.Time
}

// Option customises a Handler.
type Option func(*Handler)

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// NewHandler returns the prediction handler. A nil sink or logger disables
// the corresponding side channel.
func NewHandler(p prediction.Pipeline, sink coremetrics.MetricsSink, log logger.Logger, opts ...Option) *Handler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	h := &Handler{pipeline: p, sink: sink, log: log, maxBody: DefaultMaxBodyBytes, now: time.Now}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		middleware.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	start := h.now()
	y, err := h.Predict(r.Context(), http.MaxBytesReader(w, r.Body, h.maxBody))

	ev := coremetrics.PredictionEvent{
		RequestID: middleware.RequestIDFrom(r.Context()),
		Pipeline:  string(h.pipeline.Mode()),
		Model:     h.pipeline.ModelKind(),
		Duration:  h.now().Sub(start),
		Time:      start,
	}
	switch {
	case err == nil:
		ev.Outcome, ev.Value = coremetrics.OutcomeOK, y
		middleware.WriteJSON(w, http.StatusOK, Response{Prediction: y})
	case prediction.IsRequestError(err):
		ev.Outcome, ev.Error = coremetrics.OutcomeRejected, err.Error()
		fields := map[string]any{"request_id": ev.RequestID}
		var verr *features.ValidationError
		if errors.As(err, &verr) && len(verr.Missing()) > 0 {
			fields["missing"] = verr.Missing()
		}
		h.log.With(fields).Debugf("rejected prediction request: %v", err)
		middleware.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		// Only cancellation reaches here; the client has gone away.
		ev.Outcome, ev.Error = coremetrics.OutcomeFailed, err.Error()
		h.log.With(map[string]any{"request_id": ev.RequestID}).Warnf("prediction aborted: %v", err)
		middleware.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if serr := h.sink.RecordPrediction(ev); serr != nil {
		h.log.Warnf("record prediction: %v", serr)
	}
}

// Predict reads one JSON request from body and evaluates the pipeline.
// Every failure caused by the request is returned as a *prediction.RequestError.
func (h *Handler) Predict(ctx context.Context, body io.Reader) (float64, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return 0, prediction.NewRequestError(prediction.StageDecode, errors.New("request body too large"))
		}
		return 0, prediction.NewRequestError(prediction.StageDecode, err)
	}
	v, err := features.ParseJSON(data)
	if err != nil {
		return 0, prediction.NewRequestError(prediction.StageDecode, err)
	}
	return h.pipeline.Predict(ctx, v)
}
