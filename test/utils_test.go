package test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/premium/test/util"
)

func TestWaitForMetric_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("other_metric 1\n"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := util.WaitForMetric(ctx, srv.URL, "premium_predictions_total")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitForHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), util.ServerTimeout)
	defer cancel()
	require.NoError(t, util.WaitForHTTP(ctx, srv.URL, http.StatusNoContent))
}
