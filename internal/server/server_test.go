package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Handler(t *testing.T) {
	r := prometheus.NewPedanticRegistry()
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_gauge", Help: "test"})
	r.MustRegister(g)
	g.Set(1)

	health := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"state":"running"}`))
	})

	s := New(":0", r, health, slog.New(slog.DiscardHandler))

	resp := httptest.NewRecorder()
	s.Handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "test_gauge 1")

	resp = httptest.NewRecorder()
	s.Handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, `{"state":"running"}`, resp.Body.String())

	resp = httptest.NewRecorder()
	s.Handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/foo", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestServer_Run(t *testing.T) {
	s := New("127.0.0.1:0", prometheus.NewRegistry(), http.NotFoundHandler(), slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error)
	go func() { errCh <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	assert.NoError(t, <-errCh)
}

func TestServer_Run_InvalidAddress(t *testing.T) {
	s := New("invalid-address", prometheus.NewRegistry(), http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	assert.Error(t, s.Run(t.Context()))
}
