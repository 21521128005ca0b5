package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server serves Prometheus metrics on /metrics and, if a health handler is provided, the winterize progress on /health.
type Server struct {
	Addr    string
	Handler http.Handler
	logger  *slog.Logger
}

func New(addr string, gatherer prometheus.Gatherer, health http.Handler, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	if health != nil {
		r.Handle("/health", gziphandler.GzipHandler(health))
	}

	return &Server{
		Addr:    addr,
		Handler: r,
		logger:  logger,
	}
}

// Run serves HTTP requests until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Debug("started", "addr", s.Addr)
	defer s.logger.Debug("stopped")

	httpServer := http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}
