package health

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clambin/rachio-tools/internal/winterize"
)

// StatusReporter reports the progress of a winterize run
type StatusReporter interface {
	Status() winterize.Status
}

// Health reports the progress of the current winterize run. Until a run has started, it returns 503.
type Health struct {
	StatusReporter
	logger *slog.Logger
}

func New(r StatusReporter, logger *slog.Logger) *Health {
	return &Health{
		StatusReporter: r,
		logger:         logger,
	}
}

func (h *Health) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	status := h.StatusReporter.Status()
	if status.State == winterize.Idle {
		http.Error(w, "no winterize run started", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(status); err != nil {
		h.logger.Warn("failed to encode status", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
