package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mindcredit/mindcredit-api/internal/redact"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler. A nil db skips the database check.
func NewHealthHandler(db Pinger, log *slog.Logger) *HealthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HealthHandler{db: db, logger: log.With(slog.String("component", "health_handler"))}
}

// ServeHTTP answers "OK" when the database responds within two seconds.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.ErrorContext(r.Context(), "health check failed", slog.String("error", redact.Error(err)))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.logger.Error("failed to write health check response", slog.String("error", err.Error()))
	}
}
