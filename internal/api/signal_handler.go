package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mindcredit/mindcredit-api/internal/api/shared"
	"github.com/mindcredit/mindcredit-api/internal/events"
	"github.com/mindcredit/mindcredit-api/internal/ingest"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
)

// SignalHandler accepts brain-interface signals over HTTP and publishes
// them for asynchronous ingestion.
type SignalHandler struct {
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewSignalHandler creates a SignalHandler.
func NewSignalHandler(emitter events.EventEmitter, log *slog.Logger) *SignalHandler {
	if emitter == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("event emitter cannot be nil for SignalHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SignalHandler{
		emitter: emitter,
		logger:  log.With(slog.String("component", "signal_handler")),
	}
}

// Publish handles POST /api/brain-data/{type}. The payload is validated and
// normalized before it is published, so consumers never see a malformed signal.
func (h *SignalHandler) Publish(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	signalType := chi.URLParam(r, "type")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, shared.MaxBodyBytes))
	if err != nil {
		HandleAPIError(w, r, shared.ErrInvalidBody, "")
		return
	}

	payload, err := ingest.Parse(signalType, body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	normalized, err := json.Marshal(payload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to publish signal")
		return
	}

	event := events.NewRawSignalEvent(signalType, normalized)
	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		HandleAPIError(w, r, err, "Failed to publish signal")
		return
	}

	log.DebugContext(r.Context(), "signal accepted",
		slog.String("signal_type", signalType),
		slog.String("event_id", event.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusAccepted, SignalAcceptedResponse{
		EventID: event.ID,
		Type:    signalType,
	})
}
