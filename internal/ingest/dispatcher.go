package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mindcredit/mindcredit-api/internal/events"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/service"
)

// Dispatcher routes signal events to the signal service by type.
type Dispatcher struct {
	signals service.SignalService
	logger  *slog.Logger
}

var _ events.EventHandler = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher. A nil logger falls back to slog.Default.
func NewDispatcher(signals service.SignalService, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		signals: signals,
		logger:  log.With(slog.String("component", "ingest_dispatcher")),
	}
}

// HandleEvent parses the event payload for its type and stores the signal.
func (d *Dispatcher) HandleEvent(ctx context.Context, event *events.SignalEvent) error {
	log := logger.FromContextOrDefault(ctx, d.logger).With(
		slog.String("event_id", event.ID.String()),
		slog.String("signal_type", event.Type),
	)

	switch event.Type {
	case SignalTypeEmotion:
		p, err := ParseEmotion(event.Payload)
		if err != nil {
			log.WarnContext(ctx, "rejected emotion payload", slog.String("error", err.Error()))
			return err
		}
		return d.signals.IngestEmotion(ctx, p.Emotion())

	case SignalTypeThought:
		p, err := ParseThought(event.Payload)
		if err != nil {
			log.WarnContext(ctx, "rejected thought payload", slog.String("error", err.Error()))
			return err
		}
		return d.signals.IngestThought(ctx, p.Thought())

	default:
		log.WarnContext(ctx, "no handler for signal type")
		return fmt.Errorf("%w: %q", ErrUnknownSignalType, event.Type)
	}
}
