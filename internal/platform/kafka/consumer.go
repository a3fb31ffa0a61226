package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/events"
	kafkago "github.com/segmentio/kafka-go"
)

// messageReader is the subset of *kafkago.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer reads signal events from a topic and dispatches them to a handler.
type Consumer struct {
	reader  messageReader
	handler events.EventHandler
	logger  *slog.Logger
}

// NewConsumer creates a Consumer in cfg.GroupID reading cfg.Topic.
func NewConsumer(cfg config.KafkaConfig, handler events.EventHandler, log *slog.Logger) (*Consumer, error) {
	if !cfg.Enabled() {
		return nil, ErrNoBrokers
	}
	if handler == nil {
		return nil, errors.New("kafka: consumer handler cannot be nil")
	}
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafkago.FirstOffset,
		MaxWait:     time.Second,
	})
	return newConsumer(r, handler, log), nil
}

func newConsumer(r messageReader, handler events.EventHandler, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{
		reader:  r,
		handler: handler,
		logger:  log.With(slog.String("component", "kafka_consumer")),
	}
}

// Run consumes until ctx is cancelled or the reader fails. A cancelled
// context ends the loop with a nil error.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "consumer started")
	defer c.logger.InfoContext(ctx, "consumer stopped")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		c.dispatch(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

// Close releases the reader and leaves the consumer group.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// dispatch hands one message to the handler. Failures are logged and the
// message is still committed.
func (c *Consumer) dispatch(ctx context.Context, msg kafkago.Message) {
	event := messageToEvent(msg)
	log := c.logger.With(
		slog.String("signal_type", event.Type),
		slog.String("event_id", event.ID.String()),
		slog.Int("partition", msg.Partition),
		slog.Int64("offset", msg.Offset),
	)

	if err := c.handler.HandleEvent(ctx, event); err != nil {
		log.ErrorContext(ctx, "failed to handle signal", slog.String("error", err.Error()))
		return
	}
	log.DebugContext(ctx, "signal handled")
}

func messageToEvent(msg kafkago.Message) *events.SignalEvent {
	event := &events.SignalEvent{
		Type:      string(msg.Key),
		Payload:   msg.Value,
		CreatedAt: msg.Time.UTC(),
	}
	for _, h := range msg.Headers {
		if h.Key == "event_id" {
			if id, err := uuid.ParseBytes(h.Value); err == nil {
				event.ID = id
			}
		}
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if msg.Time.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return event
}
