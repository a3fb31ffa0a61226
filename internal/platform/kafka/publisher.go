package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/events"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	kafkago "github.com/segmentio/kafka-go"
)

// ErrNoBrokers is returned when a publisher or consumer is built without brokers.
var ErrNoBrokers = errors.New("kafka: no brokers configured")

// messageWriter is the subset of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes signal events to a topic.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

var _ events.EventEmitter = (*Publisher)(nil)

// NewPublisher creates a Publisher for cfg.Topic on cfg.Brokers.
func NewPublisher(cfg config.KafkaConfig, log *slog.Logger) (*Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrNoBrokers
	}
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newPublisher(w, cfg.Topic, log), nil
}

func newPublisher(w messageWriter, topic string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{
		writer: w,
		topic:  topic,
		logger: log.With(slog.String("component", "kafka_publisher")),
	}
}

// EmitEvent publishes the event payload keyed by its type.
func (p *Publisher) EmitEvent(ctx context.Context, event *events.SignalEvent) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	msg := kafkago.Message{
		Key:   []byte(event.Type),
		Value: event.Payload,
		Time:  event.CreatedAt,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(event.ID.String())},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.ErrorContext(ctx, "failed to publish signal",
			slog.String("topic", p.topic),
			slog.String("signal_type", event.Type),
			slog.String("error", err.Error()))
		return fmt.Errorf("publish %s signal: %w", event.Type, err)
	}

	log.DebugContext(ctx, "signal published",
		slog.String("topic", p.topic),
		slog.String("event_id", event.ID.String()),
		slog.String("signal_type", event.Type))
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
