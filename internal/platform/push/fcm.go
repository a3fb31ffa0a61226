package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/service"
	"google.golang.org/api/option"
)

// ErrMissingCredentials is returned when FCM is configured without a project or credentials.
var ErrMissingCredentials = errors.New("push: GCP project ID and credentials are required")

// messageSender is the subset of *messaging.Client the sender uses.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSender delivers notifications through Firebase Cloud Messaging.
type FCMSender struct {
	client messageSender
	logger *slog.Logger
}

var _ service.PushSender = (*FCMSender)(nil)

// NewFCMSender builds a messaging client from the service-account JSON in cfg.
func NewFCMSender(ctx context.Context, cfg config.NotificationConfig, log *slog.Logger) (*FCMSender, error) {
	if !cfg.PushEnabled() {
		return nil, ErrMissingCredentials
	}

	app, err := firebase.NewApp(ctx,
		&firebase.Config{ProjectID: cfg.GCPProjectID},
		option.WithCredentialsJSON([]byte(cfg.GCPCredentials)),
	)
	if err != nil {
		return nil, fmt.Errorf("push: init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("push: init messaging client: %w", err)
	}
	return newFCMSender(client, log), nil
}

func newFCMSender(client messageSender, log *slog.Logger) *FCMSender {
	if log == nil {
		log = slog.Default()
	}
	return &FCMSender{
		client: client,
		logger: log.With(slog.String("component", "fcm_sender")),
	}
}

// Send delivers msg to its device token.
func (s *FCMSender) Send(ctx context.Context, msg service.PushMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if msg.DeviceToken == "" {
		return errors.New("push: device token is empty")
	}

	id, err := s.client.Send(ctx, &messaging.Message{
		Token: msg.DeviceToken,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err != nil {
		return fmt.Errorf("push: send: %w", err)
	}

	log.DebugContext(ctx, "push delivered", slog.String("message_id", id))
	return nil
}

// NoopSender logs notifications instead of delivering them.
type NoopSender struct {
	logger *slog.Logger
}

var _ service.PushSender = (*NoopSender)(nil)

// NewNoopSender creates a NoopSender.
func NewNoopSender(log *slog.Logger) *NoopSender {
	if log == nil {
		log = slog.Default()
	}
	return &NoopSender{logger: log.With(slog.String("component", "noop_push_sender"))}
}

// Send logs the message and reports success.
func (s *NoopSender) Send(ctx context.Context, msg service.PushMessage) error {
	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "push delivery disabled, dropping notification",
		slog.String("title", msg.Title))
	return nil
}
