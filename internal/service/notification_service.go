package service

import (
	"context"
	"log/slog"

	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

// PushMessage is a single push notification addressed to one device.
type PushMessage struct {
	DeviceToken string
	Title       string
	Body        string
	Data        map[string]string
}

// PushSender delivers push notifications to user devices.
type PushSender interface {
	Send(ctx context.Context, msg PushMessage) error
}

// NotificationPayload is the content of a notification before it is
// addressed to a user.
type NotificationPayload struct {
	Title   string
	Content string
	Type    domain.NotificationType
}

// NotificationService records notifications and pushes them to devices.
type NotificationService interface {
	// Notify persists a notification for user and pushes it when the user has
	// a device token. A user without a token is not an error.
	Notify(ctx context.Context, user *domain.User, payload NotificationPayload) (*domain.Notification, error)
}

type notificationServiceImpl struct {
	notifications store.NotificationStore
	push          PushSender
	logger        *slog.Logger
}

// NewNotificationService creates a NotificationService.
// It returns an error if any of the required dependencies are nil.
func NewNotificationService(
	notifications store.NotificationStore,
	push PushSender,
	log *slog.Logger,
) (NotificationService, error) {
	if notifications == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "notifications cannot be nil"}
	}
	if push == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "push sender cannot be nil"}
	}
	if log == nil {
		log = slog.Default()
	}

	return &notificationServiceImpl{
		notifications: notifications,
		push:          push,
		logger:        log.With(slog.String("component", "notification_service")),
	}, nil
}

// Notify implements NotificationService.
func (s *notificationServiceImpl) Notify(
	ctx context.Context,
	user *domain.User,
	payload NotificationPayload,
) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).
		With(slog.String("user_id", user.ID.String()))

	notification := domain.NewNotification(user.ID, payload.Title, payload.Content, payload.Type)
	if err := s.notifications.Create(ctx, notification); err != nil {
		log.ErrorContext(ctx, "failed to record notification", slog.String("error", err.Error()))
		return nil, NewServiceError("notify", "failed to record notification", err)
	}

	if !user.HasDeviceToken() {
		log.DebugContext(ctx, "user has no device token, skipping push")
		return notification, nil
	}

	err := s.push.Send(ctx, PushMessage{
		DeviceToken: *user.DeviceToken,
		Title:       notification.Title,
		Body:        notification.Content,
		Data: map[string]string{
			"notification_id":   notification.ID.String(),
			"notification_type": string(notification.Type),
		},
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to push notification",
			slog.String("notification_id", notification.ID.String()),
			slog.String("error", err.Error()))
		return notification, NewServiceError("notify", "failed to push notification", err)
	}

	log.InfoContext(ctx, "notification pushed",
		slog.String("notification_id", notification.ID.String()))
	return notification, nil
}
