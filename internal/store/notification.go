package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
)

// NotificationStore keeps a record of every notification sent to a user.
type NotificationStore interface {
	Create(ctx context.Context, notification *domain.Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
}
