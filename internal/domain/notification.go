package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies notifications sent to users.
type NotificationType string

// Known notification types.
const (
	NotificationTypeCreditLimitUpdate NotificationType = "credit_limit_update"
)

// Notification is a message recorded for, and optionally pushed to, a user.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Type      NotificationType `json:"notification_type"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification creates a Notification with a generated ID.
func NewNotification(userID uuid.UUID, title, content string, notificationType NotificationType) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Type:      notificationType,
		CreatedAt: time.Now().UTC(),
	}
}
