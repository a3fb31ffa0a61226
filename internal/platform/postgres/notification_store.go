package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

// PostgresNotificationStore implements store.NotificationStore.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a new PostgresNotificationStore.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// Create implements store.NotificationStore.Create
func (s *PostgresNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO notifications (id, user_id, title, content, notification_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.Title,
		n.Content,
		string(n.Type),
		n.CreatedAt,
	); err != nil {
		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("user_id", n.UserID.String()))
		return MapError(err)
	}
	return nil
}

// ListByUser implements store.NotificationStore.ListByUser
func (s *PostgresNotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, title, content, notification_type, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*domain.Notification, 0)
	for rows.Next() {
		var (
			n     domain.Notification
			nType string
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &nType, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(nType)
		out = append(out, &n)
	}
	return out, rows.Err()
}
