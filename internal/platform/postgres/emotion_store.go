package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

// PostgresEmotionStore implements store.EmotionStore.
type PostgresEmotionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEmotionStore creates a new PostgresEmotionStore.
// If logger is nil, a default logger will be used.
func NewPostgresEmotionStore(db store.DBTX, logger *slog.Logger) *PostgresEmotionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEmotionStore{
		db:     db,
		logger: logger.With(slog.String("component", "emotion_store")),
	}
}

var _ store.EmotionStore = (*PostgresEmotionStore)(nil)

// Create implements store.EmotionStore.Create
func (s *PostgresEmotionStore) Create(ctx context.Context, emotion *domain.Emotion) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := emotion.Validate(); err != nil {
		log.Warn("emotion validation failed during create",
			slog.String("error", err.Error()),
			slog.String("emotion_id", emotion.ID.String()))
		return err
	}

	query := `
		INSERT INTO emotions (id, user_id, emotion_type, intensity, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		emotion.ID,
		emotion.UserID,
		string(emotion.EmotionType),
		emotion.Intensity,
		emotion.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create emotion",
			slog.String("error", err.Error()),
			slog.String("emotion_id", emotion.ID.String()),
			slog.String("user_id", emotion.UserID.String()))
		return MapError(err)
	}

	log.Debug("emotion created",
		slog.String("emotion_id", emotion.ID.String()),
		slog.String("user_id", emotion.UserID.String()))
	return nil
}

// FindByUserInWindow implements store.EmotionStore.FindByUserInWindow
func (s *PostgresEmotionStore) FindByUserInWindow(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Emotion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, emotion_type, intensity, created_at
		FROM emotions
		WHERE user_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		log.Error("failed to query emotions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	emotions := make([]*domain.Emotion, 0)
	for rows.Next() {
		var (
			e           domain.Emotion
			emotionType string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &emotionType, &e.Intensity, &e.CreatedAt); err != nil {
			log.Error("failed to scan emotion row", slog.String("error", err.Error()))
			return nil, err
		}
		e.EmotionType = domain.EmotionType(emotionType)
		emotions = append(emotions, &e)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating emotion rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("emotions retrieved",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(emotions)))
	return emotions, nil
}
