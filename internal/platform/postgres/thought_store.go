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

// PostgresThoughtStore implements store.ThoughtStore.
type PostgresThoughtStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresThoughtStore creates a new PostgresThoughtStore.
// If logger is nil, a default logger will be used.
func NewPostgresThoughtStore(db store.DBTX, logger *slog.Logger) *PostgresThoughtStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresThoughtStore{
		db:     db,
		logger: logger.With(slog.String("component", "thought_store")),
	}
}

var _ store.ThoughtStore = (*PostgresThoughtStore)(nil)

// Create implements store.ThoughtStore.Create
func (s *PostgresThoughtStore) Create(ctx context.Context, thought *domain.Thought) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := thought.Validate(); err != nil {
		log.Warn("thought validation failed during create",
			slog.String("error", err.Error()),
			slog.String("thought_id", thought.ID.String()))
		return err
	}

	query := `
		INSERT INTO thoughts (id, user_id, content, sentiment, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		thought.ID,
		thought.UserID,
		thought.Content,
		string(thought.Sentiment),
		thought.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create thought",
			slog.String("error", err.Error()),
			slog.String("thought_id", thought.ID.String()),
			slog.String("user_id", thought.UserID.String()))
		return MapError(err)
	}

	log.Debug("thought created",
		slog.String("thought_id", thought.ID.String()),
		slog.String("user_id", thought.UserID.String()))
	return nil
}

// FindByUserInWindow implements store.ThoughtStore.FindByUserInWindow
func (s *PostgresThoughtStore) FindByUserInWindow(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Thought, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, content, sentiment, created_at
		FROM thoughts
		WHERE user_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		log.Error("failed to query thoughts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	thoughts := make([]*domain.Thought, 0)
	for rows.Next() {
		var (
			t         domain.Thought
			sentiment string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &sentiment, &t.CreatedAt); err != nil {
			log.Error("failed to scan thought row", slog.String("error", err.Error()))
			return nil, err
		}
		t.Sentiment = domain.Sentiment(sentiment)
		thoughts = append(thoughts, &t)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating thought rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("thoughts retrieved",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(thoughts)))
	return thoughts, nil
}
