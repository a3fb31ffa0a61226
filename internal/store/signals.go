package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
)

// The signal stores share one query shape: FindByUserInWindow returns every
// record owned by userID whose created_at lies in the inclusive window
// [start, end], ordered by created_at then id. No matches yields an empty,
// non-nil slice and no error.

// EmotionStore persists emotion observations.
type EmotionStore interface {
	// Create inserts a validated emotion.
	Create(ctx context.Context, emotion *domain.Emotion) error

	// FindByUserInWindow returns the user's emotions recorded in [start, end].
	FindByUserInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Emotion, error)
}

// ThoughtStore persists thought observations.
type ThoughtStore interface {
	// Create inserts a validated thought.
	Create(ctx context.Context, thought *domain.Thought) error

	// FindByUserInWindow returns the user's thoughts recorded in [start, end].
	FindByUserInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Thought, error)
}

// TransactionStore persists money transactions.
type TransactionStore interface {
	// Create inserts a validated transaction.
	Create(ctx context.Context, transaction *domain.Transaction) error

	// CreateBatch inserts all transactions. Callers that need atomicity run it
	// inside RunInTransaction.
	CreateBatch(ctx context.Context, transactions []*domain.Transaction) error

	// FindByUserInWindow returns the user's transactions recorded in [start, end].
	FindByUserInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error)
}
