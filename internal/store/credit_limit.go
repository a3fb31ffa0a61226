package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
)

// CreditLimitStore persists computed credit limits. Records are insert-only.
type CreditLimitStore interface {
	// Create saves a newly computed credit limit.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, limit *domain.CreditLimit) error

	// GetByID retrieves a credit limit by ID.
	// Returns ErrCreditLimitNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditLimit, error)

	// ListByUser returns the user's credit limits, newest first.
	// A user with no records yields an empty slice.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CreditLimit, error)

	// WithTx returns a CreditLimitStore that runs its queries inside tx.
	WithTx(tx *sql.Tx) CreditLimitStore
}
