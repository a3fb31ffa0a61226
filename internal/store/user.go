package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByIDForUpdate retrieves a user and locks the row until the
	// surrounding transaction ends. It must be called on a store bound to a
	// transaction with WithTx; concurrent deployments for the same user
	// serialize on this lock.
	// Returns ErrUserNotFound if the user does not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Update persists the mutable user fields (name, email, active credit
	// limit, device token).
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// WithTx returns a UserStore that runs its queries inside tx.
	WithTx(tx *sql.Tx) UserStore
}
