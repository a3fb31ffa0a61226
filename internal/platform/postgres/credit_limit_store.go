package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

// PostgresCreditLimitStore implements store.CreditLimitStore.
type PostgresCreditLimitStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCreditLimitStore creates a new PostgresCreditLimitStore.
// If logger is nil, a default logger will be used.
func NewPostgresCreditLimitStore(db store.DBTX, logger *slog.Logger) *PostgresCreditLimitStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCreditLimitStore{
		db:     db,
		logger: logger.With(slog.String("component", "credit_limit_store")),
	}
}

var _ store.CreditLimitStore = (*PostgresCreditLimitStore)(nil)

// WithTx implements store.CreditLimitStore.WithTx
func (s *PostgresCreditLimitStore) WithTx(tx *sql.Tx) store.CreditLimitStore {
	return &PostgresCreditLimitStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CreditLimitStore.Create
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresCreditLimitStore) Create(ctx context.Context, limit *domain.CreditLimit) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO credit_limits (id, user_id, risk_score, credit_limit, increase, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		limit.ID,
		limit.UserID,
		limit.RiskScore,
		limit.CreditLimit,
		limit.Increase,
		limit.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during credit limit creation",
				slog.String("credit_limit_id", limit.ID.String()),
				slog.String("user_id", limit.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, limit.UserID)
		}
		log.Error("failed to create credit limit",
			slog.String("error", err.Error()),
			slog.String("credit_limit_id", limit.ID.String()))
		return MapError(err)
	}

	log.Info("credit limit created",
		slog.String("credit_limit_id", limit.ID.String()),
		slog.String("user_id", limit.UserID.String()),
		slog.Int("risk_score", limit.RiskScore),
		slog.Int64("credit_limit", limit.CreditLimit),
		slog.Int64("increase", limit.Increase))
	return nil
}

// GetByID implements store.CreditLimitStore.GetByID
func (s *PostgresCreditLimitStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditLimit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, risk_score, credit_limit, increase, created_at
		FROM credit_limits
		WHERE id = $1
	`
	var limit domain.CreditLimit
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&limit.ID,
		&limit.UserID,
		&limit.RiskScore,
		&limit.CreditLimit,
		&limit.Increase,
		&limit.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("credit limit not found", slog.String("credit_limit_id", id.String()))
			return nil, store.ErrCreditLimitNotFound
		}
		log.Error("failed to get credit limit",
			slog.String("error", err.Error()),
			slog.String("credit_limit_id", id.String()))
		return nil, MapError(err)
	}
	return &limit, nil
}

// ListByUser implements store.CreditLimitStore.ListByUser
func (s *PostgresCreditLimitStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CreditLimit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, risk_score, credit_limit, increase, created_at
		FROM credit_limits
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list credit limits",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	limits := make([]*domain.CreditLimit, 0)
	for rows.Next() {
		var limit domain.CreditLimit
		if err := rows.Scan(
			&limit.ID,
			&limit.UserID,
			&limit.RiskScore,
			&limit.CreditLimit,
			&limit.Increase,
			&limit.CreatedAt,
		); err != nil {
			return nil, err
		}
		limits = append(limits, &limit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return limits, nil
}
