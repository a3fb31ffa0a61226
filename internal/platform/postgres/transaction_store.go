package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

const insertTransactionQuery = `
	INSERT INTO transactions (id, user_id, amount, transaction_type, created_at)
	VALUES ($1, $2, $3, $4, $5)
`

// PostgresTransactionStore implements store.TransactionStore.
type PostgresTransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTransactionStore creates a new PostgresTransactionStore.
// If logger is nil, a default logger will be used.
func NewPostgresTransactionStore(db store.DBTX, logger *slog.Logger) *PostgresTransactionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "transaction_store")),
	}
}

var _ store.TransactionStore = (*PostgresTransactionStore)(nil)

// Create implements store.TransactionStore.Create
func (s *PostgresTransactionStore) Create(ctx context.Context, transaction *domain.Transaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := transaction.Validate(); err != nil {
		log.Warn("transaction validation failed during create",
			slog.String("error", err.Error()),
			slog.String("transaction_id", transaction.ID.String()))
		return err
	}

	if _, err := s.db.ExecContext(ctx, insertTransactionQuery,
		transaction.ID,
		transaction.UserID,
		transaction.Amount,
		string(transaction.TransactionType),
		transaction.CreatedAt,
	); err != nil {
		log.Error("failed to create transaction",
			slog.String("error", err.Error()),
			slog.String("transaction_id", transaction.ID.String()))
		return MapError(err)
	}
	return nil
}

// CreateBatch implements store.TransactionStore.CreateBatch
// It prepares the insert once and executes it per transaction.
func (s *PostgresTransactionStore) CreateBatch(ctx context.Context, transactions []*domain.Transaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(transactions) == 0 {
		return nil
	}

	for _, t := range transactions {
		if err := t.Validate(); err != nil {
			log.Warn("transaction validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("transaction_id", t.ID.String()))
			return err
		}
	}

	stmt, err := s.db.PrepareContext(ctx, insertTransactionQuery)
	if err != nil {
		log.Error("failed to prepare transaction insert", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range transactions {
		if _, err := stmt.ExecContext(ctx,
			t.ID,
			t.UserID,
			t.Amount,
			string(t.TransactionType),
			t.CreatedAt,
		); err != nil {
			log.Error("failed to insert transaction in batch",
				slog.String("error", err.Error()),
				slog.Int("index", i),
				slog.String("transaction_id", t.ID.String()))
			return fmt.Errorf("insert transaction %d of %d: %w", i+1, len(transactions), MapError(err))
		}
	}

	log.Info("transactions created",
		slog.Int("count", len(transactions)),
		slog.String("user_id", transactions[0].UserID.String()))
	return nil
}

// FindByUserInWindow implements store.TransactionStore.FindByUserInWindow
func (s *PostgresTransactionStore) FindByUserInWindow(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, amount, transaction_type, created_at
		FROM transactions
		WHERE user_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		log.Error("failed to query transactions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		var (
			t      domain.Transaction
			txType string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &txType, &t.CreatedAt); err != nil {
			log.Error("failed to scan transaction row", slog.String("error", err.Error()))
			return nil, err
		}
		t.TransactionType = domain.TransactionType(txType)
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating transaction rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("transactions retrieved",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(transactions)))
	return transactions, nil
}
