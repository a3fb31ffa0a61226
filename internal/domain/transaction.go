package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement.
type TransactionType string

// Known transaction types.
const (
	TransactionPurchase TransactionType = "purchase"
	TransactionBill     TransactionType = "bill"
	TransactionTransfer TransactionType = "transfer"
)

// Common validation errors for Transaction
var (
	ErrEmptyTransactionUserID    = errors.New("transaction user ID cannot be empty")
	ErrInvalidTransactionType    = errors.New("invalid transaction type")
	ErrNegativeTransactionAmount = errors.New("transaction amount cannot be negative")
)

// Transaction is an immutable record of money spent or moved by a user.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transaction_type"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewTransaction creates a Transaction with a generated ID.
func NewTransaction(userID uuid.UUID, amount decimal.Decimal, txType TransactionType) (*Transaction, error) {
	tx := &Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		Amount:          amount,
		TransactionType: txType,
		CreatedAt:       time.Now().UTC(),
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Validate checks if the Transaction has valid data.
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrEmptyTransactionUserID
	}
	if !t.TransactionType.Valid() {
		return ErrInvalidTransactionType
	}
	if t.Amount.IsNegative() {
		return ErrNegativeTransactionAmount
	}
	return nil
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionBill, TransactionTransfer:
		return true
	default:
		return false
	}
}

// TransactionTypes returns all known transaction types.
func TransactionTypes() []TransactionType {
	return []TransactionType{TransactionPurchase, TransactionBill, TransactionTransfer}
}
