package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserStore is a mock of store.UserStore.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m.Called(tx).Get(0).(store.UserStore)
}

// CreditLimitStore is a mock of store.CreditLimitStore.
type CreditLimitStore struct {
	mock.Mock
}

var _ store.CreditLimitStore = (*CreditLimitStore)(nil)

func (m *CreditLimitStore) Create(ctx context.Context, limit *domain.CreditLimit) error {
	return m.Called(ctx, limit).Error(0)
}

func (m *CreditLimitStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditLimit, error) {
	args := m.Called(ctx, id)
	if limit, ok := args.Get(0).(*domain.CreditLimit); ok {
		return limit, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CreditLimitStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CreditLimit, error) {
	args := m.Called(ctx, userID)
	if limits, ok := args.Get(0).([]*domain.CreditLimit); ok {
		return limits, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CreditLimitStore) WithTx(tx *sql.Tx) store.CreditLimitStore {
	return m.Called(tx).Get(0).(store.CreditLimitStore)
}

// EmotionStore is a mock of store.EmotionStore.
type EmotionStore struct {
	mock.Mock
}

var _ store.EmotionStore = (*EmotionStore)(nil)

func (m *EmotionStore) Create(ctx context.Context, emotion *domain.Emotion) error {
	return m.Called(ctx, emotion).Error(0)
}

func (m *EmotionStore) FindByUserInWindow(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Emotion, error) {
	args := m.Called(ctx, userID, start, end)
	if emotions, ok := args.Get(0).([]*domain.Emotion); ok {
		return emotions, args.Error(1)
	}
	return nil, args.Error(1)
}

// ThoughtStore is a mock of store.ThoughtStore.
type ThoughtStore struct {
	mock.Mock
}

var _ store.ThoughtStore = (*ThoughtStore)(nil)

func (m *ThoughtStore) Create(ctx context.Context, thought *domain.Thought) error {
	return m.Called(ctx, thought).Error(0)
}

func (m *ThoughtStore) FindByUserInWindow(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Thought, error) {
	args := m.Called(ctx, userID, start, end)
	if thoughts, ok := args.Get(0).([]*domain.Thought); ok {
		return thoughts, args.Error(1)
	}
	return nil, args.Error(1)
}

// TransactionStore is a mock of store.TransactionStore.
type TransactionStore struct {
	mock.Mock
}

var _ store.TransactionStore = (*TransactionStore)(nil)

func (m *TransactionStore) Create(ctx context.Context, transaction *domain.Transaction) error {
	return m.Called(ctx, transaction).Error(0)
}

func (m *TransactionStore) CreateBatch(ctx context.Context, transactions []*domain.Transaction) error {
	return m.Called(ctx, transactions).Error(0)
}

func (m *TransactionStore) FindByUserInWindow(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Transaction, error) {
	args := m.Called(ctx, userID, start, end)
	if transactions, ok := args.Get(0).([]*domain.Transaction); ok {
		return transactions, args.Error(1)
	}
	return nil, args.Error(1)
}

// NotificationStore is a mock of store.NotificationStore.
type NotificationStore struct {
	mock.Mock
}

var _ store.NotificationStore = (*NotificationStore)(nil)

func (m *NotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *NotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID)
	if notifications, ok := args.Get(0).([]*domain.Notification); ok {
		return notifications, args.Error(1)
	}
	return nil, args.Error(1)
}
