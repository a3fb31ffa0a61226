package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/scoring"
	"github.com/mindcredit/mindcredit-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// Scorer is a mock of scoring.Scorer.
type Scorer struct {
	mock.Mock
}

var _ scoring.Scorer = (*Scorer)(nil)

func (m *Scorer) Score(
	ctx context.Context,
	emotions []*domain.Emotion,
	thoughts []*domain.Thought,
	transactions []*domain.Transaction,
) (int, error) {
	args := m.Called(ctx, emotions, thoughts, transactions)
	return args.Int(0), args.Error(1)
}

// PushSender is a mock of service.PushSender.
type PushSender struct {
	mock.Mock
}

var _ service.PushSender = (*PushSender)(nil)

func (m *PushSender) Send(ctx context.Context, msg service.PushMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// NotificationService is a mock of service.NotificationService.
type NotificationService struct {
	mock.Mock
}

var _ service.NotificationService = (*NotificationService)(nil)

func (m *NotificationService) Notify(
	ctx context.Context,
	user *domain.User,
	payload service.NotificationPayload,
) (*domain.Notification, error) {
	args := m.Called(ctx, user, payload)
	if n, ok := args.Get(0).(*domain.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

// SignalService is a mock of service.SignalService.
type SignalService struct {
	mock.Mock
}

var _ service.SignalService = (*SignalService)(nil)

func (m *SignalService) IngestEmotion(ctx context.Context, emotion *domain.Emotion) error {
	return m.Called(ctx, emotion).Error(0)
}

func (m *SignalService) IngestThought(ctx context.Context, thought *domain.Thought) error {
	return m.Called(ctx, thought).Error(0)
}

func (m *SignalService) RecordTransactions(ctx context.Context, transactions []*domain.Transaction) error {
	return m.Called(ctx, transactions).Error(0)
}

// CreditLimitService is a mock of service.CreditLimitService.
type CreditLimitService struct {
	mock.Mock
}

var _ service.CreditLimitService = (*CreditLimitService)(nil)

func (m *CreditLimitService) Calculate(
	ctx context.Context,
	params service.CalculateParams,
) (*domain.CreditLimit, error) {
	args := m.Called(ctx, params)
	if limit, ok := args.Get(0).(*domain.CreditLimit); ok {
		return limit, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CreditLimitService) Deploy(ctx context.Context, params service.DeployParams) (*domain.User, error) {
	args := m.Called(ctx, params)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CreditLimitService) ListCreditLimits(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.CreditLimit, error) {
	args := m.Called(ctx, userID)
	if limits, ok := args.Get(0).([]*domain.CreditLimit); ok {
		return limits, args.Error(1)
	}
	return nil, args.Error(1)
}
