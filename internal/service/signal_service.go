package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

// SignalService records behavioral signals for later credit-limit evaluation.
type SignalService interface {
	// IngestEmotion validates and stores an emotion.
	IngestEmotion(ctx context.Context, emotion *domain.Emotion) error

	// IngestThought validates and stores a thought.
	IngestThought(ctx context.Context, thought *domain.Thought) error

	// RecordTransactions validates and stores a batch of transactions.
	RecordTransactions(ctx context.Context, transactions []*domain.Transaction) error
}

type signalServiceImpl struct {
	emotions     store.EmotionStore
	thoughts     store.ThoughtStore
	transactions store.TransactionStore
	logger       *slog.Logger
}

// NewSignalService creates a SignalService.
// It returns an error if any of the required dependencies are nil.
func NewSignalService(
	emotions store.EmotionStore,
	thoughts store.ThoughtStore,
	transactions store.TransactionStore,
	log *slog.Logger,
) (SignalService, error) {
	if emotions == nil || thoughts == nil || transactions == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "signal stores cannot be nil"}
	}
	if log == nil {
		log = slog.Default()
	}

	return &signalServiceImpl{
		emotions:     emotions,
		thoughts:     thoughts,
		transactions: transactions,
		logger:       log.With(slog.String("component", "signal_service")),
	}, nil
}

func (s *signalServiceImpl) IngestEmotion(ctx context.Context, emotion *domain.Emotion) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := emotion.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := s.emotions.Create(ctx, emotion); err != nil {
		return NewServiceError("ingest_emotion", "failed to store emotion", err)
	}

	log.InfoContext(ctx, "emotion ingested",
		slog.String("emotion_id", emotion.ID.String()),
		slog.String("user_id", emotion.UserID.String()))
	return nil
}

func (s *signalServiceImpl) IngestThought(ctx context.Context, thought *domain.Thought) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := thought.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := s.thoughts.Create(ctx, thought); err != nil {
		return NewServiceError("ingest_thought", "failed to store thought", err)
	}

	log.InfoContext(ctx, "thought ingested",
		slog.String("thought_id", thought.ID.String()),
		slog.String("user_id", thought.UserID.String()))
	return nil
}

func (s *signalServiceImpl) RecordTransactions(ctx context.Context, transactions []*domain.Transaction) error {
	for _, t := range transactions {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: transaction %s: %w", domain.ErrValidation, t.ID, err)
		}
	}
	if err := s.transactions.CreateBatch(ctx, transactions); err != nil {
		return NewServiceError("record_transactions", "failed to store transactions", err)
	}
	return nil
}
