package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/breaker"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/domain/credit"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/scoring"
	"github.com/mindcredit/mindcredit-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Notification text sent after a deployment.
const (
	creditLimitUpdateTitle   = "Credit Limit Update"
	creditLimitUpdateContent = "Your credit limit has been updated"
)

// CalculateParams identifies the user and the inclusive signal window for a calculation.
type CalculateParams struct {
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
}

// DeployParams identifies the credit limit to make active for a user.
type DeployParams struct {
	UserID        uuid.UUID
	CreditLimitID uuid.UUID
}

// CreditLimitService computes and deploys credit limits.
type CreditLimitService interface {
	// Calculate scores the user's signals in the window and persists a new
	// CreditLimit. The user's active limit is not changed.
	Calculate(ctx context.Context, params CalculateParams) (*domain.CreditLimit, error)

	// Deploy makes an existing CreditLimit the user's active limit and
	// notifies the user. Notification failures do not fail the deployment.
	Deploy(ctx context.Context, params DeployParams) (*domain.User, error)

	// ListCreditLimits returns every limit computed for the user, newest first.
	ListCreditLimits(ctx context.Context, userID uuid.UUID) ([]*domain.CreditLimit, error)
}

// CreditLimitDeps groups the collaborators of the credit-limit service.
type CreditLimitDeps struct {
	DB           *sql.DB
	Users        store.UserStore
	CreditLimits store.CreditLimitStore
	Emotions     store.EmotionStore
	Thoughts     store.ThoughtStore
	Transactions store.TransactionStore
	Scorer       scoring.Scorer
	Breaker      *breaker.CircuitBreaker
	Notifier     NotificationService
	Params       *credit.Params
}

type creditLimitServiceImpl struct {
	deps   CreditLimitDeps
	logger *slog.Logger
}

// NewCreditLimitService creates a CreditLimitService.
// It returns an error if any of the required dependencies are nil or the
// algorithm parameters are invalid.
func NewCreditLimitService(deps CreditLimitDeps, log *slog.Logger) (CreditLimitService, error) {
	missing := func(name string) error {
		return &ServiceError{Operation: "create_service", Message: name + " cannot be nil"}
	}
	switch {
	case deps.DB == nil:
		return nil, missing("db")
	case deps.Users == nil:
		return nil, missing("users")
	case deps.CreditLimits == nil:
		return nil, missing("credit limits")
	case deps.Emotions == nil, deps.Thoughts == nil, deps.Transactions == nil:
		return nil, missing("signal stores")
	case deps.Scorer == nil:
		return nil, missing("scorer")
	case deps.Breaker == nil:
		return nil, missing("breaker")
	case deps.Notifier == nil:
		return nil, missing("notifier")
	case deps.Params == nil:
		return nil, missing("params")
	}
	if err := deps.Params.Validate(); err != nil {
		return nil, &ServiceError{Operation: "create_service", Message: "invalid credit params", Err: err}
	}
	if log == nil {
		log = slog.Default()
	}

	return &creditLimitServiceImpl{
		deps:   deps,
		logger: log.With(slog.String("component", "credit_limit_service")),
	}, nil
}

// Calculate implements CreditLimitService.
func (s *creditLimitServiceImpl) Calculate(
	ctx context.Context,
	params CalculateParams,
) (*domain.CreditLimit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).
		With(slog.String("user_id", params.UserID.String()))

	if params.End.Before(params.Start) {
		return nil, domain.ErrInvalidWindow
	}

	user, err := s.deps.Users.GetByID(ctx, params.UserID)
	if err != nil {
		return nil, NewServiceError("calculate", "failed to load user", err)
	}

	var (
		emotions     []*domain.Emotion
		thoughts     []*domain.Thought
		transactions []*domain.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emotions, err = s.deps.Emotions.FindByUserInWindow(gctx, user.ID, params.Start, params.End)
		return err
	})
	g.Go(func() error {
		var err error
		thoughts, err = s.deps.Thoughts.FindByUserInWindow(gctx, user.ID, params.Start, params.End)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.deps.Transactions.FindByUserInWindow(gctx, user.ID, params.Start, params.End)
		return err
	})
	if err := g.Wait(); err != nil {
		log.ErrorContext(ctx, "failed to retrieve signals", slog.String("error", err.Error()))
		return nil, NewServiceError("calculate", "failed to retrieve signals", err)
	}

	log.InfoContext(ctx, "signals retrieved",
		slog.Int("emotions", len(emotions)),
		slog.Int("thoughts", len(thoughts)),
		slog.Int("transactions", len(transactions)))

	score, err := breaker.Call(s.deps.Breaker, func() (int, error) {
		return s.deps.Scorer.Score(ctx, emotions, thoughts, transactions)
	})
	if err != nil {
		if errors.Is(err, breaker.ErrOpen) {
			log.WarnContext(ctx, "risk scorer short-circuited")
			return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}
		log.ErrorContext(ctx, "risk scoring failed", slog.String("error", err.Error()))
		return nil, err
	}

	result, err := credit.Compute(s.deps.Params, score, emotions, thoughts)
	if err != nil {
		log.ErrorContext(ctx, "risk score rejected",
			slog.Int("risk_score", score),
			slog.String("error", err.Error()))
		return nil, err
	}

	limit := domain.NewCreditLimit(user.ID, score, result.Limit, result.Increase)
	if err := s.deps.CreditLimits.Create(ctx, limit); err != nil {
		log.ErrorContext(ctx, "failed to save credit limit", slog.String("error", err.Error()))
		return nil, NewServiceError("calculate", "failed to save credit limit", err)
	}

	log.InfoContext(ctx, "credit limit calculated",
		slog.String("credit_limit_id", limit.ID.String()),
		slog.Int("risk_score", score),
		slog.String("tier", string(result.Tier.Tier)),
		slog.Int64("base_limit", result.BaseLimit),
		slog.Int64("increase", result.Increase),
		slog.Int64("credit_limit", result.Limit))
	return limit, nil
}

// Deploy implements CreditLimitService.
func (s *creditLimitServiceImpl) Deploy(ctx context.Context, params DeployParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).
		With(slog.String("user_id", params.UserID.String()),
			slog.String("credit_limit_id", params.CreditLimitID.String()))

	var deployed *domain.User
	err := store.RunInTransaction(ctx, s.deps.DB, func(ctx context.Context, tx *sql.Tx) error {
		users := s.deps.Users.WithTx(tx)
		limits := s.deps.CreditLimits.WithTx(tx)

		user, err := users.GetByIDForUpdate(ctx, params.UserID)
		if err != nil {
			return err
		}

		limit, err := limits.GetByID(ctx, params.CreditLimitID)
		if err != nil {
			return err
		}
		if limit.UserID != user.ID {
			return ErrCreditLimitNotOwned
		}

		user.ApplyCreditLimit(limit)
		if err := users.Update(ctx, user); err != nil {
			return err
		}

		deployed = user
		return nil
	})
	if err != nil {
		log.WarnContext(ctx, "credit limit deployment failed", slog.String("error", err.Error()))
		return nil, NewServiceError("deploy", "failed to deploy credit limit", err)
	}

	log.InfoContext(ctx, "credit limit deployed", slog.Int64("credit_limit", *deployed.CreditLimit))

	if _, err := s.deps.Notifier.Notify(ctx, deployed, NotificationPayload{
		Title:   creditLimitUpdateTitle,
		Content: creditLimitUpdateContent,
		Type:    domain.NotificationTypeCreditLimitUpdate,
	}); err != nil {
		log.ErrorContext(ctx, "deployment notification failed", slog.String("error", err.Error()))
	}

	return deployed, nil
}

// ListCreditLimits implements CreditLimitService.
func (s *creditLimitServiceImpl) ListCreditLimits(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.CreditLimit, error) {
	if _, err := s.deps.Users.GetByID(ctx, userID); err != nil {
		return nil, NewServiceError("list_credit_limits", "failed to load user", err)
	}

	limits, err := s.deps.CreditLimits.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_credit_limits", "failed to list credit limits", err)
	}
	return limits, nil
}
