package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mindcredit/mindcredit-api/internal/breaker"
	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/domain/credit"
	"github.com/mindcredit/mindcredit-api/internal/events"
	"github.com/mindcredit/mindcredit-api/internal/ingest"
	"github.com/mindcredit/mindcredit-api/internal/platform/gemini"
	"github.com/mindcredit/mindcredit-api/internal/platform/kafka"
	"github.com/mindcredit/mindcredit-api/internal/platform/postgres"
	"github.com/mindcredit/mindcredit-api/internal/platform/push"
	"github.com/mindcredit/mindcredit-api/internal/scoring"
	"github.com/mindcredit/mindcredit-api/internal/service"
	"github.com/mindcredit/mindcredit-api/internal/service/auth"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

// application holds the shared dependencies and owns their shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore         store.UserStore
	creditLimitStore  store.CreditLimitStore
	emotionStore      store.EmotionStore
	thoughtStore      store.ThoughtStore
	transactionStore  store.TransactionStore
	notificationStore store.NotificationStore

	// Services
	authenticator       auth.Authenticator
	scorer              scoring.Scorer
	pushSender          service.PushSender
	notificationService service.NotificationService
	signalService       service.SignalService
	creditLimitService  service.CreditLimitService

	// Signal transport
	eventEmitter events.EventEmitter
	consumer     *kafka.Consumer
	publisher    *kafka.Publisher
}

// newApplication wires every dependency from cfg. The database connection is
// established by the caller.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.authenticator, err = auth.NewBasicAuthenticator(cfg.Auth, auth.BcryptVerifier{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authenticator: %w", err)
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.creditLimitStore = postgres.NewPostgresCreditLimitStore(db, logger)
	app.emotionStore = postgres.NewPostgresEmotionStore(db, logger)
	app.thoughtStore = postgres.NewPostgresThoughtStore(db, logger)
	app.transactionStore = postgres.NewPostgresTransactionStore(db, logger)
	app.notificationStore = postgres.NewPostgresNotificationStore(db, logger)

	app.scorer, err = newScorer(ctx, cfg.Scoring, logger)
	if err != nil {
		return nil, err
	}

	app.pushSender, err = newPushSender(ctx, cfg.Notification, logger)
	if err != nil {
		return nil, err
	}

	app.notificationService, err = service.NewNotificationService(app.notificationStore, app.pushSender, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	app.signalService, err = service.NewSignalService(app.emotionStore, app.thoughtStore, app.transactionStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create signal service: %w", err)
	}

	app.creditLimitService, err = service.NewCreditLimitService(service.CreditLimitDeps{
		DB:           db,
		Users:        app.userStore,
		CreditLimits: app.creditLimitStore,
		Emotions:     app.emotionStore,
		Thoughts:     app.thoughtStore,
		Transactions: app.transactionStore,
		Scorer:       app.scorer,
		Breaker:      newScorerBreaker(cfg.Breaker, logger),
		Notifier:     app.notificationService,
		Params:       creditParams(cfg.Credit),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create credit limit service: %w", err)
	}

	if err := app.setupSignalTransport(); err != nil {
		return nil, err
	}

	logger.Info("application initialized")
	return app, nil
}

// setupSignalTransport publishes brain-data signals to Kafka when brokers are
// configured, and otherwise dispatches them in process.
func (app *application) setupSignalTransport() error {
	dispatcher := ingest.NewDispatcher(app.signalService, app.logger)

	if !app.config.Kafka.Enabled() {
		app.eventEmitter = events.NewInMemoryEventEmitter(app.logger, dispatcher)
		app.logger.Info("kafka disabled, dispatching signals in process")
		return nil
	}

	var err error
	app.publisher, err = kafka.NewPublisher(app.config.Kafka, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	app.consumer, err = kafka.NewConsumer(app.config.Kafka, dispatcher, app.logger)
	if err != nil {
		_ = app.publisher.Close()
		return fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	app.eventEmitter = app.publisher
	app.logger.Info("kafka signal transport configured",
		slog.String("topic", app.config.Kafka.Topic),
		slog.String("group_id", app.config.Kafka.GroupID))
	return nil
}

// newScorer selects the risk scorer named by cfg.Provider.
func newScorer(ctx context.Context, cfg config.ScoringConfig, logger *slog.Logger) (scoring.Scorer, error) {
	switch cfg.Provider {
	case "gemini":
		s, err := gemini.NewRiskScorer(ctx, logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini risk scorer: %w", err)
		}
		logger.Info("gemini risk scorer initialized", slog.String("model", cfg.Model))
		return s, nil
	case "", "baseline":
		logger.Info("baseline risk scorer initialized")
		return scoring.NewBaselineScorer(nil), nil
	default:
		return nil, fmt.Errorf("%w: unknown scoring provider %q", scoring.ErrInvalidConfig, cfg.Provider)
	}
}

// newPushSender returns an FCM sender when credentials are configured and a
// logging no-op otherwise.
func newPushSender(ctx context.Context, cfg config.NotificationConfig, logger *slog.Logger) (service.PushSender, error) {
	if !cfg.PushEnabled() {
		logger.Info("push credentials not configured, notifications will not be delivered")
		return push.NewNoopSender(logger), nil
	}
	s, err := push.NewFCMSender(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize push sender: %w", err)
	}
	return s, nil
}

func newScorerBreaker(cfg config.BreakerConfig, logger *slog.Logger) *breaker.CircuitBreaker {
	return breaker.New(breaker.Config{
		FailureThreshold: cfg.FailureThreshold,
		RecoveryTimeout:  cfg.RecoveryTimeout,
		MaxAttempts:      cfg.MaxAttempts,
	}, breaker.WithLogger(logger), breaker.WithName("risk_scorer"))
}

func creditParams(cfg config.CreditConfig) *credit.Params {
	p := credit.DefaultParams(cfg.BaseLimit)
	p.IncreaseRatio = cfg.IncreaseRatio
	p.DecreaseRatio = cfg.DecreaseRatio
	p.PositiveIntensityCeiling = cfg.PositiveIntensityCeiling
	p.NegativeIntensityFloor = cfg.NegativeIntensityFloor
	return p
}

// cleanup releases transport and database resources.
func (app *application) cleanup() {
	if app.consumer != nil {
		if err := app.consumer.Close(); err != nil {
			app.logger.Error("error closing kafka consumer", slog.String("error", err.Error()))
		}
	}
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("error closing kafka publisher", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
