package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/events"
	"github.com/mindcredit/mindcredit-api/internal/ingest"
	"github.com/mindcredit/mindcredit-api/internal/platform/kafka"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/platform/postgres"
	"github.com/mindcredit/mindcredit-api/internal/service"
	"github.com/mindcredit/mindcredit-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const defaultSignalCount = 100

// Transaction amounts are drawn from [minAmount, maxAmount].
const (
	minAmount = 100
	maxAmount = 10000
)

var thoughtPhrases = []string{
	"paid the card off early this month",
	"worried about rent next week",
	"treated myself to dinner",
	"sticking to the grocery budget",
	"impulse buy I regret",
	"moved savings into the emergency fund",
	"another subscription I forgot to cancel",
	"got a raise, feeling secure",
}

// seeder writes demo data. Transactions go straight to the database; emotions
// and thoughts are published as signals so they travel the ingestion path.
type seeder struct {
	db      *sql.DB
	users   store.UserStore
	emitter events.EventEmitter
	rng     *rand.Rand
	logger  *slog.Logger
}

func (s *seeder) createUser(ctx context.Context, name, email, deviceToken string) (*domain.User, error) {
	user, err := domain.NewUser(name, email)
	if err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	if deviceToken != "" {
		user.DeviceToken = &deviceToken
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.InfoContext(ctx, "user created", slog.String("user_id", user.ID.String()))
	return user, nil
}

// createTransactions inserts count random transactions atomically.
func (s *seeder) createTransactions(ctx context.Context, userID uuid.UUID, count int) error {
	types := domain.TransactionTypes()
	batch := make([]*domain.Transaction, 0, count)
	for i := 0; i < count; i++ {
		amount := decimal.NewFromInt(int64(minAmount + s.rng.Intn(maxAmount-minAmount+1)))
		t, err := domain.NewTransaction(userID, amount, types[s.rng.Intn(len(types))])
		if err != nil {
			return err
		}
		batch = append(batch, t)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return postgres.NewPostgresTransactionStore(tx, s.logger).CreateBatch(ctx, batch)
	})
	if err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	s.logger.InfoContext(ctx, "transactions inserted", slog.Int("count", count))
	return nil
}

func (s *seeder) publishEmotions(ctx context.Context, userID uuid.UUID, count int) error {
	types := domain.EmotionTypes()
	for i := 0; i < count; i++ {
		payload := ingest.EmotionPayload{
			ID:          uuid.New(),
			UserID:      userID,
			EmotionType: types[s.rng.Intn(len(types))],
			Intensity:   domain.MinEmotionIntensity + s.rng.Intn(domain.MaxEmotionIntensity),
			CreatedAt:   ingest.Timestamp{Time: time.Now().UTC()},
		}
		if err := s.publish(ctx, ingest.SignalTypeEmotion, payload); err != nil {
			return err
		}
	}
	s.logger.InfoContext(ctx, "emotions published", slog.Int("count", count))
	return nil
}

func (s *seeder) publishThoughts(ctx context.Context, userID uuid.UUID, count int) error {
	sentiments := domain.Sentiments()
	for i := 0; i < count; i++ {
		payload := ingest.ThoughtPayload{
			ID:        uuid.New(),
			UserID:    userID,
			Content:   thoughtPhrases[s.rng.Intn(len(thoughtPhrases))],
			Sentiment: sentiments[s.rng.Intn(len(sentiments))],
			CreatedAt: ingest.Timestamp{Time: time.Now().UTC()},
		}
		if err := s.publish(ctx, ingest.SignalTypeThought, payload); err != nil {
			return err
		}
	}
	s.logger.InfoContext(ctx, "thoughts published", slog.Int("count", count))
	return nil
}

func (s *seeder) publish(ctx context.Context, signalType string, payload any) error {
	event, err := events.NewSignalEvent(signalType, payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", signalType, err)
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", signalType, err)
	}
	return nil
}

// withSeeder loads configuration, connects to the database and runs fn with
// a seeder whose signals go to Kafka when brokers are configured and
// straight to the signal service otherwise.
func withSeeder(cmd *cobra.Command, fn func(*seeder) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cmd.ErrOrStderr(), cfg.Server.LogLevel).With(slog.String("component", "seed"))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := postgres.Migrate(ctx, db, "up", log); err != nil {
			return err
		}
	}

	emitter, closeEmitter, err := signalEmitter(cfg, db, log)
	if err != nil {
		return err
	}
	defer closeEmitter()

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return fn(&seeder{
		db:      db,
		users:   postgres.NewPostgresUserStore(db, log),
		emitter: emitter,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  log,
	})
}

func signalEmitter(cfg *config.Config, db *sql.DB, log *slog.Logger) (events.EventEmitter, func(), error) {
	if cfg.Kafka.Enabled() {
		p, err := kafka.NewPublisher(cfg.Kafka, log)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { _ = p.Close() }, nil
	}

	signals, err := service.NewSignalService(
		postgres.NewPostgresEmotionStore(db, log),
		postgres.NewPostgresThoughtStore(db, log),
		postgres.NewPostgresTransactionStore(db, log),
		log,
	)
	if err != nil {
		return nil, nil, err
	}
	return events.NewInMemoryEventEmitter(log, ingest.NewDispatcher(signals, log)), func() {}, nil
}

func userIDFlag(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("user-id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --user-id %q: %w", raw, err)
	}
	return id, nil
}
