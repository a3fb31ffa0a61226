// Package main implements the entry point for the MindCredit API server,
// which computes and deploys credit limits from behavioral signals.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status, version, redo, reset) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		log.Fatalf("mindcredit-api: %v", err)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves until ctx is cancelled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupAppDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer db.Close()
		return postgres.Migrate(ctx, db, migrateCmd, appLogger)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, "up", appLogger); err != nil {
			_ = db.Close()
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// loadAppConfig loads configuration and logs a summary without secrets.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("scoring_provider", cfg.Scoring.Provider),
		slog.Bool("kafka_enabled", cfg.Kafka.Enabled()),
		slog.Bool("push_enabled", cfg.Notification.PushEnabled()))
	return cfg, nil
}
