// Package main implements the entry point for the flashdeck API server,
// which schedules flashcard reviews, builds daily study queues and
// generates image quizzes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/platform/postgres/migrations"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command and exit: "+strings.Join(migrations.Commands, ", "),
	)
	flag.Parse()

	if err := run(context.Background(), *configPath, *migrateCmd); err != nil {
		slog.Error("flashdeck exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and either executes a migration
// command or serves the API until shutdown.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Format: cfg.Server.LogFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", maskDatabaseURL(cfg.Database.URL))

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database connection", "error", err)
			}
		}()
		return runMigrations(ctx, db, migrateCmd, log)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
