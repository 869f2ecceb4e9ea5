package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/platform/postgres/migrations"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress output at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level. It does not exit; the failure is returned
// to main, which owns the exit code.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// runMigrations executes a goose command with the embedded migrations.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if !slices.Contains(migrations.Commands, command) {
		return fmt.Errorf("unknown migration command %q (want one of %s)",
			command, strings.Join(migrations.Commands, ", "))
	}

	migrationLogger := logger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)

	start := time.Now()
	migrationLogger.Info("Starting migration operation")

	err := migrations.Run(ctx, db, command, &slogGooseLogger{logger: migrationLogger})

	migrationLogger.Info("Migration operation completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"success", err == nil)
	return err
}

// maskDatabaseURL hides the password of a connection URL for logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
		}
	}
	return parsedURL.String()
}
