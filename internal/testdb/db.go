package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/flashdeck/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// MigrationTableName is the goose version table shared with the server.
const MigrationTableName = migrations.TableName

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDatabaseURL returns DATABASE_URL, falling back to FLASHDECK_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("FLASHDECK_TEST_DB_URL")
}

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDBWithT returns a migrated database connection, skipping the test
// when no database is configured. The connection is closed on cleanup.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL or FLASHDECK_TEST_DB_URL not set - skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	migrateOnce.Do(func() {
		migrateErr = ApplyMigrations(db, &testGooseLogger{t: t})
	})
	require.NoError(t, migrateErr, "Failed to run migrations")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	return db
}

// ApplyMigrations runs every embedded migration against db.
// A nil logger keeps goose's default output.
func ApplyMigrations(db *sql.DB, logger goose.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 4*TestTimeout)
	defer cancel()
	return migrations.Run(ctx, db, "up", logger)
}

// testGooseLogger routes goose output through the test log.
type testGooseLogger struct {
	t *testing.T
}

func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Log("Goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatal("Goose fatal error: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
