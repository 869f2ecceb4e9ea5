package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// TableName is the goose version table.
const TableName = "schema_migrations"

// Commands lists the goose commands Run accepts.
var Commands = []string{"up", "down", "status", "version", "reset"}

// Run executes a goose command against db using the embedded migrations.
// A nil logger keeps goose's default output.
func Run(ctx context.Context, db *sql.DB, command string, logger goose.Logger) error {
	if logger != nil {
		goose.SetLogger(logger)
	}
	goose.SetTableName(TableName)
	goose.SetBaseFS(FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		err = goose.VersionContext(ctx, db, ".")
	case "reset":
		err = goose.ResetContext(ctx, db, ".")
	default:
		return fmt.Errorf("unsupported migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
