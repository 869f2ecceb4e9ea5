package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// TxFn runs inside a transaction; a nil return commits, anything else rolls back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction executes fn within a transaction using the driver's default isolation.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	return RunInTransactionWithOptions(ctx, db, nil, fn)
}

// RunInTransactionWithOptions executes fn within a transaction started with opts.
// A panic inside fn rolls the transaction back and is re-raised.
func RunInTransactionWithOptions(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFn) error {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	// Begin a transaction
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.Error("failed to begin transaction", redact.Attr(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Roll back if fn panics
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction after panic",
					redact.Attr(rbErr),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic", slog.Any("panic", p))
			}
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
	}()

	// Execute fn within the transaction
	if err := fn(ctx, tx); err != nil {
		// Roll back on error
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				redact.Attr(rbErr),
				slog.String("original_error", redact.Error(err)))
			// Keep both errors; only the original is matchable
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		log.Debug("rolled back transaction", redact.Attr(err))
		return err
	}

	// Commit once fn succeeded
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", redact.Attr(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
