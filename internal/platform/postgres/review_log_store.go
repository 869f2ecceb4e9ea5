package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresReviewLogStore implements the store.ReviewLogStore interface.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a review log store on db.
// If logger is nil, a default logger will be used.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

// Create implements store.ReviewLogStore.Create.
func (s *PostgresReviewLogStore) Create(ctx context.Context, entry *domain.ReviewLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !entry.Rating.Valid() {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidRating)
	}

	query := `
		INSERT INTO review_logs (id, card_id, deck_id, user_id, rating, scheduled_interval, new_ease_factor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.CardID,
		entry.DeckID,
		entry.UserID,
		string(entry.Rating),
		entry.ScheduledInterval,
		entry.NewEaseFactor,
		entry.CreatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to create review log",
			redact.Attr(err),
			slog.String("card_id", entry.CardID.String()))
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, store.ErrCardNotFound)
		}
		return MapError(err)
	}

	return nil
}

// CountSince implements store.ReviewLogStore.CountSince.
func (s *PostgresReviewLogStore) CountSince(
	ctx context.Context,
	deckID, userID uuid.UUID,
	since time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM review_logs
		WHERE deck_id = $1 AND user_id = $2 AND created_at >= $3
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, deckID, userID, since.UTC()).Scan(&count); err != nil {
		log.Error("failed to count reviews",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.ReviewLogStore.WithTx.
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}
