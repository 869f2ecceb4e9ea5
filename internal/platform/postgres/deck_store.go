package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/store"
)

const deckColumns = `id, user_id, name, description, daily_new_limit, daily_review_limit, created_at, updated_at`

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// GetOwned implements store.DeckStore.GetOwned.
// A deck owned by someone else is indistinguishable from a missing one.
func (s *PostgresDeckStore) GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error) {
	query := `SELECT ` + deckColumns + ` FROM decks WHERE id = $1 AND user_id = $2`
	return s.get(ctx, query, id, userID)
}

func (s *PostgresDeckStore) get(ctx context.Context, query string, id uuid.UUID, args ...any) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, append([]any{id}, args...)...).Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&deck.Description,
		&deck.DailyNewLimit,
		&deck.DailyReviewLimit,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck",
			redact.Attr(err),
			slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}

	deck.CreatedAt = deck.CreatedAt.UTC()
	deck.UpdatedAt = deck.UpdatedAt.UTC()
	return &deck, nil
}

// WithTx implements store.DeckStore.WithTx.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}
