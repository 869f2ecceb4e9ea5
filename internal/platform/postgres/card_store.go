package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/store"
)

const cardColumns = `id, deck_id, front, back, tags, media_urls,
	ease_factor, interval_days, repetitions, due_at, lapse_count, suspended, last_reviewed_at,
	created_at, updated_at`

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
// A card row carries the card content and its memory state.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card         domain.Card
		tags         []byte
		mediaURLs    []byte
		lastReviewed sql.NullTime
	)

	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&tags,
		&mediaURLs,
		&card.State.EaseFactor,
		&card.State.Interval,
		&card.State.Repetitions,
		&card.State.DueAt,
		&card.State.LapseCount,
		&card.State.Suspended,
		&lastReviewed,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeStrings(tags, &card.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags of card %s: %w", card.ID, err)
	}
	if err := decodeStrings(mediaURLs, &card.MediaURLs); err != nil {
		return nil, fmt.Errorf("decoding media_urls of card %s: %w", card.ID, err)
	}

	card.State.DueAt = card.State.DueAt.UTC()
	if lastReviewed.Valid {
		card.State.LastReviewedAt = lastReviewed.Time.UTC()
	}
	card.CreatedAt = card.CreatedAt.UTC()
	card.UpdatedAt = card.UpdatedAt.UTC()

	return &card, nil
}

func decodeStrings(raw []byte, dst *[]string) error {
	*dst = []string{}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// nullTime stores the zero time as NULL so "never reviewed" survives a round trip.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

// GetByID implements store.CardStore.GetByID.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return s.getOne(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
}

// GetForUpdate implements store.CardStore.GetForUpdate.
func (s *PostgresCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return s.getOne(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1 FOR UPDATE`, id)
}

func (s *PostgresCardStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			redact.Attr(err),
			slog.String("card_id", id.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// ListByDeck implements store.CardStore.ListByDeck.
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE deck_id = $1 ORDER BY due_at, id`
	return s.list(ctx, query, deckID)
}

// ListQuizCandidates implements store.CardStore.ListQuizCandidates.
func (s *PostgresCardStore) ListQuizCandidates(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = $1 AND NOT suspended AND jsonb_array_length(media_urls) > 0
		ORDER BY created_at, id
	`
	return s.list(ctx, query, deckID)
}

func (s *PostgresCardStore) list(ctx context.Context, query string, deckID uuid.UUID) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.Error("failed to list cards",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", redact.Attr(closeErr))
		}
	}()

	cards := []domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card",
				redact.Attr(err),
				slog.String("deck_id", deckID.String()))
			return nil, MapError(err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating cards",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return nil, MapError(err)
	}

	log.Debug("cards listed",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// UpdateState implements store.CardStore.UpdateState.
func (s *PostgresCardStore) UpdateState(
	ctx context.Context,
	id uuid.UUID,
	state domain.MemoryState,
	updatedAt time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("memory state validation failed",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET ease_factor = $1, interval_days = $2, repetitions = $3, due_at = $4,
			lapse_count = $5, suspended = $6, last_reviewed_at = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		state.EaseFactor,
		state.Interval,
		state.Repetitions,
		state.DueAt.UTC(),
		state.LapseCount,
		state.Suspended,
		nullTime(state.LastReviewedAt),
		updatedAt.UTC(),
		id,
	)
	if err != nil {
		log.Error("failed to update card state",
			redact.Attr(err),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		log.Debug("card state not updated",
			slog.String("card_id", id.String()),
			slog.String("error", err.Error()))
		return err
	}

	log.Debug("card state updated",
		slog.String("card_id", id.String()),
		slog.Int("interval", state.Interval),
		slog.Time("due_at", state.DueAt))
	return nil
}

// ResetDeck implements store.CardStore.ResetDeck.
func (s *PostgresCardStore) ResetDeck(
	ctx context.Context,
	deckID uuid.UUID,
	fresh domain.MemoryState,
	updatedAt time.Time,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := fresh.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET ease_factor = $2, interval_days = $3, repetitions = $4, due_at = $5,
			lapse_count = $6, suspended = $7, last_reviewed_at = NULL, updated_at = $8
		WHERE deck_id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		deckID,
		fresh.EaseFactor,
		fresh.Interval,
		fresh.Repetitions,
		fresh.DueAt.UTC(),
		fresh.LapseCount,
		false,
		updatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to reset deck",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return 0, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("deck reset",
		slog.String("deck_id", deckID.String()),
		slog.Int64("cards", n))
	return n, nil
}

// WithTx implements store.CardStore.WithTx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
