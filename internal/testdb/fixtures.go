package testdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/require"
)

// MustInsertDeck inserts a deck with default limits owned by userID.
func MustInsertDeck(ctx context.Context, t *testing.T, db store.DBTX, userID uuid.UUID, now time.Time) *domain.Deck {
	t.Helper()

	deck, err := domain.NewDeck(userID, "Deck "+uuid.NewString()[:8], "", now)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		INSERT INTO decks (id, user_id, name, description, daily_new_limit, daily_review_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, deck.ID, deck.UserID, deck.Name, deck.Description,
		deck.DailyNewLimit, deck.DailyReviewLimit, deck.CreatedAt, deck.UpdatedAt)
	require.NoError(t, err, "Failed to insert test deck")

	return deck
}

// MustInsertCard inserts a card with the given state and optional media.
func MustInsertCard(
	ctx context.Context,
	t *testing.T,
	db store.DBTX,
	deckID uuid.UUID,
	state domain.MemoryState,
	mediaURLs ...string,
) *domain.Card {
	t.Helper()

	card, err := domain.NewCard(deckID, "front "+uuid.NewString()[:8], "back", state.DueAt)
	require.NoError(t, err)
	card.State = state
	if len(mediaURLs) > 0 {
		card.MediaURLs = mediaURLs
	}

	var lastReviewed sql.NullTime
	if !state.LastReviewedAt.IsZero() {
		lastReviewed = sql.NullTime{Time: state.LastReviewedAt, Valid: true}
	}

	tags, err := json.Marshal(card.Tags)
	require.NoError(t, err)
	media, err := json.Marshal(card.MediaURLs)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		INSERT INTO cards (id, deck_id, front, back, tags, media_urls,
			ease_factor, interval_days, repetitions, due_at, lapse_count, suspended, last_reviewed_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, card.ID, card.DeckID, card.Front, card.Back, string(tags), string(media),
		state.EaseFactor, state.Interval, state.Repetitions, state.DueAt, state.LapseCount,
		state.Suspended, lastReviewed, card.CreatedAt, card.UpdatedAt)
	require.NoError(t, err, "Failed to insert test card")

	return card
}
