//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_CardStateRoundTrip(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		now := time.Now().UTC().Truncate(time.Microsecond)
		deck := testdb.MustInsertDeck(ctx, t, tx, uuid.New(), now)
		card := testdb.MustInsertCard(ctx, t, tx, deck.ID, domain.NewMemoryState(now), "https://cdn.example.com/a.png")

		cards := postgres.NewPostgresCardStore(tx, nil)

		locked, err := cards.GetForUpdate(ctx, card.ID)
		require.NoError(t, err)
		assert.False(t, locked.State.Reviewed())
		assert.Equal(t, []string{"https://cdn.example.com/a.png"}, locked.MediaURLs)

		next := domain.MemoryState{
			EaseFactor:     2.5,
			Interval:       1,
			Repetitions:    1,
			DueAt:          now.AddDate(0, 0, 1),
			LastReviewedAt: now,
		}
		require.NoError(t, cards.UpdateState(ctx, card.ID, next, now))

		got, err := cards.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.State.Interval)
		assert.Equal(t, 1, got.State.Repetitions)
		assert.True(t, got.State.DueAt.Equal(next.DueAt))
		assert.True(t, got.State.LastReviewedAt.Equal(now))
	})
}

func TestIntegration_MediaURLsRoundTrip(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		now := time.Now().UTC().Truncate(time.Microsecond)
		deck := testdb.MustInsertDeck(ctx, t, tx, uuid.New(), now)
		urls := []string{
			"https://cdn.example.com/a.png",
			`https://cdn.example.com/b "quoted".png`,
			`https://cdn.example.com/c\\d.png`,
		}
		card := testdb.MustInsertCard(ctx, t, tx, deck.ID, domain.NewMemoryState(now), urls...)

		got, err := postgres.NewPostgresCardStore(tx, nil).GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, urls, got.MediaURLs)
		assert.Empty(t, got.Tags)
	})
}

func TestIntegration_ListsAndReset(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		now := time.Now().UTC().Truncate(time.Microsecond)
		deck := testdb.MustInsertDeck(ctx, t, tx, uuid.New(), now)

		reviewed := domain.MemoryState{
			EaseFactor: 2.1, Interval: 6, Repetitions: 2, LapseCount: 1,
			DueAt: now.Add(-time.Hour), LastReviewedAt: now.AddDate(0, 0, -6),
		}
		suspended := domain.NewMemoryState(now)
		suspended.Suspended = true

		testdb.MustInsertCard(ctx, t, tx, deck.ID, reviewed, "https://cdn.example.com/1.png")
		testdb.MustInsertCard(ctx, t, tx, deck.ID, suspended, "https://cdn.example.com/2.png")
		testdb.MustInsertCard(ctx, t, tx, deck.ID, domain.NewMemoryState(now))

		cards := postgres.NewPostgresCardStore(tx, nil)

		all, err := cards.ListByDeck(ctx, deck.ID)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		candidates, err := cards.ListQuizCandidates(ctx, deck.ID)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, 2, candidates[0].State.Repetitions)

		n, err := cards.ResetDeck(ctx, deck.ID, domain.NewMemoryState(now), now)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		all, err = cards.ListByDeck(ctx, deck.ID)
		require.NoError(t, err)
		for _, c := range all {
			assert.Equal(t, domain.DefaultEaseFactor, c.State.EaseFactor)
			assert.Zero(t, c.State.Repetitions)
			assert.False(t, c.State.Suspended)
			assert.False(t, c.State.Reviewed())
		}
	})
}

func TestIntegration_ReviewLogCounting(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		now := time.Now().UTC().Truncate(time.Microsecond)
		userID := uuid.New()
		deck := testdb.MustInsertDeck(ctx, t, tx, userID, now)
		card := testdb.MustInsertCard(ctx, t, tx, deck.ID, domain.NewMemoryState(now))

		logs := postgres.NewPostgresReviewLogStore(tx, nil)
		for _, at := range []time.Time{now.AddDate(0, 0, -1), now, now.Add(time.Minute)} {
			entry := domain.NewReviewLog(card, userID, domain.RatingGood, card.State, at)
			require.NoError(t, logs.Create(ctx, entry))
		}

		count, err := logs.CountSince(ctx, deck.ID, userID, now)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		count, err = logs.CountSince(ctx, deck.ID, uuid.New(), now.AddDate(0, 0, -2))
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestIntegration_DeckOwnership(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		now := time.Now().UTC().Truncate(time.Microsecond)
		owner := uuid.New()
		deck := testdb.MustInsertDeck(ctx, t, tx, owner, now)

		decks := postgres.NewPostgresDeckStore(tx, nil)

		got, err := decks.GetOwned(ctx, deck.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, deck.Name, got.Name)

		_, err = decks.GetOwned(ctx, deck.ID, uuid.New())
		assert.ErrorIs(t, err, store.ErrDeckNotFound)
	})
}
