package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// ReviewLogStore persists the rating history.
type ReviewLogStore interface {
	// Create appends a review log entry.
	Create(ctx context.Context, log *domain.ReviewLog) error

	// CountSince counts a user's reviews in a deck recorded at or after since.
	CountSince(ctx context.Context, deckID, userID uuid.UUID, since time.Time) (int, error)

	// WithTx returns a ReviewLogStore bound to tx.
	WithTx(tx *sql.Tx) ReviewLogStore
}
