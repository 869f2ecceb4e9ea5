package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// DeckStore defines the interface for deck persistence.
type DeckStore interface {
	// GetOwned retrieves a deck only if it belongs to userID.
	// Returns ErrDeckNotFound both when the deck is missing and when another user owns it.
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error)

	// WithTx returns a DeckStore bound to tx.
	WithTx(tx *sql.Tx) DeckStore
}
