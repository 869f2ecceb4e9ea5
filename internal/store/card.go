package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// CardStore defines the interface for card persistence, including each card's memory state.
type CardStore interface {
	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetForUpdate retrieves a card with a row-level lock (SELECT ... FOR UPDATE).
	// Must be called within a transaction; concurrent ratings of the same card
	// serialise on this lock.
	// Returns ErrCardNotFound if the card does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByDeck returns every card in a deck, suspended ones included, ordered by due time.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error)

	// ListQuizCandidates returns the active cards of a deck that have at least one media URL.
	ListQuizCandidates(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error)

	// UpdateState replaces a card's memory state.
	// Returns ErrCardNotFound if the card does not exist and ErrInvalidEntity if the
	// state fails validation.
	UpdateState(ctx context.Context, id uuid.UUID, state domain.MemoryState, updatedAt time.Time) error

	// ResetDeck overwrites the memory state of every card in a deck with fresh,
	// clearing suspension and the last review, and reports how many cards were
	// reset. updatedAt is stamped on every row.
	ResetDeck(ctx context.Context, deckID uuid.UUID, fresh domain.MemoryState, updatedAt time.Time) (int64, error)

	// WithTx returns a CardStore bound to tx.
	WithTx(tx *sql.Tx) CardStore
}
