package card_review

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// CardRepository is the card access the review workflow needs.
type CardRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error)
	UpdateState(ctx context.Context, id uuid.UUID, state domain.MemoryState, updatedAt time.Time) error
	WithTx(tx *sql.Tx) CardRepository
}

// DeckRepository resolves deck ownership.
type DeckRepository interface {
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error)
	WithTx(tx *sql.Tx) DeckRepository
}

// ReviewLogRepository records ratings and counts today's reviews.
type ReviewLogRepository interface {
	Create(ctx context.Context, log *domain.ReviewLog) error
	CountSince(ctx context.Context, deckID, userID uuid.UUID, since time.Time) (int, error)
	WithTx(tx *sql.Tx) ReviewLogRepository
}

// NewCardRepositoryAdapter lets a store.CardStore be used where a CardRepository is expected.
// Store not-found errors are translated to ErrCardNotFound.
func NewCardRepositoryAdapter(cardStore store.CardStore) CardRepository {
	return &cardRepositoryAdapter{cardStore: cardStore}
}

type cardRepositoryAdapter struct {
	cardStore store.CardStore
}

func (a *cardRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, err := a.cardStore.GetByID(ctx, id)
	return card, translateCardErr(err)
}

func (a *cardRepositoryAdapter) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, err := a.cardStore.GetForUpdate(ctx, id)
	return card, translateCardErr(err)
}

func (a *cardRepositoryAdapter) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	return a.cardStore.ListByDeck(ctx, deckID)
}

func (a *cardRepositoryAdapter) UpdateState(
	ctx context.Context,
	id uuid.UUID,
	state domain.MemoryState,
	updatedAt time.Time,
) error {
	return translateCardErr(a.cardStore.UpdateState(ctx, id, state, updatedAt))
}

func (a *cardRepositoryAdapter) WithTx(tx *sql.Tx) CardRepository {
	return &cardRepositoryAdapter{cardStore: a.cardStore.WithTx(tx)}
}

func translateCardErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrCardNotFound
	}
	return err
}

// NewDeckRepositoryAdapter lets a store.DeckStore be used where a DeckRepository is expected.
func NewDeckRepositoryAdapter(deckStore store.DeckStore) DeckRepository {
	return &deckRepositoryAdapter{deckStore: deckStore}
}

type deckRepositoryAdapter struct {
	deckStore store.DeckStore
}

func (a *deckRepositoryAdapter) GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error) {
	deck, err := a.deckStore.GetOwned(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrDeckNotFound
	}
	return deck, err
}

func (a *deckRepositoryAdapter) WithTx(tx *sql.Tx) DeckRepository {
	return &deckRepositoryAdapter{deckStore: a.deckStore.WithTx(tx)}
}

// NewReviewLogRepositoryAdapter lets a store.ReviewLogStore be used where a
// ReviewLogRepository is expected.
func NewReviewLogRepositoryAdapter(logStore store.ReviewLogStore) ReviewLogRepository {
	return &reviewLogRepositoryAdapter{logStore: logStore}
}

type reviewLogRepositoryAdapter struct {
	logStore store.ReviewLogStore
}

func (a *reviewLogRepositoryAdapter) Create(ctx context.Context, log *domain.ReviewLog) error {
	return a.logStore.Create(ctx, log)
}

func (a *reviewLogRepositoryAdapter) CountSince(
	ctx context.Context,
	deckID, userID uuid.UUID,
	since time.Time,
) (int, error) {
	return a.logStore.CountSince(ctx, deckID, userID, since)
}

func (a *reviewLogRepositoryAdapter) WithTx(tx *sql.Tx) ReviewLogRepository {
	return &reviewLogRepositoryAdapter{logStore: a.logStore.WithTx(tx)}
}
