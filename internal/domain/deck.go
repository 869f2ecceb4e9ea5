package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Per-deck daily defaults.
const (
	DefaultDailyNewLimit    = 20
	DefaultDailyReviewLimit = 200
)

// Deck-specific validation errors
var (
	ErrDeckIDEmpty        = fmt.Errorf("%w: deck ID cannot be empty", ErrValidation)
	ErrDeckUserIDEmpty    = fmt.Errorf("%w: deck user ID cannot be empty", ErrValidation)
	ErrDeckNameEmpty      = fmt.Errorf("%w: deck name cannot be empty", ErrValidation)
	ErrNegativeDailyLimit = fmt.Errorf("%w: daily limits must be greater than or equal to 0", ErrValidation)
)

// Deck groups cards owned by a single user and carries that user's daily limits.
type Deck struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	DailyNewLimit    int       `json:"daily_new_limit"`
	DailyReviewLimit int       `json:"daily_review_limit"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewDeck creates a deck with default daily limits.
func NewDeck(userID uuid.UUID, name, description string, now time.Time) (*Deck, error) {
	deck := &Deck{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		Description:      description,
		DailyNewLimit:    DefaultDailyNewLimit,
		DailyReviewLimit: DefaultDailyReviewLimit,
		CreatedAt:        now.UTC(),
		UpdatedAt:        now.UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if strings.TrimSpace(d.Name) == "" {
		return ErrDeckNameEmpty
	}

	if d.DailyNewLimit < 0 || d.DailyReviewLimit < 0 {
		return ErrNegativeDailyLimit
	}

	return nil
}

// Counters returns the deck's limits combined with the number of reviews
// already recorded today.
func (d *Deck) Counters(reviewsDoneToday int) DeckCounters {
	return DeckCounters{
		DailyNewLimit:    d.DailyNewLimit,
		DailyReviewLimit: d.DailyReviewLimit,
		ReviewsDoneToday: reviewsDoneToday,
	}
}

// DeckCounters are the caller-computed daily budgets consumed by queue selection.
type DeckCounters struct {
	DailyNewLimit    int `json:"daily_new_limit"`
	DailyReviewLimit int `json:"daily_review_limit"`
	ReviewsDoneToday int `json:"reviews_done_today"`
}

// RemainingReviews is the number of due cards that may still be shown today.
func (c DeckCounters) RemainingReviews() int {
	return max(0, c.DailyReviewLimit-c.ReviewsDoneToday)
}

// RemainingNew is the number of new cards that may be introduced.
func (c DeckCounters) RemainingNew() int {
	return max(0, c.DailyNewLimit)
}
