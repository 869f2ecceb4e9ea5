package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = fmt.Errorf("%w: card deck ID cannot be empty", ErrValidation)

	// ErrCardFrontEmpty is returned when a card has no prompt text.
	ErrCardFrontEmpty = fmt.Errorf("%w: card front cannot be empty", ErrValidation)

	// ErrCardBackEmpty is returned when a card has no answer text.
	ErrCardBackEmpty = fmt.Errorf("%w: card back cannot be empty", ErrValidation)
)

// Card is a single flashcard together with its scheduling state.
type Card struct {
	ID        uuid.UUID   `json:"id"`
	DeckID    uuid.UUID   `json:"deck_id"`
	Front     string      `json:"front"`
	Back      string      `json:"back"`
	Tags      []string    `json:"tags"`
	MediaURLs []string    `json:"media_urls"`
	State     MemoryState `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewCard creates a card in deckID that is due immediately.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, front, back string, now time.Time) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		DeckID:    deckID,
		Front:     front,
		Back:      back,
		Tags:      []string{},
		MediaURLs: []string{},
		State:     NewMemoryState(now),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data, including its memory state.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if strings.TrimSpace(c.Front) == "" {
		return ErrCardFrontEmpty
	}

	if strings.TrimSpace(c.Back) == "" {
		return ErrCardBackEmpty
	}

	return c.State.Validate()
}

// HasMedia reports whether the card carries at least one non-empty media URL.
func (c *Card) HasMedia() bool {
	return c.PrimaryMedia() != ""
}

// PrimaryMedia returns the first non-empty media URL, or "" if there is none.
func (c *Card) PrimaryMedia() string {
	for _, u := range c.MediaURLs {
		if strings.TrimSpace(u) != "" {
			return u
		}
	}
	return ""
}

// ApplyState replaces the card's memory state and bumps UpdatedAt.
func (c *Card) ApplyState(state MemoryState, now time.Time) {
	c.State = state
	c.UpdatedAt = now.UTC()
}
