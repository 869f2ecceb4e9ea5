package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLog records a single rating. The set of logs for a deck is the source
// from which today's review count is reconstructed.
type ReviewLog struct {
	ID                uuid.UUID `json:"id"`
	CardID            uuid.UUID `json:"card_id"`
	DeckID            uuid.UUID `json:"deck_id"`
	UserID            uuid.UUID `json:"user_id"`
	Rating            Rating    `json:"rating"`
	ScheduledInterval int       `json:"scheduled_interval"`
	NewEaseFactor     float64   `json:"new_ease_factor"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewReviewLog builds the log entry for a rating that produced next.
func NewReviewLog(card *Card, userID uuid.UUID, rating Rating, next MemoryState, now time.Time) *ReviewLog {
	return &ReviewLog{
		ID:                uuid.New(),
		CardID:            card.ID,
		DeckID:            card.DeckID,
		UserID:            userID,
		Rating:            rating,
		ScheduledInterval: next.Interval,
		NewEaseFactor:     next.EaseFactor,
		CreatedAt:         now.UTC(),
	}
}
