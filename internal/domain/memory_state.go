package domain

import (
	"fmt"
	"time"
)

// Defaults applied to a freshly created card.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// MemoryState validation errors
var (
	ErrEaseFactorBelowFloor = fmt.Errorf("%w: ease factor must be at least 1.3", ErrValidation)
	ErrNegativeInterval     = fmt.Errorf("%w: interval must be greater than or equal to 0", ErrValidation)
	ErrNegativeRepetitions  = fmt.Errorf("%w: repetitions must be greater than or equal to 0", ErrValidation)
	ErrNegativeLapseCount   = fmt.Errorf("%w: lapse count must be greater than or equal to 0", ErrValidation)
	ErrEmptyDueAt           = fmt.Errorf("%w: due time cannot be empty", ErrValidation)
)

// MemoryState is the per-card spaced repetition state.
// It is replaced wholesale by the scheduler after every rating; nothing else mutates it
// apart from a deck reset or a suspension toggle.
type MemoryState struct {
	EaseFactor     float64   `json:"ease_factor"`      // Growth rate of the interval, never below 1.3
	Interval       int       `json:"interval"`         // Days until the next review
	Repetitions    int       `json:"repetitions"`      // Consecutive successes since the last lapse
	DueAt          time.Time `json:"due_at"`           // When the card re-enters the due set
	LapseCount     int       `json:"lapse_count"`      // Cumulative failures, never reset by reviews
	Suspended      bool      `json:"suspended"`        // Suspended cards are excluded from every queue
	LastReviewedAt time.Time `json:"last_reviewed_at"` // Zero when the card has never been reviewed
}

// NewMemoryState returns the state of a card created at now.
// New cards are due immediately.
func NewMemoryState(now time.Time) MemoryState {
	return MemoryState{
		EaseFactor:  DefaultEaseFactor,
		Interval:    0,
		Repetitions: 0,
		DueAt:       now,
		LapseCount:  0,
		Suspended:   false,
	}
}

// Validate checks the memory state invariants.
func (s MemoryState) Validate() error {
	if s.EaseFactor < MinEaseFactor {
		return ErrEaseFactorBelowFloor
	}

	if s.Interval < 0 {
		return ErrNegativeInterval
	}

	if s.Repetitions < 0 {
		return ErrNegativeRepetitions
	}

	if s.LapseCount < 0 {
		return ErrNegativeLapseCount
	}

	if s.DueAt.IsZero() {
		return ErrEmptyDueAt
	}

	return nil
}

// Reviewed reports whether the card has ever been rated.
func (s MemoryState) Reviewed() bool {
	return !s.LastReviewedAt.IsZero()
}

// Active reports whether the card takes part in study sessions and quizzes.
func (s MemoryState) Active() bool {
	return !s.Suspended
}

// IsDue reports whether the card's scheduled time has arrived at now.
func (s MemoryState) IsDue(now time.Time) bool {
	return !s.DueAt.After(now)
}

// IsNew reports whether the card has never been reviewed.
func (s MemoryState) IsNew() bool {
	return s.Repetitions == 0 && !s.Reviewed()
}

// IsLearning reports whether the card lapsed and has not been recalled since.
func (s MemoryState) IsLearning() bool {
	return s.Repetitions == 0 && s.Reviewed()
}
