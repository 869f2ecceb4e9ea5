package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Common errors
var (
	ErrInvalidRating = domain.ErrInvalidRating
	ErrInvalidDays   = errors.New("postpone days must be at least 1")
)

// Service defines the interface for SRS algorithm operations.
// Implementations are pure: they read time only through the now argument.
type Service interface {
	// CalculateNextReview computes the memory state after a rating
	CalculateNextReview(
		state domain.MemoryState,
		rating domain.Rating,
		now time.Time,
	) (domain.MemoryState, error)

	// PreviewIntervals reports the interval in days each rating would produce
	PreviewIntervals(state domain.MemoryState, now time.Time) map[domain.Rating]int

	// PostponeReview pushes the due time forward by a number of whole days
	PostponeReview(
		state domain.MemoryState,
		days int,
		now time.Time,
	) (domain.MemoryState, error)

	// InitialState returns the memory state of a card created at now
	InitialState(now time.Time) domain.MemoryState
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: params cannot be nil", ErrInvalidParams)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &defaultService{
		params: params,
	}, nil
}

// CalculateNextReview implements the Service interface for calculating the next state
func (s *defaultService) CalculateNextReview(
	state domain.MemoryState,
	rating domain.Rating,
	now time.Time,
) (domain.MemoryState, error) {
	if !rating.Valid() {
		return domain.MemoryState{}, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}

	return calculateNextState(state, rating, now, s.params), nil
}

// PreviewIntervals implements the Service interface
func (s *defaultService) PreviewIntervals(state domain.MemoryState, now time.Time) map[domain.Rating]int {
	preview := make(map[domain.Rating]int, len(domain.Ratings))
	for _, r := range domain.Ratings {
		preview[r] = calculateNextState(state, r, now, s.params).Interval
	}
	return preview
}

// PostponeReview implements the Service interface for postponing reviews.
// Days are added to the later of the current due time and now, so a postponed
// card never lands in the past.
func (s *defaultService) PostponeReview(
	state domain.MemoryState,
	days int,
	now time.Time,
) (domain.MemoryState, error) {
	if days < 1 {
		return domain.MemoryState{}, ErrInvalidDays
	}

	next := state
	base := state.DueAt
	if base.Before(now) {
		base = now
	}
	next.DueAt = base.AddDate(0, 0, days)

	return next, nil
}

// InitialState implements the Service interface
func (s *defaultService) InitialState(now time.Time) domain.MemoryState {
	state := domain.NewMemoryState(now)
	state.EaseFactor = s.params.InitialEaseFactor
	return state
}
