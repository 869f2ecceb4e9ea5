package srs

import (
	"math"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease update for a rating.
//
// A lapse subtracts params.LapseEasePenalty. A successful recall adds
//
//	0.1 - (5-q) * (0.08 + (5-q) * 0.02)
//
// which is +0.1 for easy, 0 for good and -0.14 for hard. The result never
// drops below params.MinEaseFactor.
func calculateNewEaseFactor(currentEF float64, rating domain.Rating, params *Params) float64 {
	var newEF float64
	if rating.IsLapse() {
		newEF = currentEF - params.LapseEasePenalty
	} else {
		miss := float64(domain.QualityEasy - rating.Quality())
		newEF = currentEF + 0.1 - miss*(0.08+miss*0.02)
	}

	return math.Max(params.MinEaseFactor, newEF)
}

// calculateNewInterval determines the next interval in days.
//
// The interval grows from the pre-review ease factor:
//   - lapse: params.LapseInterval
//   - first success after a new card or a lapse: params.FirstInterval
//   - second success: params.SecondInterval
//   - later successes: round(interval * (easeFactor * modifier)), at least one day
func calculateNewInterval(
	currentInterval int,
	repetitions int,
	easeFactor float64,
	rating domain.Rating,
	params *Params,
) int {
	if rating.IsLapse() {
		return params.LapseInterval
	}

	switch repetitions {
	case 0:
		return params.FirstInterval
	case 1:
		return params.SecondInterval
	}

	// The multiplier is formed before scaling the interval; the other
	// association rounds differently at exact halves (50 days, EF 1.9, easy).
	multiplier := easeFactor * params.IntervalModifier[rating]
	next := int(math.Round(float64(currentInterval) * multiplier))
	if next < 1 {
		next = 1
	}
	return next
}

// calculateNextState returns the memory state that results from rating a card at now.
//
// The input is never modified. The suspension flag is carried over unchanged and the
// due time keeps the wall-clock time of day of now.
func calculateNextState(
	state domain.MemoryState,
	rating domain.Rating,
	now time.Time,
	params *Params,
) domain.MemoryState {
	next := state

	next.Interval = calculateNewInterval(state.Interval, state.Repetitions, state.EaseFactor, rating, params)
	next.EaseFactor = calculateNewEaseFactor(state.EaseFactor, rating, params)

	if rating.IsLapse() {
		next.Repetitions = 0
		next.LapseCount = state.LapseCount + 1
	} else {
		next.Repetitions = state.Repetitions + 1
	}

	next.DueAt = now.AddDate(0, 0, next.Interval)
	next.LastReviewedAt = now

	return next
}
