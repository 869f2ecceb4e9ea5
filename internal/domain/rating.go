package domain

import (
	"fmt"
	"strings"
)

// Rating is a learner's self-assessment of recall for a card just reviewed.
// The set of values is closed; untrusted input must go through ParseRating.
type Rating string

// Possible rating values. These are also the wire literals.
const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// Ratings lists every rating in ascending order of recall quality.
var Ratings = [...]Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}

// SM-2 quality scores for each rating.
const (
	QualityAgain = 0
	QualityHard  = 3
	QualityGood  = 4
	QualityEasy  = 5

	// PassingQuality is the lowest quality that counts as a successful recall.
	PassingQuality = 3
)

// ParseRating converts a raw string into a Rating.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseRating(s string) (Rating, error) {
	r := Rating(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

// Valid reports whether r is one of the four known ratings.
func (r Rating) Valid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}

// Quality maps the rating onto the 0-5 SM-2 quality scale.
// Callers are expected to hold a valid rating; anything else maps to a failure.
func (r Rating) Quality() int {
	switch r {
	case RatingHard:
		return QualityHard
	case RatingGood:
		return QualityGood
	case RatingEasy:
		return QualityEasy
	default:
		return QualityAgain
	}
}

// IsLapse reports whether the rating represents a failed recall.
func (r Rating) IsLapse() bool {
	return r.Quality() < PassingQuality
}

// String implements fmt.Stringer.
func (r Rating) String() string {
	return string(r)
}
