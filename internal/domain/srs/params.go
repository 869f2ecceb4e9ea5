package srs

import (
	"errors"
	"fmt"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// ErrInvalidParams is returned when a parameter set would break the scheduling invariants.
var ErrInvalidParams = errors.New("invalid SRS parameters")

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// Core limits
	MinEaseFactor     float64
	InitialEaseFactor float64

	// Lapse handling
	LapseEasePenalty float64
	LapseInterval    int

	// Bootstrap intervals for the first two successful recalls
	FirstInterval  int
	SecondInterval int

	// Multipliers applied on top of the ease factor from the third success on
	IntervalModifier map[domain.Rating]float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the default.
type ParamsConfig struct {
	MinEaseFactor     float64
	InitialEaseFactor float64

	LapseEasePenalty float64
	LapseInterval    int

	FirstInterval  int
	SecondInterval int

	HardIntervalModifier float64
	GoodIntervalModifier float64
	EasyIntervalModifier float64
}

// NewDefaultParams creates a new Params instance with the classic SM-2 values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:     domain.MinEaseFactor,
		InitialEaseFactor: domain.DefaultEaseFactor,

		LapseEasePenalty: 0.8,
		LapseInterval:    1,

		FirstInterval:  1,
		SecondInterval: 6,

		IntervalModifier: map[domain.Rating]float64{
			domain.RatingHard: 0.8, // 20% shorter
			domain.RatingGood: 1.0,
			domain.RatingEasy: 1.3, // 30% longer
		},
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.InitialEaseFactor > 0 {
		params.InitialEaseFactor = config.InitialEaseFactor
	}

	if config.LapseEasePenalty > 0 {
		params.LapseEasePenalty = config.LapseEasePenalty
	}
	if config.LapseInterval > 0 {
		params.LapseInterval = config.LapseInterval
	}

	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	if config.HardIntervalModifier > 0 {
		params.IntervalModifier[domain.RatingHard] = config.HardIntervalModifier
	}
	if config.GoodIntervalModifier > 0 {
		params.IntervalModifier[domain.RatingGood] = config.GoodIntervalModifier
	}
	if config.EasyIntervalModifier > 0 {
		params.IntervalModifier[domain.RatingEasy] = config.EasyIntervalModifier
	}

	return params
}

// Validate checks that the parameters keep ease factors and intervals in range.
func (p *Params) Validate() error {
	if p.MinEaseFactor < domain.MinEaseFactor {
		return fmt.Errorf("%w: min ease factor %.2f is below %.2f",
			ErrInvalidParams, p.MinEaseFactor, domain.MinEaseFactor)
	}
	if p.InitialEaseFactor < p.MinEaseFactor {
		return fmt.Errorf("%w: initial ease factor %.2f is below the minimum %.2f",
			ErrInvalidParams, p.InitialEaseFactor, p.MinEaseFactor)
	}
	if p.LapseEasePenalty < 0 {
		return fmt.Errorf("%w: lapse ease penalty must not be negative", ErrInvalidParams)
	}
	if p.LapseInterval < 1 || p.FirstInterval < 1 || p.SecondInterval < 1 {
		return fmt.Errorf("%w: bootstrap intervals must be at least one day", ErrInvalidParams)
	}
	for _, r := range []domain.Rating{domain.RatingHard, domain.RatingGood, domain.RatingEasy} {
		if p.IntervalModifier[r] <= 0 {
			return fmt.Errorf("%w: interval modifier for %s must be positive", ErrInvalidParams, r)
		}
	}
	return nil
}
