package domain

import "errors"

var (
	// ErrValidation marks input rejected by a domain rule.
	ErrValidation = errors.New("validation failed")

	ErrInvalidID     = errors.New("invalid ID")
	ErrInvalidRating = errors.New("invalid rating")

	// ErrCardSuspended is returned when a suspended card is rated or postponed.
	ErrCardSuspended = errors.New("card is suspended")

	ErrUnauthorized = errors.New("unauthorized operation")
)
