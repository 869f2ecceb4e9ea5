package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error types to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors; a foreign card is indistinguishable from a missing one
	case errors.Is(err, card_review.ErrCardNotOwned),
		errors.Is(err, card_review.ErrCardNotFound),
		errors.Is(err, card_review.ErrDeckNotFound),
		errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, card_review.ErrInvalidAnswer),
		errors.Is(err, card_review.ErrInvalidDays),
		errors.Is(err, domain.ErrCardSuspended),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrInvalidQuizMode),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Not enough material to satisfy the request
	case errors.Is(err, service.ErrNotEnoughCards):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes the underlying error text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization required"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"
	case errors.Is(err, domain.ErrUnauthorized):
		return "User ID not found or invalid"

	case errors.Is(err, card_review.ErrCardNotOwned),
		errors.Is(err, card_review.ErrCardNotFound),
		errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, card_review.ErrDeckNotFound),
		errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, card_review.ErrInvalidAnswer), errors.Is(err, domain.ErrInvalidRating):
		return "Invalid rating"
	case errors.Is(err, card_review.ErrInvalidDays):
		return "Days must be at least 1"
	case errors.Is(err, domain.ErrCardSuspended):
		return "Card is suspended"
	case errors.Is(err, service.ErrInvalidQuizMode):
		return "Invalid quiz mode"
	case errors.Is(err, service.ErrNotEnoughCards):
		return "Not enough illustrated cards for a quiz"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"
	case errors.As(err, &verrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the mapped status and a safe message for err.
// A non-empty message overrides the default safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	// Access to another user's card is logged as a warning
	if errors.Is(err, card_review.ErrCardNotOwned) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
