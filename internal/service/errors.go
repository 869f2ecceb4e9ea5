package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/flashdeck/internal/domain/quiz"
)

// Common service errors. Callers check them with errors.Is; the API layer maps
// them to status codes.
var (
	// ErrDeckNotFound indicates the deck does not exist or is owned by another user.
	// API layer should map this to HTTP 404 Not Found.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrNotEnoughCards indicates the deck has too few illustrated, active cards for a quiz.
	ErrNotEnoughCards = quiz.ErrNotEnoughCards

	// ErrInvalidQuizMode indicates an unknown quiz mode.
	ErrInvalidQuizMode = quiz.ErrInvalidMode
)

// DeckServiceError is a custom error type for deck service errors.
type DeckServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for DeckServiceError.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a new DeckServiceError.
func NewDeckServiceError(operation, message string, err error) *DeckServiceError {
	return &DeckServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
