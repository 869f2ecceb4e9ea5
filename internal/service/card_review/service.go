package card_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// ReviewAnswer represents a user's rating of a flashcard.
type ReviewAnswer struct {
	Rating domain.Rating `json:"rating"`
}

// QueueResult is today's study session for a deck.
type QueueResult struct {
	DeckID   uuid.UUID           `json:"deck_id"`
	New      []domain.Card       `json:"new"`
	Learning []domain.Card       `json:"learning"`
	Due      []domain.Card       `json:"due"`
	Counters domain.DeckCounters `json:"stats"`
}

// Len returns the number of cards in the session.
func (r *QueueResult) Len() int {
	return len(r.New) + len(r.Learning) + len(r.Due)
}

// ReviewResult is the outcome of a rating.
type ReviewResult struct {
	Card     *domain.Card       `json:"card"`
	Previous domain.MemoryState `json:"previous_state"`
	Log      *domain.ReviewLog  `json:"review_log"`
}

// CardReviewService runs the review workflow around the scheduler and the queue selector.
type CardReviewService interface {
	// GetQueue selects today's session for a deck owned by userID.
	//
	// Returns:
	//   - ErrDeckNotFound if the deck does not exist or belongs to someone else
	GetQueue(ctx context.Context, userID, deckID uuid.UUID) (*QueueResult, error)

	// SubmitAnswer applies a rating to a card and records it in the review log.
	//
	// The card row is locked for the duration of the transaction, so
	// concurrent ratings of the same card are applied one after the other.
	//
	// Returns:
	//   - ErrInvalidAnswer when the rating is outside the closed set
	//   - ErrCardNotFound when the card does not exist
	//   - ErrCardNotOwned when the card's deck belongs to another user
	//   - ErrCardSuspended when the card is suspended
	SubmitAnswer(ctx context.Context, userID, cardID uuid.UUID, answer ReviewAnswer) (*ReviewResult, error)

	// PreviewIntervals reports the interval each rating would schedule for a card.
	PreviewIntervals(ctx context.Context, userID, cardID uuid.UUID) (map[domain.Rating]int, error)

	// PostponeCard pushes a card's due date forward by whole days.
	//
	// Returns ErrInvalidDays when days < 1.
	PostponeCard(ctx context.Context, userID, cardID uuid.UUID, days int) (*domain.Card, error)
}

// Common error types for CardReviewService
var (
	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrDeckNotFound indicates that the deck does not exist or is not visible to the user.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrCardNotOwned indicates that the user does not own the card's deck.
	ErrCardNotOwned = errors.New("unauthorized access: card not owned by user")

	// ErrInvalidAnswer indicates an invalid rating was provided.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrCardSuspended indicates that a suspended card was rated.
	ErrCardSuspended = domain.ErrCardSuspended

	// ErrInvalidDays indicates a postpone request for fewer than one day.
	ErrInvalidDays = errors.New("invalid postpone days")
)

// ServiceError wraps errors from the card review service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "get_queue", "submit_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitAnswerError returns a new ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_answer", Message: message, Err: err}
}

// NewGetQueueError returns a new ServiceError for the get_queue operation.
func NewGetQueueError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "get_queue", Message: message, Err: err}
}

// NewPreviewError returns a new ServiceError for the preview_intervals operation.
func NewPreviewError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "preview_intervals", Message: message, Err: err}
}

// NewPostponeError returns a new ServiceError for the postpone_card operation.
func NewPostponeError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "postpone_card", Message: message, Err: err}
}
