package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypeReviewSubmitted = "review_submitted"
	TypeCardPostponed   = "card_postponed"
	TypeDeckReset       = "deck_reset"
	TypeQuizGenerated   = "quiz_generated"
	TypeQueueServed     = "queue_served"
)

// Event is a notification that something happened in the review workflow.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload holds the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is when the underlying change happened
	CreatedAt time.Time `json:"created_at"`
}

// ReviewSubmitted is the payload of TypeReviewSubmitted.
type ReviewSubmitted struct {
	CardID       uuid.UUID `json:"card_id"`
	DeckID       uuid.UUID `json:"deck_id"`
	UserID       uuid.UUID `json:"user_id"`
	Rating       string    `json:"rating"`
	Lapse        bool      `json:"lapse"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	DueAt        time.Time `json:"due_at"`
}

// CardPostponed is the payload of TypeCardPostponed.
type CardPostponed struct {
	CardID uuid.UUID `json:"card_id"`
	UserID uuid.UUID `json:"user_id"`
	Days   int       `json:"days"`
	DueAt  time.Time `json:"due_at"`
}

// DeckReset is the payload of TypeDeckReset.
type DeckReset struct {
	DeckID uuid.UUID `json:"deck_id"`
	UserID uuid.UUID `json:"user_id"`
	Cards  int64     `json:"cards"`
}

// QuizGenerated is the payload of TypeQuizGenerated.
type QuizGenerated struct {
	DeckID uuid.UUID      `json:"deck_id"`
	UserID uuid.UUID      `json:"user_id"`
	Modes  map[string]int `json:"modes"`
}

// QueueServed is the payload of TypeQueueServed.
type QueueServed struct {
	DeckID   uuid.UUID `json:"deck_id"`
	UserID   uuid.UUID `json:"user_id"`
	New      int       `json:"new"`
	Learning int       `json:"learning"`
	Due      int       `json:"due"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event of the given type, stamped with at.
func NewEvent(eventType string, payload any, at time.Time) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: at,
	}, nil
}

// EventHandler processes events delivered by an emitter.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}
