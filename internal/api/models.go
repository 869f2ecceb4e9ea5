package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/queue"
	"github.com/phrazzld/flashdeck/internal/domain/quiz"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
)

// SubmitAnswerRequest is the body of POST /cards/{id}/answer.
type SubmitAnswerRequest struct {
	Rating string `json:"rating" validate:"required,oneof=again hard good easy"`
}

// PostponeRequest is the body of POST /cards/{id}/postpone.
type PostponeRequest struct {
	Days int `json:"days" validate:"required,min=1,max=3650"`
}

// MemoryStateResponse is the wire form of a card's scheduling state.
type MemoryStateResponse struct {
	EaseFactor     float64    `json:"ease_factor"`
	Interval       int        `json:"interval"`
	Repetitions    int        `json:"repetitions"`
	DueAt          time.Time  `json:"due_at"`
	LapseCount     int        `json:"lapse_count"`
	Suspended      bool       `json:"suspended"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// CardResponse is the wire form of a card.
type CardResponse struct {
	ID        uuid.UUID           `json:"id"`
	DeckID    uuid.UUID           `json:"deck_id"`
	Front     string              `json:"front"`
	Back      string              `json:"back"`
	Tags      []string            `json:"tags"`
	MediaURLs []string            `json:"media_urls"`
	State     MemoryStateResponse `json:"state"`
}

// ReviewResponse is returned after a rating.
type ReviewResponse struct {
	Card         CardResponse `json:"card"`
	Rating       string       `json:"rating"`
	IntervalDays int          `json:"interval_days"`
	NextReviewAt time.Time    `json:"next_review_at"`
	Lapse        bool         `json:"lapse"`
}

// QueueStatsResponse carries the counters the queue was selected with.
type QueueStatsResponse struct {
	ReviewsDoneToday int `json:"reviews_done_today"`
	DailyReviewLimit int `json:"daily_review_limit"`
	DailyNewLimit    int `json:"daily_new_limit"`
}

// QueueResponse is today's session for a deck, in study order.
type QueueResponse struct {
	DeckID   uuid.UUID          `json:"deck_id"`
	New      []CardResponse     `json:"new"`
	Learning []CardResponse     `json:"learning"`
	Due      []CardResponse     `json:"due"`
	Total    int                `json:"total"`
	Stats    QueueStatsResponse `json:"stats"`
}

// PreviewResponse maps each rating to the interval in days it would schedule.
type PreviewResponse struct {
	CardID    uuid.UUID      `json:"card_id"`
	Intervals map[string]int `json:"intervals"`
}

// StatsResponse is the per-partition card count of a deck.
type StatsResponse struct {
	DeckID uuid.UUID `json:"deck_id"`
	queue.DeckStats
}

// ResetResponse reports how many cards a reset touched.
type ResetResponse struct {
	DeckID     uuid.UUID `json:"deck_id"`
	CardsReset int64     `json:"cards_reset"`
}

// QuizResponse is a generated quiz. TotalCards counts the illustrated,
// active cards the questions were drawn from.
type QuizResponse struct {
	DeckID     uuid.UUID       `json:"deck_id"`
	Questions  []quiz.Question `json:"questions"`
	TotalCards int             `json:"total_cards"`
}

func stateToResponse(s domain.MemoryState) MemoryStateResponse {
	resp := MemoryStateResponse{
		EaseFactor:  s.EaseFactor,
		Interval:    s.Interval,
		Repetitions: s.Repetitions,
		DueAt:       s.DueAt,
		LapseCount:  s.LapseCount,
		Suspended:   s.Suspended,
	}
	if s.Reviewed() {
		at := s.LastReviewedAt
		resp.LastReviewedAt = &at
	}
	return resp
}

func cardToResponse(c *domain.Card) CardResponse {
	return CardResponse{
		ID:        c.ID,
		DeckID:    c.DeckID,
		Front:     c.Front,
		Back:      c.Back,
		Tags:      nonNil(c.Tags),
		MediaURLs: nonNil(c.MediaURLs),
		State:     stateToResponse(c.State),
	}
}

func cardsToResponse(cards []domain.Card) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i := range cards {
		out[i] = cardToResponse(&cards[i])
	}
	return out
}

func reviewToResponse(result *card_review.ReviewResult) ReviewResponse {
	return ReviewResponse{
		Card:         cardToResponse(result.Card),
		Rating:       string(result.Log.Rating),
		IntervalDays: result.Card.State.Interval,
		NextReviewAt: result.Card.State.DueAt,
		Lapse:        result.Log.Rating == domain.RatingAgain,
	}
}

func queueToResponse(result *card_review.QueueResult) QueueResponse {
	return QueueResponse{
		DeckID:   result.DeckID,
		New:      cardsToResponse(result.New),
		Learning: cardsToResponse(result.Learning),
		Due:      cardsToResponse(result.Due),
		Total:    result.Len(),
		Stats: QueueStatsResponse{
			ReviewsDoneToday: result.Counters.ReviewsDoneToday,
			DailyReviewLimit: result.Counters.DailyReviewLimit,
			DailyNewLimit:    result.Counters.DailyNewLimit,
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
