package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
)

// Call records the identifiers and extra argument of one mocked call.
type Call struct {
	UserID   uuid.UUID
	TargetID uuid.UUID
	Arg      any
}

// callLog is a concurrency-safe list of calls.
type callLog struct {
	mu    sync.Mutex
	calls []Call
}

func (l *callLog) record(c Call) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, c)
}

// All returns a copy of the recorded calls.
func (l *callLog) All() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Call(nil), l.calls...)
}

// Count returns the number of recorded calls.
func (l *callLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

// MockCardReviewService implements card_review.CardReviewService for testing
type MockCardReviewService struct {
	GetQueueFn         func(ctx context.Context, userID, deckID uuid.UUID) (*card_review.QueueResult, error)
	SubmitAnswerFn     func(ctx context.Context, userID, cardID uuid.UUID, answer card_review.ReviewAnswer) (*card_review.ReviewResult, error)
	PreviewIntervalsFn func(ctx context.Context, userID, cardID uuid.UUID) (map[domain.Rating]int, error)
	PostponeCardFn     func(ctx context.Context, userID, cardID uuid.UUID, days int) (*domain.Card, error)

	// Default response values
	Queue     *card_review.QueueResult
	Review    *card_review.ReviewResult
	Intervals map[domain.Rating]int
	Card      *domain.Card
	Err       error

	GetQueueCalls         callLog
	SubmitAnswerCalls     callLog
	PreviewIntervalsCalls callLog
	PostponeCardCalls     callLog
}

var _ card_review.CardReviewService = (*MockCardReviewService)(nil)

// GetQueue implements the card_review.CardReviewService interface
func (m *MockCardReviewService) GetQueue(ctx context.Context, userID, deckID uuid.UUID) (*card_review.QueueResult, error) {
	m.GetQueueCalls.record(Call{UserID: userID, TargetID: deckID})
	if m.GetQueueFn != nil {
		return m.GetQueueFn(ctx, userID, deckID)
	}
	return m.Queue, m.Err
}

// SubmitAnswer implements the card_review.CardReviewService interface
func (m *MockCardReviewService) SubmitAnswer(
	ctx context.Context,
	userID, cardID uuid.UUID,
	answer card_review.ReviewAnswer,
) (*card_review.ReviewResult, error) {
	m.SubmitAnswerCalls.record(Call{UserID: userID, TargetID: cardID, Arg: answer})
	if m.SubmitAnswerFn != nil {
		return m.SubmitAnswerFn(ctx, userID, cardID, answer)
	}
	return m.Review, m.Err
}

// PreviewIntervals implements the card_review.CardReviewService interface
func (m *MockCardReviewService) PreviewIntervals(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (map[domain.Rating]int, error) {
	m.PreviewIntervalsCalls.record(Call{UserID: userID, TargetID: cardID})
	if m.PreviewIntervalsFn != nil {
		return m.PreviewIntervalsFn(ctx, userID, cardID)
	}
	return m.Intervals, m.Err
}

// PostponeCard implements the card_review.CardReviewService interface
func (m *MockCardReviewService) PostponeCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	days int,
) (*domain.Card, error) {
	m.PostponeCardCalls.record(Call{UserID: userID, TargetID: cardID, Arg: days})
	if m.PostponeCardFn != nil {
		return m.PostponeCardFn(ctx, userID, cardID, days)
	}
	return m.Card, m.Err
}

// NewMockCardReviewServiceWithError returns a mock whose every method fails with err.
func NewMockCardReviewServiceWithError(err error) *MockCardReviewService {
	return &MockCardReviewService{Err: err}
}
