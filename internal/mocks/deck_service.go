package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain/queue"
	"github.com/phrazzld/flashdeck/internal/domain/quiz"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MockDeckService implements service.DeckService for testing
type MockDeckService struct {
	GetStatsFn     func(ctx context.Context, userID, deckID uuid.UUID) (queue.DeckStats, error)
	ResetDeckFn    func(ctx context.Context, userID, deckID uuid.UUID) (int64, error)
	GenerateQuizFn func(ctx context.Context, userID, deckID uuid.UUID, opts quiz.Options) (*service.QuizResult, error)

	// Default response values
	Stats     queue.DeckStats
	Reset     int64
	Quiz      *service.QuizResult
	Err       error

	GetStatsCalls     callLog
	ResetDeckCalls    callLog
	GenerateQuizCalls callLog
}

var _ service.DeckService = (*MockDeckService)(nil)

// GetStats implements the service.DeckService interface
func (m *MockDeckService) GetStats(ctx context.Context, userID, deckID uuid.UUID) (queue.DeckStats, error) {
	m.GetStatsCalls.record(Call{UserID: userID, TargetID: deckID})
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx, userID, deckID)
	}
	return m.Stats, m.Err
}

// ResetDeck implements the service.DeckService interface
func (m *MockDeckService) ResetDeck(ctx context.Context, userID, deckID uuid.UUID) (int64, error) {
	m.ResetDeckCalls.record(Call{UserID: userID, TargetID: deckID})
	if m.ResetDeckFn != nil {
		return m.ResetDeckFn(ctx, userID, deckID)
	}
	return m.Reset, m.Err
}

// GenerateQuiz implements the service.DeckService interface
func (m *MockDeckService) GenerateQuiz(
	ctx context.Context,
	userID, deckID uuid.UUID,
	opts quiz.Options,
) (*service.QuizResult, error) {
	m.GenerateQuizCalls.record(Call{UserID: userID, TargetID: deckID, Arg: opts})
	if m.GenerateQuizFn != nil {
		return m.GenerateQuizFn(ctx, userID, deckID, opts)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Quiz == nil {
		return &service.QuizResult{}, nil
	}
	return m.Quiz, nil
}
