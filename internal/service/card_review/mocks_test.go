package card_review

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCardRepository mocks CardRepository; WithTx returns the same mock.
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	card, _ := args.Get(0).(*domain.Card)
	return card, args.Error(1)
}

func (m *MockCardRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	card, _ := args.Get(0).(*domain.Card)
	return card, args.Error(1)
}

func (m *MockCardRepository) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	args := m.Called(ctx, deckID)
	cards, _ := args.Get(0).([]domain.Card)
	return cards, args.Error(1)
}

func (m *MockCardRepository) UpdateState(
	ctx context.Context,
	id uuid.UUID,
	state domain.MemoryState,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, id, state, updatedAt)
	return args.Error(0)
}

func (m *MockCardRepository) WithTx(*sql.Tx) CardRepository {
	return m
}

// MockDeckRepository mocks DeckRepository.
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id, userID)
	deck, _ := args.Get(0).(*domain.Deck)
	return deck, args.Error(1)
}

func (m *MockDeckRepository) WithTx(*sql.Tx) DeckRepository {
	return m
}

// MockReviewLogRepository mocks ReviewLogRepository.
type MockReviewLogRepository struct {
	mock.Mock
}

func (m *MockReviewLogRepository) Create(ctx context.Context, log *domain.ReviewLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockReviewLogRepository) CountSince(
	ctx context.Context,
	deckID, userID uuid.UUID,
	since time.Time,
) (int, error) {
	args := m.Called(ctx, deckID, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewLogRepository) WithTx(*sql.Tx) ReviewLogRepository {
	return m
}

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.Event
}

func (r *recordingEmitter) EmitEvent(_ context.Context, event *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEmitter) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// testFixture wires the service to mocks and a sqlmock database.
type testFixture struct {
	service CardReviewService
	cards   *MockCardRepository
	decks   *MockDeckRepository
	logs    *MockReviewLogRepository
	sql     sqlmock.Sqlmock
	emitter *recordingEmitter
	now     time.Time
	userID  uuid.UUID
	deck    *domain.Deck
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)
	userID := uuid.New()
	deck, err := domain.NewDeck(userID, "Geography", "", now.AddDate(0, -1, 0))
	require.NoError(t, err)

	f := &testFixture{
		cards:   &MockCardRepository{},
		decks:   &MockDeckRepository{},
		logs:    &MockReviewLogRepository{},
		sql:     sqlMock,
		emitter: &recordingEmitter{},
		now:     now,
		userID:  userID,
		deck:    deck,
	}

	f.service = NewCardReviewService(
		db,
		f.cards,
		f.decks,
		f.logs,
		srsServiceForTests(),
		nil,
		WithClock(func() time.Time { return now }),
		WithEventEmitter(f.emitter),
	)

	return f
}

func (f *testFixture) assertExpectations(t *testing.T) {
	t.Helper()

	f.cards.AssertExpectations(t)
	f.decks.AssertExpectations(t)
	f.logs.AssertExpectations(t)
	require.NoError(t, f.sql.ExpectationsWereMet())
}

func (f *testFixture) card(t *testing.T, state domain.MemoryState) *domain.Card {
	t.Helper()

	card, err := domain.NewCard(f.deck.ID, "Capital of France", "Paris", f.now.AddDate(0, 0, -30))
	require.NoError(t, err)
	card.State = state
	return card
}
