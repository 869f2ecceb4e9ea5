package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/queue"
	"github.com/phrazzld/flashdeck/internal/domain/quiz"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/store"
)

// DeckService provides deck-level operations.
type DeckService interface {
	// GetStats counts a deck's cards per partition as of now.
	GetStats(ctx context.Context, userID, deckID uuid.UUID) (queue.DeckStats, error)

	// ResetDeck returns every card of the deck to the scheduler's initial
	// memory state, clearing suspensions, and reports how many cards were reset.
	ResetDeck(ctx context.Context, userID, deckID uuid.UUID) (int64, error)

	// GenerateQuiz builds quiz questions from the deck's illustrated, active cards.
	// A requested count above the configured maximum is clamped.
	GenerateQuiz(ctx context.Context, userID, deckID uuid.UUID, opts quiz.Options) (*QuizResult, error)
}

// QuizResult is a generated quiz and the size of the pool it was drawn from.
type QuizResult struct {
	Questions  []quiz.Question
	TotalCards int
}

// DeckOption configures a DeckService.
type DeckOption func(*deckServiceImpl)

// WithDeckClock replaces time.Now.
func WithDeckClock(now func() time.Time) DeckOption {
	return func(s *deckServiceImpl) { s.now = now }
}

// WithRandSource supplies the random generator used for each quiz.
// The default seeds a fresh generator from the clock per call.
func WithRandSource(newRand func() *rand.Rand) DeckOption {
	return func(s *deckServiceImpl) { s.newRand = newRand }
}

// WithDefaultQuizCount sets the question count used when a request names none.
func WithDefaultQuizCount(n int) DeckOption {
	return func(s *deckServiceImpl) { s.defaultQuizCount = n }
}

// WithMaxQuizCount caps the number of questions a single quiz may contain.
func WithMaxQuizCount(n int) DeckOption {
	return func(s *deckServiceImpl) { s.maxQuizCount = n }
}

// WithSRSService supplies the scheduler whose initial state a reset restores.
func WithSRSService(srsService srs.Service) DeckOption {
	return func(s *deckServiceImpl) { s.srsService = srsService }
}

// WithDeckEventEmitter publishes deck events.
func WithDeckEventEmitter(emitter events.EventEmitter) DeckOption {
	return func(s *deckServiceImpl) { s.emitter = emitter }
}

type deckServiceImpl struct {
	deckStore        store.DeckStore
	cardStore        store.CardStore
	srsService       srs.Service
	emitter          events.EventEmitter
	now              func() time.Time
	newRand          func() *rand.Rand
	defaultQuizCount int
	maxQuizCount     int
	logger           *slog.Logger
}

var _ DeckService = (*deckServiceImpl)(nil)

// NewDeckService creates a DeckService over the given stores.
func NewDeckService(
	deckStore store.DeckStore,
	cardStore store.CardStore,
	logger *slog.Logger,
	opts ...DeckOption,
) DeckService {
	if deckStore == nil {
		panic("deckStore cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &deckServiceImpl{
		deckStore:  deckStore,
		cardStore:  cardStore,
		srsService: srs.NewDefaultService(),
		now:        time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		logger: logger.With(slog.String("component", "deck_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *deckServiceImpl) ownedDeck(ctx context.Context, op string, userID, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckStore.GetOwned(ctx, deckID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, NewDeckServiceError(op, "failed to load deck", err)
	}
	return deck, nil
}

// GetStats implements DeckService.GetStats.
func (s *deckServiceImpl) GetStats(ctx context.Context, userID, deckID uuid.UUID) (queue.DeckStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.ownedDeck(ctx, "get_stats", userID, deckID); err != nil {
		return queue.DeckStats{}, err
	}

	cards, err := s.cardStore.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards for stats",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return queue.DeckStats{}, NewDeckServiceError("get_stats", "failed to list cards", err)
	}

	return queue.Summarize(queue.EntriesFromCards(cards), s.now().UTC()), nil
}

// ResetDeck implements DeckService.ResetDeck.
func (s *deckServiceImpl) ResetDeck(ctx context.Context, userID, deckID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now().UTC()

	if _, err := s.ownedDeck(ctx, "reset_deck", userID, deckID); err != nil {
		return 0, err
	}

	n, err := s.cardStore.ResetDeck(ctx, deckID, s.srsService.InitialState(now), now)
	if err != nil {
		log.Error("failed to reset deck",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return 0, NewDeckServiceError("reset_deck", "failed to reset cards", err)
	}

	s.emit(ctx, events.TypeDeckReset, events.DeckReset{DeckID: deckID, UserID: userID, Cards: n}, now)

	log.Info("deck reset",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()),
		slog.Int64("cards", n))
	return n, nil
}

// GenerateQuiz implements DeckService.GenerateQuiz.
func (s *deckServiceImpl) GenerateQuiz(
	ctx context.Context,
	userID, deckID uuid.UUID,
	opts quiz.Options,
) (*QuizResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := quiz.ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}

	if _, err := s.ownedDeck(ctx, "generate_quiz", userID, deckID); err != nil {
		return nil, err
	}

	if opts.Count <= 0 && s.defaultQuizCount > 0 {
		opts.Count = s.defaultQuizCount
	}
	if s.maxQuizCount > 0 && opts.Count > s.maxQuizCount {
		opts.Count = s.maxQuizCount
	}

	cards, err := s.cardStore.ListQuizCandidates(ctx, deckID)
	if err != nil {
		log.Error("failed to list quiz candidates",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return nil, NewDeckServiceError("generate_quiz", "failed to list cards", err)
	}

	pool := quiz.Eligible(cards)
	questions, err := quiz.Generate(pool, opts, s.newRand())
	if err != nil {
		if errors.Is(err, quiz.ErrNotEnoughCards) {
			log.Debug("not enough cards for quiz",
				slog.String("deck_id", deckID.String()),
				slog.Int("candidates", len(pool)))
		}
		return nil, err
	}

	modes := make(map[string]int)
	for _, q := range questions {
		modes[string(q.Mode)]++
	}
	s.emit(ctx, events.TypeQuizGenerated, events.QuizGenerated{DeckID: deckID, UserID: userID, Modes: modes}, s.now().UTC())

	return &QuizResult{Questions: questions, TotalCards: len(pool)}, nil
}

func (s *deckServiceImpl) emit(ctx context.Context, eventType string, payload any, at time.Time) {
	if s.emitter == nil {
		return
	}

	event, err := events.NewEvent(eventType, payload, at)
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit event",
			slog.String("event_type", eventType),
			redact.Attr(err))
	}
}
