package card_review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/queue"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/store"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// Option configures a CardReviewService.
type Option func(*cardReviewServiceImpl)

// WithClock replaces time.Now as the source of the review time.
func WithClock(now func() time.Time) Option {
	return func(s *cardReviewServiceImpl) {
		s.now = now
	}
}

// WithQueueOptions sets the options passed to the queue selector.
func WithQueueOptions(opts queue.Options) Option {
	return func(s *cardReviewServiceImpl) {
		s.queueOpts = opts
	}
}

// WithEventEmitter publishes workflow events after each successful change.
func WithEventEmitter(emitter events.EventEmitter) Option {
	return func(s *cardReviewServiceImpl) {
		s.emitter = emitter
	}
}

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	db         *sql.DB
	cardRepo   CardRepository
	deckRepo   DeckRepository
	logRepo    ReviewLogRepository
	srsService srs.Service
	queueOpts  queue.Options
	emitter    events.EventEmitter
	now        func() time.Time
	logger     *slog.Logger
}

// NewCardReviewService creates a new CardReviewService implementation.
func NewCardReviewService(
	db *sql.DB,
	cardRepo CardRepository,
	deckRepo DeckRepository,
	logRepo ReviewLogRepository,
	srsService srs.Service,
	logger *slog.Logger,
	opts ...Option,
) CardReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if cardRepo == nil {
		panic("cardRepo cannot be nil")
	}
	if deckRepo == nil {
		panic("deckRepo cannot be nil")
	}
	if logRepo == nil {
		panic("logRepo cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &cardReviewServiceImpl{
		db:         db,
		cardRepo:   cardRepo,
		deckRepo:   deckRepo,
		logRepo:    logRepo,
		srsService: srsService,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "card_review_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartOfDay returns midnight UTC of the day containing t.
// Reviews logged at or after it count toward the daily review limit.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetQueue implements CardReviewService.GetQueue.
func (s *cardReviewServiceImpl) GetQueue(ctx context.Context, userID, deckID uuid.UUID) (*QueueResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now().UTC()

	deck, err := s.deckRepo.GetOwned(ctx, deckID, userID)
	if err != nil {
		if errors.Is(err, ErrDeckNotFound) {
			log.Debug("deck not found for queue",
				slog.String("user_id", userID.String()),
				slog.String("deck_id", deckID.String()))
			return nil, ErrDeckNotFound
		}
		return nil, NewGetQueueError("failed to load deck", err)
	}

	done, err := s.logRepo.CountSince(ctx, deckID, userID, StartOfDay(now))
	if err != nil {
		log.Error("failed to count today's reviews",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return nil, NewGetQueueError("failed to count reviews", err)
	}

	cards, err := s.cardRepo.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards",
			redact.Attr(err),
			slog.String("deck_id", deckID.String()))
		return nil, NewGetQueueError("failed to list cards", err)
	}

	counters := deck.Counters(done)
	selected := queue.Select(queue.EntriesFromCards(cards), now, counters, s.queueOpts)

	byID := make(map[uuid.UUID]domain.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	pick := func(ids []uuid.UUID) []domain.Card {
		out := make([]domain.Card, 0, len(ids))
		for _, id := range ids {
			out = append(out, byID[id])
		}
		return out
	}

	result := &QueueResult{
		DeckID:   deckID,
		New:      pick(selected.New),
		Learning: pick(selected.Learning),
		Due:      pick(selected.Due),
		Counters: counters,
	}

	s.emit(ctx, events.TypeQueueServed, events.QueueServed{
		DeckID:   deckID,
		UserID:   userID,
		New:      len(result.New),
		Learning: len(result.Learning),
		Due:      len(result.Due),
	}, now)

	log.Debug("queue selected",
		slog.String("deck_id", deckID.String()),
		slog.Int("new", len(result.New)),
		slog.Int("learning", len(result.Learning)),
		slog.Int("due", len(result.Due)),
		slog.Int("reviews_done_today", done))
	return result, nil
}

// SubmitAnswer implements CardReviewService.SubmitAnswer.
func (s *cardReviewServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID, cardID uuid.UUID,
	answer ReviewAnswer,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !answer.Rating.Valid() {
		log.Warn("invalid review rating",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()),
			slog.String("rating", string(answer.Rating)))
		return nil, ErrInvalidAnswer
	}

	now := s.now().UTC()
	var result *ReviewResult

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		card, err := s.lockOwnedCard(ctx, tx, userID, cardID)
		if err != nil {
			return err
		}

		if card.State.Suspended {
			return ErrCardSuspended
		}

		previous := card.State
		next, err := s.srsService.CalculateNextReview(previous, answer.Rating, now)
		if err != nil {
			if errors.Is(err, srs.ErrInvalidRating) {
				return ErrInvalidAnswer
			}
			return fmt.Errorf("failed to calculate next review: %w", err)
		}

		if err := s.cardRepo.WithTx(tx).UpdateState(ctx, card.ID, next, now); err != nil {
			return fmt.Errorf("failed to update card state: %w", err)
		}

		entry := domain.NewReviewLog(card, userID, answer.Rating, next, now)
		if err := s.logRepo.WithTx(tx).Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record review: %w", err)
		}

		card.ApplyState(next, now)
		result = &ReviewResult{Card: card, Previous: previous, Log: entry}
		return nil
	})
	if err != nil {
		if isReviewSentinel(err) {
			return nil, err
		}

		log.Error("failed to submit answer",
			redact.Attr(err),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, NewSubmitAnswerError("failed to submit answer", err)
	}

	s.emit(ctx, events.TypeReviewSubmitted, events.ReviewSubmitted{
		CardID:       result.Card.ID,
		DeckID:       result.Card.DeckID,
		UserID:       userID,
		Rating:       string(answer.Rating),
		Lapse:        answer.Rating.IsLapse(),
		IntervalDays: result.Card.State.Interval,
		EaseFactor:   result.Card.State.EaseFactor,
		DueAt:        result.Card.State.DueAt,
	}, now)

	log.Debug("review recorded",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("rating", string(answer.Rating)),
		slog.Float64("ease_factor", result.Card.State.EaseFactor),
		slog.Int("interval", result.Card.State.Interval),
		slog.Time("due_at", result.Card.State.DueAt))

	return result, nil
}

// PreviewIntervals implements CardReviewService.PreviewIntervals.
func (s *cardReviewServiceImpl) PreviewIntervals(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (map[domain.Rating]int, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, NewPreviewError("failed to load card", err)
	}

	if _, err := s.deckRepo.GetOwned(ctx, card.DeckID, userID); err != nil {
		if errors.Is(err, ErrDeckNotFound) {
			return nil, ErrCardNotOwned
		}
		return nil, NewPreviewError("failed to load deck", err)
	}

	return s.srsService.PreviewIntervals(card.State, s.now().UTC()), nil
}

// PostponeCard implements CardReviewService.PostponeCard.
func (s *cardReviewServiceImpl) PostponeCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	days int,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if days < 1 {
		return nil, ErrInvalidDays
	}

	now := s.now().UTC()
	var postponed *domain.Card

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		card, err := s.lockOwnedCard(ctx, tx, userID, cardID)
		if err != nil {
			return err
		}

		if card.State.Suspended {
			return ErrCardSuspended
		}

		next, err := s.srsService.PostponeReview(card.State, days, now)
		if err != nil {
			if errors.Is(err, srs.ErrInvalidDays) {
				return ErrInvalidDays
			}
			return fmt.Errorf("failed to postpone review: %w", err)
		}

		if err := s.cardRepo.WithTx(tx).UpdateState(ctx, card.ID, next, now); err != nil {
			return fmt.Errorf("failed to update card state: %w", err)
		}

		card.ApplyState(next, now)
		postponed = card
		return nil
	})
	if err != nil {
		if isReviewSentinel(err) {
			return nil, err
		}

		log.Error("failed to postpone card",
			redact.Attr(err),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, NewPostponeError("failed to postpone card", err)
	}

	s.emit(ctx, events.TypeCardPostponed, events.CardPostponed{
		CardID: postponed.ID,
		UserID: userID,
		Days:   days,
		DueAt:  postponed.State.DueAt,
	}, now)

	return postponed, nil
}

// lockOwnedCard loads the card with a row lock and checks that its deck belongs to userID.
func (s *cardReviewServiceImpl) lockOwnedCard(
	ctx context.Context,
	tx *sql.Tx,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardRepo.WithTx(tx).GetForUpdate(ctx, cardID)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			log.Warn("card not found",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID.String()))
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if _, err := s.deckRepo.WithTx(tx).GetOwned(ctx, card.DeckID, userID); err != nil {
		if errors.Is(err, ErrDeckNotFound) {
			log.Warn("user does not own card",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID.String()),
				slog.String("deck_id", card.DeckID.String()))
			return nil, ErrCardNotOwned
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	return card, nil
}

func (s *cardReviewServiceImpl) emit(ctx context.Context, eventType string, payload any, at time.Time) {
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

func isReviewSentinel(err error) bool {
	return errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrCardNotOwned) ||
		errors.Is(err, ErrCardSuspended) ||
		errors.Is(err, ErrInvalidAnswer) ||
		errors.Is(err, ErrInvalidDays)
}
