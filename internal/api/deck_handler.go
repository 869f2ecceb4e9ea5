package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain/quiz"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
)

// DeckHandler handles deck-level requests: the study queue, statistics,
// resets and quizzes.
type DeckHandler struct {
	cardReviewService card_review.CardReviewService
	deckService       service.DeckService
	logger            *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(
	cardReviewService card_review.CardReviewService,
	deckService service.DeckService,
	logger *slog.Logger,
) *DeckHandler {
	if cardReviewService == nil || deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("services cannot be nil for DeckHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		cardReviewService: cardReviewService,
		deckService:       deckService,
		logger:            logger.With(slog.String("component", "deck_handler")),
	}
}

// GetQueue handles GET /decks/{deckID}/queue.
func (h *DeckHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", log)
	if !ok {
		return
	}

	result, err := h.cardReviewService.GetQueue(r.Context(), userID, deckID)
	if err != nil {
		message := ""
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			message = "Failed to load study queue"
		}
		HandleAPIError(w, r, err, message)
		return
	}

	log.Debug("queue served",
		slog.String("deck_id", deckID.String()),
		slog.Int("cards", result.Len()))
	shared.RespondWithJSON(w, r, http.StatusOK, queueToResponse(result))
}

// GetStats handles GET /decks/{deckID}/stats.
func (h *DeckHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", log)
	if !ok {
		return
	}

	stats, err := h.deckService.GetStats(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{DeckID: deckID, DeckStats: stats})
}

// ResetDeck handles POST /decks/{deckID}/reset.
func (h *DeckHandler) ResetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", log)
	if !ok {
		return
	}

	n, err := h.deckService.ResetDeck(r.Context(), userID, deckID)
	if err != nil {
		message := ""
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			message = "Failed to reset deck"
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ResetResponse{DeckID: deckID, CardsReset: n})
}

// GenerateQuiz handles GET /decks/{deckID}/quiz?count=&mode=.
func (h *DeckHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", log)
	if !ok {
		return
	}

	var opts quiz.Options
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid count: must be a positive integer")
			return
		}
		opts.Count = count
	}

	mode, err := quiz.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	opts.Mode = mode

	result, err := h.deckService.GenerateQuiz(r.Context(), userID, deckID, opts)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("quiz generated",
		slog.String("deck_id", deckID.String()),
		slog.Int("questions", len(result.Questions)),
		slog.Int("total_cards", result.TotalCards))
	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{
		DeckID:     deckID,
		Questions:  result.Questions,
		TotalCards: result.TotalCards,
	})
}
