package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
)

// CardHandler handles card-level review requests.
type CardHandler struct {
	cardReviewService card_review.CardReviewService
	logger            *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardReviewService card_review.CardReviewService, logger *slog.Logger) *CardHandler {
	if cardReviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardReviewService cannot be nil for CardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardReviewService: cardReviewService,
		logger:            logger.With(slog.String("component", "card_handler")),
	}
}

// SubmitAnswer handles POST /cards/{id}/answer.
// It applies the rating and returns the updated card with its next review time.
func (h *CardHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			redact.Attr(err),
			slog.String("card_id", cardID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	rating, err := domain.ParseRating(req.Rating)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.cardReviewService.SubmitAnswer(r.Context(), userID, cardID, card_review.ReviewAnswer{Rating: rating})
	if err != nil {
		message := ""
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			message = "Failed to submit answer"
		}
		HandleAPIError(w, r, err, message)
		return
	}

	log.Debug("answer submitted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("rating", string(rating)),
		slog.Int("interval_days", result.Card.State.Interval))
	shared.RespondWithJSON(w, r, http.StatusOK, reviewToResponse(result))
}

// PreviewIntervals handles GET /cards/{id}/preview.
func (h *CardHandler) PreviewIntervals(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	intervals, err := h.cardReviewService.PreviewIntervals(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := PreviewResponse{CardID: cardID, Intervals: make(map[string]int, len(intervals))}
	for rating, days := range intervals {
		resp.Intervals[string(rating)] = days
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// PostponeCard handles POST /cards/{id}/postpone.
func (h *CardHandler) PostponeCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req PostponeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			redact.Attr(err),
			slog.String("card_id", cardID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	card, err := h.cardReviewService.PostponeCard(r.Context(), userID, cardID, req.Days)
	if err != nil {
		message := ""
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			message = "Failed to postpone card"
		}
		HandleAPIError(w, r, err, message)
		return
	}

	log.Debug("card postponed",
		slog.String("card_id", cardID.String()),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}
