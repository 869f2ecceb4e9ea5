package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"card not owned", card_review.ErrCardNotOwned, http.StatusNotFound},
		{"card not found", card_review.ErrCardNotFound, http.StatusNotFound},
		{"deck not found", service.ErrDeckNotFound, http.StatusNotFound},
		{"store deck not found", store.ErrDeckNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", card_review.ErrCardNotFound), http.StatusNotFound},
		{"invalid answer", card_review.ErrInvalidAnswer, http.StatusBadRequest},
		{"invalid days", card_review.ErrInvalidDays, http.StatusBadRequest},
		{"suspended", domain.ErrCardSuspended, http.StatusBadRequest},
		{"invalid rating", fmt.Errorf("%w: %q", domain.ErrInvalidRating, "meh"), http.StatusBadRequest},
		{"invalid quiz mode", service.ErrInvalidQuizMode, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"not enough cards", service.ErrNotEnoughCards, http.StatusUnprocessableEntity},
		{"service error", card_review.NewSubmitAnswerError("db", errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"card not owned", card_review.ErrCardNotOwned, "Card not found"},
		{"store card not found", store.ErrCardNotFound, "Card not found"},
		{"deck not found", card_review.ErrDeckNotFound, "Deck not found"},
		{"invalid days", card_review.ErrInvalidDays, "Days must be at least 1"},
		{"not enough cards", service.ErrNotEnoughCards, "Not enough illustrated cards for a quiz"},
		{
			"internal detail hidden",
			card_review.NewGetQueueError("failed", errors.New(`pq: password authentication failed for user "admin"`)),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(PostponeRequest{Days: 5000})
	assert.Equal(t, "Invalid days: too large", SanitizeValidationError(err))

	err = shared.ValidateRequest(SubmitAnswerRequest{Rating: "meh"})
	assert.Equal(t, "Invalid rating: invalid value", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	ctx, logBuf := logger.NewTestContext(t)
	req := httptest.NewRequest(http.MethodGet, "/api/cards/x/preview", nil).WithContext(ctx)

	rec := httptest.NewRecorder()
	HandleAPIError(rec, req, card_review.ErrCardNotOwned, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Card not found"}`, rec.Body.String())

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])

	rec = httptest.NewRecorder()
	HandleAPIError(rec, req, errors.New("boom"), "Failed to preview card")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to preview card"}`, rec.Body.String())
}
