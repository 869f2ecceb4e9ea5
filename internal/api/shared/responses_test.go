package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(rec, req, http.StatusCreated, map[string]int{"cards": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"cards":3}`, rec.Body.String())
}

func TestRespondWithError_IncludesTraceID(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/decks", nil)
	req = req.WithContext(SetTraceID(req.Context()))

	RespondWithError(rec, req, http.StatusNotFound, "Deck not found")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Deck not found", body.Error)
	assert.Equal(t, GetTraceID(req.Context()), body.TraceID)
	assert.NotContains(t, rec.Body.String(), "404")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	secret := errors.New(`pq: relation "cards" failed at /srv/app/internal/store.go`)

	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{"server error", http.StatusInternalServerError, nil, "ERROR"},
		{"rate limited", http.StatusTooManyRequests, nil, "WARN"},
		{"client error", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated client error", http.StatusForbidden, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, logBuf := logger.NewTestContext(t)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/cards/1/answer", nil).WithContext(ctx)

			RespondWithErrorAndLog(rec, req, tt.status, "Something failed", secret, tt.opts...)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, `{"error":"Something failed"}`, rec.Body.String())

			entries, err := logBuf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			assert.Equal(t, "*errors.errorString", entries[0]["error_type"])
			assert.NotContains(t, logBuf.String(), "/srv/app/internal")
		})
	}
}
