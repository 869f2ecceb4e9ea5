package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler(t *testing.T) {
	t.Parallel()
	m := metrics.New(prometheus.NewRegistry())
	h := NewMetricsHandler(m)
	ctx := context.Background()
	now := time.Now()

	emit := func(eventType string, payload any) {
		event, err := NewEvent(eventType, payload, now)
		require.NoError(t, err)
		require.NoError(t, h.HandleEvent(ctx, event))
	}

	emit(TypeReviewSubmitted, ReviewSubmitted{Rating: "again", Lapse: true, IntervalDays: 1})
	emit(TypeReviewSubmitted, ReviewSubmitted{Rating: "easy", IntervalDays: 20})
	emit(TypeQueueServed, QueueServed{New: 2, Learning: 1, Due: 5})
	emit(TypeDeckReset, DeckReset{DeckID: uuid.New(), Cards: 12})
	emit(TypeQuizGenerated, QuizGenerated{Modes: map[string]int{"write-answer": 2, "text-to-image": 3}})
	emit(TypeCardPostponed, CardPostponed{Days: 2})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsTotal.WithLabelValues("again")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsTotal.WithLabelValues("easy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LapsesTotal))
	assert.Equal(t, 3, testutil.CollectAndCount(m.QueueCards))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeckResets))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuizQuestionsTotal.WithLabelValues("write-answer")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.QuizQuestionsTotal.WithLabelValues("text-to-image")))
}

func TestMetricsHandler_BadPayload(t *testing.T) {
	t.Parallel()
	h := NewMetricsHandler(metrics.New(prometheus.NewRegistry()))
	event := &Event{ID: uuid.New(), Type: TypeReviewSubmitted, Payload: []byte(`{"rating":`)}

	assert.Error(t, h.HandleEvent(context.Background(), event))
}

func TestAuditHandler(t *testing.T) {
	t.Parallel()
	log, buf := logger.GetTestLogger(t)
	h := NewAuditHandler(log)

	event, err := NewEvent(TypeDeckReset, DeckReset{Cards: 4}, time.Now())
	require.NoError(t, err)
	require.NoError(t, h.HandleEvent(context.Background(), event))

	logger.AssertLogContains(t, buf, "workflow event")
	logger.AssertLogField(t, buf, "event_type", TypeDeckReset)
	logger.AssertLogField(t, buf, "component", "audit")
}
