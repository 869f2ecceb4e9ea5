package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/platform/metrics"
)

// MetricsHandler records workflow events into Prometheus collectors.
type MetricsHandler struct {
	metrics *metrics.Metrics
}

// NewMetricsHandler creates a MetricsHandler writing to m.
func NewMetricsHandler(m *metrics.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: m}
}

// HandleEvent implements EventHandler. Unknown event types are ignored.
func (h *MetricsHandler) HandleEvent(ctx context.Context, event *Event) error {
	switch event.Type {
	case TypeReviewSubmitted:
		var p ReviewSubmitted
		if err := event.UnmarshalPayload(&p); err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Type, err)
		}
		h.metrics.RecordReview(p.Rating, p.Lapse, p.IntervalDays)

	case TypeQueueServed:
		var p QueueServed
		if err := event.UnmarshalPayload(&p); err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Type, err)
		}
		h.metrics.RecordQueue(p.New, p.Learning, p.Due)

	case TypeDeckReset:
		h.metrics.RecordDeckReset()

	case TypeQuizGenerated:
		var p QuizGenerated
		if err := event.UnmarshalPayload(&p); err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Type, err)
		}
		for mode, n := range p.Modes {
			for i := 0; i < n; i++ {
				h.metrics.RecordQuizQuestion(mode)
			}
		}
	}
	return nil
}

// AuditHandler writes one structured log line per event.
type AuditHandler struct {
	logger *slog.Logger
}

// NewAuditHandler creates an AuditHandler logging through log.
func NewAuditHandler(log *slog.Logger) *AuditHandler {
	return &AuditHandler{logger: log.With("component", "audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditHandler) HandleEvent(ctx context.Context, event *Event) error {
	logger.FromContextOrDefault(ctx, h.logger).InfoContext(ctx, "workflow event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.Time("created_at", event.CreatedAt),
		slog.String("payload", string(event.Payload)))
	return nil
}
