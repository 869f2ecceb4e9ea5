package events

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

type subscription struct {
	handler EventHandler
	types   []string // empty means every type
}

func (s subscription) wants(eventType string) bool {
	return len(s.types) == 0 || slices.Contains(s.types, eventType)
}

// InMemoryEventEmitter dispatches events synchronously to handlers registered in memory.
type InMemoryEventEmitter struct {
	subs   []subscription
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler subscribes handler to the given event types, or to every
// type when none are given.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler, types ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, subscription{handler: handler, types: types})
	e.logger.Debug("registered event handler",
		"handler_count", len(e.subs),
		"types", types)
}

// EmitEvent delivers event to every interested handler. A failing handler does
// not stop delivery to the others; all handler errors are joined.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	e.mu.RUnlock()

	var errs []error
	delivered := 0
	for i, sub := range subs {
		if !sub.wants(event.Type) {
			continue
		}
		delivered++
		if err := sub.handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			errs = append(errs, err)
		}
	}

	if delivered == 0 {
		e.logger.Debug("no handlers registered for event",
			"event_id", event.ID,
			"event_type", event.Type)
	}

	return errors.Join(errs...)
}
