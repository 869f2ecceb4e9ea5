package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T, eventType string) *Event {
		t.Helper()
		event, err := NewEvent(eventType, map[string]string{"key": "value"}, time.Now())
		require.NoError(t, err)
		return event
	}

	t.Run("emit event with no handlers", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t, TypeDeckReset)))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := newEvent(t, TypeReviewSubmitted)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Same(t, event, handler1.LastEvent)
		assert.Same(t, event, handler2.LastEvent)
	})

	t.Run("failing handler does not stop delivery", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		errA := errors.New("handler a")
		errB := errors.New("handler b")
		failingA := &MockEventHandler{HandlerError: errA}
		success := &MockEventHandler{}
		failingB := &MockEventHandler{HandlerError: errB}
		emitter.RegisterHandler(failingA)
		emitter.RegisterHandler(success)
		emitter.RegisterHandler(failingB)

		err := emitter.EmitEvent(context.Background(), newEvent(t, TypeQuizGenerated))

		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
		assert.Equal(t, 1, success.HandledCount)
		assert.Equal(t, 1, failingB.HandledCount)
	})

	t.Run("type filtered subscriptions", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		reviews := &MockEventHandler{}
		resets := &MockEventHandler{}
		all := &MockEventHandler{}
		emitter.RegisterHandler(reviews, TypeReviewSubmitted)
		emitter.RegisterHandler(resets, TypeDeckReset, TypeCardPostponed)
		emitter.RegisterHandler(all)

		require.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t, TypeReviewSubmitted)))
		require.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t, TypeCardPostponed)))
		require.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t, TypeQueueServed)))

		assert.Equal(t, 1, reviews.HandledCount)
		assert.Equal(t, 1, resets.HandledCount)
		assert.Equal(t, 3, all.HandledCount)
	})
}
