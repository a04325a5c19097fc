package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	// Create a minimal logger that discards output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewEvent(TypeTaskAdded, TaskAddedPayload{ID: 1})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewEvent(TypeTaskAdded, TaskAddedPayload{ID: 1})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		successHandler := &MockEventHandler{}
		failingHandler := &MockEventHandler{HandlerError: errors.New("handler error")}
		lateHandler := &MockEventHandler{HandlerError: errors.New("second error")}
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)
		emitter.RegisterHandler(lateHandler)

		event, err := NewEvent(TypeReminderFired, ReminderFiredPayload{ID: 1})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler error")

		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, failingHandler.HandledCount)
		assert.Equal(t, 1, lateHandler.HandledCount)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		event, err := NewEvent(TypeTaskAdded, TaskAddedPayload{ID: 1})
		require.NoError(t, err)
		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("concurrent register and emit", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		var (
			mu    sync.Mutex
			count int
		)
		counter := HandlerFunc(func(ctx context.Context, event *Event) error {
			mu.Lock()
			count++
			mu.Unlock()
			return nil
		})

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				emitter.RegisterHandler(counter)
			}()
			go func() {
				defer wg.Done()
				event, err := NewEvent(TypeTaskAdded, TaskAddedPayload{ID: 1})
				if err == nil {
					_ = emitter.EmitEvent(context.Background(), event)
				}
			}()
		}
		wg.Wait()

		event, err := NewEvent(TypeTaskAdded, TaskAddedPayload{ID: 2})
		require.NoError(t, err)
		before := count
		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, before+10, count)
	})
}
