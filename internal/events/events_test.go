package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := ReminderFiredPayload{
		ID:          3,
		Title:       "Dentist",
		Description: "Checkup",
		DueAt:       time.Date(2024, 1, 1, 9, 45, 0, 0, time.UTC),
	}

	event, err := NewEvent(TypeReminderFired, payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeReminderFired, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded ReminderFiredPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload.ID, decoded.ID)
	assert.Equal(t, payload.Title, decoded.Title)
	assert.Equal(t, payload.Description, decoded.Description)
	assert.True(t, payload.DueAt.Equal(decoded.DueAt))
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	_, err := NewEvent("bad", map[string]interface{}{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestEventJSONShape(t *testing.T) {
	event, err := NewEvent(TypeTaskAdded, TaskAddedPayload{ID: 1, Title: "x", Priority: "High"})
	require.NoError(t, err)

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, "task.added", generic["type"])
	assert.Contains(t, generic, "id")
	assert.Contains(t, generic, "created_at")
	body, ok := generic["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "High", body["priority"])
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *Event
	h := HandlerFunc(func(ctx context.Context, event *Event) error {
		got = event
		return errors.New("boom")
	})

	event, err := NewEvent(TypeTaskUpdated, TaskUpdatedPayload{ID: 1})
	require.NoError(t, err)

	assert.EqualError(t, h.HandleEvent(context.Background(), event), "boom")
	assert.Same(t, event, got)
}

func TestOnType(t *testing.T) {
	inner := &MockEventHandler{}
	h := OnType(TypeReminderFired, inner)

	added, err := NewEvent(TypeTaskAdded, TaskAddedPayload{ID: 1})
	require.NoError(t, err)
	fired, err := NewEvent(TypeReminderFired, ReminderFiredPayload{ID: 1})
	require.NoError(t, err)

	require.NoError(t, h.HandleEvent(context.Background(), added))
	assert.Equal(t, 0, inner.HandledCount)

	require.NoError(t, h.HandleEvent(context.Background(), fired))
	assert.Equal(t, 1, inner.HandledCount)
	assert.Equal(t, fired, inner.LastEvent)
}
