package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the application.
const (
	TypeTaskAdded     = "task.added"
	TypeTaskUpdated   = "task.updated"
	TypeReminderFired = "reminder.fired"
)

// Event is a single published message.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// TaskAddedPayload is the payload of a task.added event.
type TaskAddedPayload struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	ReminderTime time.Time `json:"reminder_time"`
	Priority     string    `json:"priority"`
}

// TaskFieldsPayload holds the editable fields of a task item.
type TaskFieldsPayload struct {
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	ReminderTime          time.Time `json:"reminder_time"`
	ReminderBeforeMinutes int       `json:"reminder_before_minutes"`
	Priority              string    `json:"priority"`
}

// TaskUpdatedPayload is the payload of a task.updated event. Old and New
// carry every editable field, changed or not.
type TaskUpdatedPayload struct {
	ID        int               `json:"id"`
	Old       TaskFieldsPayload `json:"old"`
	New       TaskFieldsPayload `json:"new"`
	Completed bool              `json:"completed"`
}

// ReminderFiredPayload is the payload of a reminder.fired event.
type ReminderFiredPayload struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_at"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// OnType returns a handler that forwards only events of the given type.
func OnType(eventType string, handler EventHandler) EventHandler {
	return HandlerFunc(func(ctx context.Context, event *Event) error {
		if event.Type != eventType {
			return nil
		}
		return handler.HandleEvent(ctx, event)
	})
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
