package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tickler/internal/domain"
	"github.com/phrazzld/tickler/internal/events"
	"github.com/phrazzld/tickler/internal/platform/logger"
)

// ErrNilEmitter is returned when a notification task is built without an emitter.
var ErrNilEmitter = errors.New("event emitter cannot be nil")

// ReminderNotificationTask publishes a reminder.fired event for one item that
// the scheduler has just marked completed.
type ReminderNotificationTask struct {
	id      uuid.UUID
	payload events.ReminderFiredPayload
	emitter events.EventEmitter

	mu     sync.Mutex
	status TaskStatus
}

// NewReminderNotificationTask creates a pending notification task from a
// snapshot of a fired item.
func NewReminderNotificationTask(
	item domain.TaskItem,
	emitter events.EventEmitter,
) (*ReminderNotificationTask, error) {
	if emitter == nil {
		return nil, ErrNilEmitter
	}

	return &ReminderNotificationTask{
		id: uuid.New(),
		payload: events.ReminderFiredPayload{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			DueAt:       item.DueAt(),
		},
		emitter: emitter,
		status:  TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *ReminderNotificationTask) ID() uuid.UUID {
	return t.id
}

// Type returns TaskTypeReminderNotification
func (t *ReminderNotificationTask) Type() string {
	return TaskTypeReminderNotification
}

// Payload returns the JSON-encoded reminder.
func (t *ReminderNotificationTask) Payload() []byte {
	data, err := json.Marshal(t.payload)
	if err != nil {
		return nil
	}
	return data
}

// Status returns the current task status
func (t *ReminderNotificationTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *ReminderNotificationTask) setStatus(s TaskStatus) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Execute emits the reminder.fired event.
func (t *ReminderNotificationTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	log := logger.FromContext(ctx)

	event, err := events.NewEvent(events.TypeReminderFired, t.payload)
	if err != nil {
		t.setStatus(TaskStatusFailed)
		return fmt.Errorf("failed to build reminder event: %w", err)
	}

	if err := t.emitter.EmitEvent(ctx, event); err != nil {
		t.setStatus(TaskStatusFailed)
		return fmt.Errorf("failed to deliver reminder for task item %d: %w", t.payload.ID, err)
	}

	log.Debug("reminder delivered",
		"task_item_id", t.payload.ID,
		"event_id", event.ID)
	t.setStatus(TaskStatusCompleted)
	return nil
}

// Ensure ReminderNotificationTask implements Task
var _ Task = (*ReminderNotificationTask)(nil)
