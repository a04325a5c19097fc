package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/tickler/internal/domain"
	"github.com/phrazzld/tickler/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firedItem() domain.TaskItem {
	return domain.TaskItem{
		ID:                    7,
		Title:                 "Dentist",
		Description:           "Checkup",
		ReminderTime:          time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		ReminderBeforeMinutes: 15,
		IsCompleted:           true,
		Priority:              domain.PriorityHigh,
	}
}

func TestNewReminderNotificationTask(t *testing.T) {
	_, err := NewReminderNotificationTask(firedItem(), nil)
	assert.ErrorIs(t, err, ErrNilEmitter)

	emitter := events.NewInMemoryEventEmitter(setupTestLogger())
	task, err := NewReminderNotificationTask(firedItem(), emitter)
	require.NoError(t, err)

	assert.Equal(t, TaskTypeReminderNotification, task.Type())
	assert.Equal(t, TaskStatusPending, task.Status())

	var payload events.ReminderFiredPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, 7, payload.ID)
	assert.Equal(t, "Dentist", payload.Title)
	assert.True(t, payload.DueAt.Equal(time.Date(2024, 1, 1, 9, 45, 0, 0, time.UTC)))
}

func TestReminderNotificationTask_Execute(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(setupTestLogger())

	var received []*events.Event
	emitter.RegisterHandler(events.HandlerFunc(func(ctx context.Context, event *events.Event) error {
		received = append(received, event)
		return nil
	}))

	task, err := NewReminderNotificationTask(firedItem(), emitter)
	require.NoError(t, err)

	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, TaskStatusCompleted, task.Status())

	require.Len(t, received, 1)
	assert.Equal(t, events.TypeReminderFired, received[0].Type)

	var payload events.ReminderFiredPayload
	require.NoError(t, received[0].UnmarshalPayload(&payload))
	assert.Equal(t, "Dentist", payload.Title)
	assert.Equal(t, "Checkup", payload.Description)
}

func TestReminderNotificationTask_ExecuteHandlerError(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(setupTestLogger())
	handlerErr := errors.New("console closed")
	emitter.RegisterHandler(events.HandlerFunc(func(ctx context.Context, event *events.Event) error {
		return handlerErr
	}))

	task, err := NewReminderNotificationTask(firedItem(), emitter)
	require.NoError(t, err)

	err = task.Execute(context.Background())
	assert.ErrorIs(t, err, handlerErr)
	assert.Contains(t, err.Error(), "task item 7")
	assert.Equal(t, TaskStatusFailed, task.Status())
}

func TestReminderNotificationTask_ThroughWorkerPool(t *testing.T) {
	logger := setupTestLogger()
	emitter := events.NewInMemoryEventEmitter(logger)
	delivered := make(chan events.ReminderFiredPayload, 1)
	emitter.RegisterHandler(events.OnType(events.TypeReminderFired,
		events.HandlerFunc(func(ctx context.Context, event *events.Event) error {
			var p events.ReminderFiredPayload
			if err := event.UnmarshalPayload(&p); err != nil {
				return err
			}
			delivered <- p
			return nil
		})))

	queue := NewTaskQueue(4, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, logger)
	pool.Start()
	defer pool.Stop()

	task, err := NewReminderNotificationTask(firedItem(), emitter)
	require.NoError(t, err)
	require.NoError(t, queue.Enqueue(task))

	select {
	case p := <-delivered:
		assert.Equal(t, 7, p.ID)
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for reminder delivery")
	}
}
