package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tickler/internal/domain"
	"github.com/phrazzld/tickler/internal/events"
	"github.com/phrazzld/tickler/internal/platform/logger"
	"github.com/phrazzld/tickler/internal/store"
)

// ReminderChecker runs a single due check. *scheduler.ReminderScheduler
// satisfies it.
type ReminderChecker interface {
	RunOnce(ctx context.Context) ([]domain.TaskItem, error)
}

// ReminderService provides the task item operations used by the front ends.
type ReminderService interface {
	// AddTask creates a pending task item and emits task.added.
	AddTask(ctx context.Context, fields domain.TaskItemFields) (domain.TaskItem, error)

	// UpdateTask replaces the mutable fields of an item and emits task.updated.
	// Returns ErrTaskNotFound for an unknown id.
	UpdateTask(ctx context.Context, id int, fields domain.TaskItemFields) (domain.TaskChange, error)

	// GetTask returns one item. Returns ErrTaskNotFound for an unknown id.
	GetTask(ctx context.Context, id int) (domain.TaskItem, error)

	// ListTasks returns every item ordered Low, Medium, High.
	ListTasks(ctx context.Context) ([]domain.TaskItem, error)

	// ListTasksByStatus returns the pending or completed items.
	ListTasksByStatus(ctx context.Context, completed bool) ([]domain.TaskItem, error)

	// CheckReminders runs one due check immediately and returns the fired items.
	CheckReminders(ctx context.Context) ([]domain.TaskItem, error)
}

type reminderServiceImpl struct {
	store        store.TaskItemStore
	checker      ReminderChecker
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewReminderService creates a new ReminderService.
// It returns an error if any of the required dependencies are nil.
func NewReminderService(
	taskStore store.TaskItemStore,
	checker ReminderChecker,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (ReminderService, error) {
	if taskStore == nil {
		return nil, &ServiceError{
			Service:   "reminder",
			Operation: "create_service",
			Err:       errors.New("task store cannot be nil"),
		}
	}
	if checker == nil {
		return nil, &ServiceError{
			Service:   "reminder",
			Operation: "create_service",
			Err:       errors.New("reminder checker cannot be nil"),
		}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{
			Service:   "reminder",
			Operation: "create_service",
			Err:       errors.New("event emitter cannot be nil"),
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &reminderServiceImpl{
		store:        taskStore,
		checker:      checker,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "reminder_service"),
	}, nil
}

func (s *reminderServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// AddTask implements ReminderService.AddTask.
func (s *reminderServiceImpl) AddTask(
	ctx context.Context,
	fields domain.TaskItemFields,
) (domain.TaskItem, error) {
	item, err := s.store.AddTask(ctx, fields)
	if err != nil {
		return domain.TaskItem{}, NewReminderServiceError("add_task", err)
	}

	s.emit(ctx, events.TypeTaskAdded, events.TaskAddedPayload{
		ID:           item.ID,
		Title:        item.Title,
		ReminderTime: item.ReminderTime,
		Priority:     item.Priority.String(),
	})
	return item, nil
}

// UpdateTask implements ReminderService.UpdateTask.
func (s *reminderServiceImpl) UpdateTask(
	ctx context.Context,
	id int,
	fields domain.TaskItemFields,
) (domain.TaskChange, error) {
	change, err := s.store.UpdateTask(ctx, id, fields)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.log(ctx).Debug("update requested for unknown task", "task_id", id)
		}
		return domain.TaskChange{}, NewReminderServiceError("update_task", err)
	}

	if change.Completed {
		s.log(ctx).Info("completed task edited, completion flag kept", "task_id", id)
	}

	s.emit(ctx, events.TypeTaskUpdated, events.TaskUpdatedPayload{
		ID:        change.ID,
		Old:       fieldsPayload(change.Old),
		New:       fieldsPayload(change.New),
		Completed: change.Completed,
	})
	return change, nil
}

func fieldsPayload(f domain.TaskItemFields) events.TaskFieldsPayload {
	return events.TaskFieldsPayload{
		Title:                 f.Title,
		Description:           f.Description,
		ReminderTime:          f.ReminderTime,
		ReminderBeforeMinutes: f.ReminderBeforeMinutes,
		Priority:              f.Priority.String(),
	}
}

// GetTask implements ReminderService.GetTask.
func (s *reminderServiceImpl) GetTask(ctx context.Context, id int) (domain.TaskItem, error) {
	item, err := s.store.GetTask(ctx, id)
	if err != nil {
		return domain.TaskItem{}, NewReminderServiceError("get_task", err)
	}
	return item, nil
}

// ListTasks implements ReminderService.ListTasks.
func (s *reminderServiceImpl) ListTasks(ctx context.Context) ([]domain.TaskItem, error) {
	items, err := s.store.ListOrderedByPriority(ctx)
	if err != nil {
		return nil, NewReminderServiceError("list_tasks", err)
	}
	return items, nil
}

// ListTasksByStatus implements ReminderService.ListTasksByStatus.
func (s *reminderServiceImpl) ListTasksByStatus(
	ctx context.Context,
	completed bool,
) ([]domain.TaskItem, error) {
	items, err := s.store.ListByStatus(ctx, completed)
	if err != nil {
		return nil, NewReminderServiceError("list_tasks_by_status", err)
	}
	return items, nil
}

// CheckReminders implements ReminderService.CheckReminders.
func (s *reminderServiceImpl) CheckReminders(ctx context.Context) ([]domain.TaskItem, error) {
	fired, err := s.checker.RunOnce(ctx)
	if err != nil {
		return nil, NewReminderServiceError("check_reminders", err)
	}
	s.log(ctx).Debug("manual reminder check finished", "fired_count", len(fired))
	return fired, nil
}

// emit publishes an event. The store mutation has already happened, so a
// failing handler is logged rather than returned.
func (s *reminderServiceImpl) emit(ctx context.Context, eventType string, payload interface{}) {
	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		s.log(ctx).Error("failed to create event",
			"error", err,
			"event_type", eventType)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.log(ctx).Warn("failed to emit event",
			"error", err,
			"event_type", eventType,
			"event_id", event.ID)
	}
}
