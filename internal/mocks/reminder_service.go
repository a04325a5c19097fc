package mocks

import (
	"context"

	"github.com/phrazzld/tickler/internal/domain"
	"github.com/phrazzld/tickler/internal/service"
)

// MockReminderService implements service.ReminderService for testing.
// Each method delegates to its Fn field; unset fields return zero values.
type MockReminderService struct {
	AddTaskFn           func(ctx context.Context, fields domain.TaskItemFields) (domain.TaskItem, error)
	UpdateTaskFn        func(ctx context.Context, id int, fields domain.TaskItemFields) (domain.TaskChange, error)
	GetTaskFn           func(ctx context.Context, id int) (domain.TaskItem, error)
	ListTasksFn         func(ctx context.Context) ([]domain.TaskItem, error)
	ListTasksByStatusFn func(ctx context.Context, completed bool) ([]domain.TaskItem, error)
	CheckRemindersFn    func(ctx context.Context) ([]domain.TaskItem, error)
}

// AddTask implements service.ReminderService
func (m *MockReminderService) AddTask(
	ctx context.Context,
	fields domain.TaskItemFields,
) (domain.TaskItem, error) {
	if m.AddTaskFn != nil {
		return m.AddTaskFn(ctx, fields)
	}
	return domain.TaskItem{}, nil
}

// UpdateTask implements service.ReminderService
func (m *MockReminderService) UpdateTask(
	ctx context.Context,
	id int,
	fields domain.TaskItemFields,
) (domain.TaskChange, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, fields)
	}
	return domain.TaskChange{}, nil
}

// GetTask implements service.ReminderService
func (m *MockReminderService) GetTask(ctx context.Context, id int) (domain.TaskItem, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return domain.TaskItem{}, nil
}

// ListTasks implements service.ReminderService
func (m *MockReminderService) ListTasks(ctx context.Context) ([]domain.TaskItem, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return nil, nil
}

// ListTasksByStatus implements service.ReminderService
func (m *MockReminderService) ListTasksByStatus(
	ctx context.Context,
	completed bool,
) ([]domain.TaskItem, error) {
	if m.ListTasksByStatusFn != nil {
		return m.ListTasksByStatusFn(ctx, completed)
	}
	return nil, nil
}

// CheckReminders implements service.ReminderService
func (m *MockReminderService) CheckReminders(ctx context.Context) ([]domain.TaskItem, error) {
	if m.CheckRemindersFn != nil {
		return m.CheckRemindersFn(ctx)
	}
	return nil, nil
}

var _ service.ReminderService = (*MockReminderService)(nil)
