package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task item validation errors. Each wraps ErrValidation.
var (
	// ErrEmptyTitle is returned when a task item has no title.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrNegativeLeadTime is returned when ReminderBeforeMinutes is below zero.
	// Negative lead times are rejected rather than clamped.
	ErrNegativeLeadTime = fmt.Errorf("%w: reminder lead time cannot be negative", ErrValidation)

	// ErrZeroReminderTime is returned when no reminder instant was supplied.
	ErrZeroReminderTime = fmt.Errorf("%w: reminder time is required", ErrValidation)
)

// TaskItem is one reminder entry. Values of this type handed out by a store
// are snapshots; mutating them never affects stored state.
type TaskItem struct {
	ID                    int       `json:"id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	ReminderTime          time.Time `json:"reminder_time"`
	ReminderBeforeMinutes int       `json:"reminder_before_minutes"`
	IsCompleted           bool      `json:"is_completed"`
	Priority              Priority  `json:"priority"`
}

// TaskItemFields holds the user-editable fields of a task item. It is the
// input for both creating and updating an item.
type TaskItemFields struct {
	Title                 string
	Description           string
	ReminderTime          time.Time
	ReminderBeforeMinutes int
	Priority              Priority
}

// Validate checks the fields and normalizes the reminder instant to UTC.
func (f *TaskItemFields) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return ErrEmptyTitle
	}
	if f.ReminderTime.IsZero() {
		return ErrZeroReminderTime
	}
	if f.ReminderBeforeMinutes < 0 {
		return ErrNegativeLeadTime
	}
	if !f.Priority.Valid() {
		return ErrInvalidPriority
	}
	f.ReminderTime = f.ReminderTime.UTC()
	return nil
}

// NewTaskItem builds a pending task item with the given id from validated
// fields.
func NewTaskItem(id int, f TaskItemFields) (TaskItem, error) {
	if id <= 0 {
		return TaskItem{}, ErrInvalidID
	}
	if err := f.Validate(); err != nil {
		return TaskItem{}, err
	}
	item := TaskItem{ID: id}
	item.apply(f)
	return item, nil
}

// Apply replaces the five mutable fields. IsCompleted is left untouched, so
// an item that already fired stays completed after an edit.
func (t *TaskItem) Apply(f TaskItemFields) (TaskChange, error) {
	if err := f.Validate(); err != nil {
		return TaskChange{}, err
	}
	change := TaskChange{ID: t.ID, Old: t.Fields()}
	t.apply(f)
	change.New = t.Fields()
	change.Completed = t.IsCompleted
	return change, nil
}

func (t *TaskItem) apply(f TaskItemFields) {
	t.Title = f.Title
	t.Description = f.Description
	t.ReminderTime = f.ReminderTime
	t.ReminderBeforeMinutes = f.ReminderBeforeMinutes
	t.Priority = f.Priority
}

// Fields returns the editable fields of the item.
func (t TaskItem) Fields() TaskItemFields {
	return TaskItemFields{
		Title:                 t.Title,
		Description:           t.Description,
		ReminderTime:          t.ReminderTime,
		ReminderBeforeMinutes: t.ReminderBeforeMinutes,
		Priority:              t.Priority,
	}
}

// DueAt returns the effective due instant: the reminder time minus the lead
// time. It is computed from the current fields on every call.
func (t TaskItem) DueAt() time.Time {
	return t.ReminderTime.Add(-time.Duration(t.ReminderBeforeMinutes) * time.Minute)
}

// IsDue reports whether the reminder should fire at now: the item is still
// pending and its effective due instant is not after now.
func (t TaskItem) IsDue(now time.Time) bool {
	return !t.IsCompleted && !t.DueAt().After(now)
}

// StatusLabel returns "Completed" or "Pending" for display.
func (t TaskItem) StatusLabel() string {
	if t.IsCompleted {
		return "Completed"
	}
	return "Pending"
}

// TaskChange records an update as old and new field values.
type TaskChange struct {
	ID        int
	Old       TaskItemFields
	New       TaskItemFields
	Completed bool
}
