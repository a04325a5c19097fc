package store

import (
	"context"
	"time"

	"github.com/phrazzld/tickler/internal/domain"
)

// TaskItemStore defines the interface for task item storage.
// Every operation is mutually exclusive with every other operation on the
// same store, and every returned TaskItem is a snapshot.
type TaskItemStore interface {
	// AddTask validates the fields, assigns the next id (1, 2, 3, ...) and
	// stores a pending item. Returns ErrInvalidEntity-wrapped validation
	// errors without assigning an id.
	AddTask(ctx context.Context, fields domain.TaskItemFields) (domain.TaskItem, error)

	// UpdateTask replaces the five mutable fields of the item with the given id.
	// The completion flag is not reset.
	// Returns ErrTaskItemNotFound if no item has that id, leaving the store unchanged.
	UpdateTask(ctx context.Context, id int, fields domain.TaskItemFields) (domain.TaskChange, error)

	// GetTask returns a snapshot of a single item.
	// Returns ErrTaskItemNotFound if no item has that id.
	GetTask(ctx context.Context, id int) (domain.TaskItem, error)

	// ListOrderedByPriority returns all items sorted Low, Medium, High,
	// keeping insertion order among equal priorities.
	ListOrderedByPriority(ctx context.Context) ([]domain.TaskItem, error)

	// ListByStatus returns the items whose completion flag equals completed,
	// in insertion order.
	ListByStatus(ctx context.Context, completed bool) ([]domain.TaskItem, error)

	// MarkCompletedIfDue completes every pending item whose effective due
	// instant is not after now and returns their snapshots. The scan and the
	// mutation form one critical section, so an item is returned at most once.
	MarkCompletedIfDue(ctx context.Context, now time.Time) ([]domain.TaskItem, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)
}
