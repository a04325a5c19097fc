package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/tickler/internal/domain"
	"github.com/phrazzld/tickler/internal/platform/logger"
	"github.com/phrazzld/tickler/internal/store"
)

const taskItemEntity = "task_item"

// TaskItemStore implements store.TaskItemStore in memory.
//
// A single mutex guards both the item slice and the id counter, so id
// assignment and insertion happen in one critical section. Items are kept in
// insertion order; lookups by id go through an index into that slice.
type TaskItemStore struct {
	mu     sync.Mutex
	items  []domain.TaskItem
	byID   map[int]int
	nextID int
	logger *slog.Logger
}

// NewTaskItemStore creates an empty store whose first id is 1.
// If logger is nil, slog.Default() is used.
func NewTaskItemStore(logger *slog.Logger) *TaskItemStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskItemStore{
		items:  make([]domain.TaskItem, 0, 16),
		byID:   make(map[int]int),
		nextID: 1,
		logger: logger.With(slog.String("component", "task_item_store")),
	}
}

// Ensure TaskItemStore implements store.TaskItemStore interface
var _ store.TaskItemStore = (*TaskItemStore)(nil)

// AddTask implements store.TaskItemStore.AddTask.
func (s *TaskItemStore) AddTask(ctx context.Context, fields domain.TaskItemFields) (domain.TaskItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validation happens before the lock so a rejected item never consumes an id.
	if err := fields.Validate(); err != nil {
		log.Warn("task item validation failed during add",
			slog.String("error", err.Error()),
			slog.String("title", fields.Title))
		return domain.TaskItem{}, store.InvalidEntityError(taskItemEntity, "add", err)
	}

	s.mu.Lock()
	item, err := domain.NewTaskItem(s.nextID, fields)
	if err == nil {
		s.nextID++
		s.byID[item.ID] = len(s.items)
		s.items = append(s.items, item)
	}
	s.mu.Unlock()

	if err != nil {
		return domain.TaskItem{}, store.InvalidEntityError(taskItemEntity, "add", err)
	}

	log.Info("task added",
		slog.String("title", item.Title),
		slog.Int("id", item.ID),
		slog.Time("reminder_time", item.ReminderTime))
	return item, nil
}

// UpdateTask implements store.TaskItemStore.UpdateTask.
func (s *TaskItemStore) UpdateTask(
	ctx context.Context,
	id int,
	fields domain.TaskItemFields,
) (domain.TaskChange, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := fields.Validate(); err != nil {
		log.Warn("task item validation failed during update",
			slog.String("error", err.Error()),
			slog.Int("id", id))
		return domain.TaskChange{}, store.InvalidEntityError(taskItemEntity, "update", err)
	}

	s.mu.Lock()
	idx, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		log.Debug("task item not found for update", slog.Int("id", id))
		return domain.TaskChange{}, store.ErrTaskItemNotFound
	}
	change, err := s.items[idx].Apply(fields)
	s.mu.Unlock()

	if err != nil {
		return domain.TaskChange{}, store.InvalidEntityError(taskItemEntity, "update", err)
	}

	log.Info("task updated",
		slog.Int("id", id),
		slog.Group("title", slog.String("old", change.Old.Title), slog.String("new", change.New.Title)),
		slog.Group("description",
			slog.String("old", change.Old.Description),
			slog.String("new", change.New.Description)),
		slog.Group("reminder_time",
			slog.Time("old", change.Old.ReminderTime),
			slog.Time("new", change.New.ReminderTime)),
		slog.Group("reminder_before_minutes",
			slog.Int("old", change.Old.ReminderBeforeMinutes),
			slog.Int("new", change.New.ReminderBeforeMinutes)),
		slog.Group("priority",
			slog.String("old", change.Old.Priority.String()),
			slog.String("new", change.New.Priority.String())),
		slog.Bool("is_completed", change.Completed))
	return change, nil
}

// GetTask implements store.TaskItemStore.GetTask.
func (s *TaskItemStore) GetTask(ctx context.Context, id int) (domain.TaskItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return domain.TaskItem{}, store.ErrTaskItemNotFound
	}
	return s.items[idx], nil
}

// ListOrderedByPriority implements store.TaskItemStore.ListOrderedByPriority.
func (s *TaskItemStore) ListOrderedByPriority(ctx context.Context) ([]domain.TaskItem, error) {
	s.mu.Lock()
	out := s.snapshotLocked(func(domain.TaskItem) bool { return true })
	s.mu.Unlock()

	// The snapshot is in insertion order, so a stable sort keeps ties in that order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out, nil
}

// ListByStatus implements store.TaskItemStore.ListByStatus.
func (s *TaskItemStore) ListByStatus(ctx context.Context, completed bool) ([]domain.TaskItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked(func(t domain.TaskItem) bool { return t.IsCompleted == completed }), nil
}

// MarkCompletedIfDue implements store.TaskItemStore.MarkCompletedIfDue.
func (s *TaskItemStore) MarkCompletedIfDue(ctx context.Context, now time.Time) ([]domain.TaskItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fired []domain.TaskItem
	for i := range s.items {
		if !s.items[i].IsDue(now) {
			continue
		}
		s.items[i].IsCompleted = true
		fired = append(fired, s.items[i])
	}
	return fired, nil
}

// Count implements store.TaskItemStore.Count.
func (s *TaskItemStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items), nil
}

// snapshotLocked copies the items matching keep. Callers must hold s.mu.
func (s *TaskItemStore) snapshotLocked(keep func(domain.TaskItem) bool) []domain.TaskItem {
	out := make([]domain.TaskItem, 0, len(s.items))
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
