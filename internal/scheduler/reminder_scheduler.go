package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tickler/internal/domain"
	"github.com/phrazzld/tickler/internal/events"
	"github.com/phrazzld/tickler/internal/platform/logger"
	"github.com/phrazzld/tickler/internal/store"
	"github.com/phrazzld/tickler/internal/task"
)

// DefaultPollInterval is the wait between two due checks.
const DefaultPollInterval = 60 * time.Second

// Errors returned by NewReminderScheduler.
var (
	ErrNilStore   = errors.New("task item store cannot be nil")
	ErrNilQueue   = errors.New("task queue cannot be nil")
	ErrNilEmitter = errors.New("event emitter cannot be nil")
)

// ErrCyclePanic wraps a panic recovered from a single check cycle.
var ErrCyclePanic = errors.New("scheduler cycle panicked")

// Config holds scheduler settings.
type Config struct {
	// PollInterval is the wait between cycles. Zero or negative means DefaultPollInterval.
	PollInterval time.Duration
}

// Option customizes a ReminderScheduler.
type Option func(*ReminderScheduler)

// WithClock replaces time.Now as the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(s *ReminderScheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// ReminderScheduler periodically completes due task items and queues a
// notification for each one.
type ReminderScheduler struct {
	store    store.TaskItemStore
	queue    task.TaskQueueWriter
	emitter  events.EventEmitter
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewReminderScheduler creates a scheduler. It does not start any goroutine.
func NewReminderScheduler(
	taskStore store.TaskItemStore,
	queue task.TaskQueueWriter,
	emitter events.EventEmitter,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) (*ReminderScheduler, error) {
	if taskStore == nil {
		return nil, ErrNilStore
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if emitter == nil {
		return nil, ErrNilEmitter
	}
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	s := &ReminderScheduler{
		store:    taskStore,
		queue:    queue,
		emitter:  emitter,
		interval: interval,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "reminder_scheduler")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Interval returns the configured wait between cycles.
func (s *ReminderScheduler) Interval() time.Duration {
	return s.interval
}

// Run executes a cycle immediately and then once per interval until ctx is
// cancelled. A failing cycle is logged and the loop keeps going. Run returns
// nil when ctx is cancelled.
func (s *ReminderScheduler) Run(ctx context.Context) error {
	s.logger.Info("reminder scheduler started", slog.Duration("poll_interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("scheduler cycle failed", slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single due check and returns the items it fired.
// A panic while marking items is recovered and returned as ErrCyclePanic.
// A panic while delivering one item is logged and the remaining items are
// still delivered.
func (s *ReminderScheduler) RunOnce(ctx context.Context) (fired []domain.TaskItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			fired = nil
			err = fmt.Errorf("%w: %v", ErrCyclePanic, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	fired, err = s.store.MarkCompletedIfDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark due task items: %w", err)
	}

	for _, item := range fired {
		s.logger.Info("reminder fired",
			slog.Int("id", item.ID),
			slog.String("title", item.Title),
			slog.Time("due_at", item.DueAt()))
		s.dispatch(ctx, item)
	}

	if len(fired) > 0 {
		s.logger.Debug("scheduler cycle completed",
			slog.Int("fired_count", len(fired)),
			slog.Time("now", now))
	}
	return fired, nil
}

// dispatch queues the notification for item. If the queue rejects it the
// notification is delivered inline, since the item is already completed and
// would otherwise never be surfaced.
func (s *ReminderScheduler) dispatch(ctx context.Context, item domain.TaskItem) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("reminder delivery panicked",
				slog.Int("id", item.ID),
				slog.String("panic", fmt.Sprint(r)))
		}
	}()

	notification, err := task.NewReminderNotificationTask(item, s.emitter)
	if err != nil {
		s.logger.Error("failed to build reminder notification",
			slog.Int("id", item.ID),
			slog.String("error", err.Error()))
		return
	}

	err = s.queue.Enqueue(notification)
	if err == nil {
		return
	}

	s.logger.Warn("notification queue rejected reminder, delivering inline",
		slog.Int("id", item.ID),
		slog.String("error", err.Error()))

	inlineCtx := logger.WithLogger(ctx, s.logger)
	if err := notification.Execute(inlineCtx); err != nil {
		s.logger.Error("inline reminder delivery failed",
			slog.Int("id", item.ID),
			slog.String("error", err.Error()))
	}
}
