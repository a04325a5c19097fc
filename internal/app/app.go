// Package app wires the tickler components into a runnable application.
// Both the HTTP server and the interactive CLI build their dependency graph
// through New so the scheduler and notification workers behave identically
// behind either front end.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tickler/internal/config"
	"github.com/phrazzld/tickler/internal/events"
	"github.com/phrazzld/tickler/internal/platform/memory"
	"github.com/phrazzld/tickler/internal/scheduler"
	"github.com/phrazzld/tickler/internal/service"
	"github.com/phrazzld/tickler/internal/service/auth"
	"github.com/phrazzld/tickler/internal/task"
	"golang.org/x/sync/errgroup"
)

// Application holds all the shared application dependencies.
type Application struct {
	Config *config.Config
	Logger *slog.Logger

	Store   *memory.TaskItemStore
	Emitter *events.InMemoryEventEmitter

	Queue     *task.TaskQueue
	Pool      *task.WorkerPool
	Scheduler *scheduler.ReminderScheduler

	ReminderService service.ReminderService

	// JWTService is nil when authentication is disabled.
	JWTService auth.JWTService
}

// Option customizes an Application during New.
type Option func(*options)

type options struct {
	schedulerOpts []scheduler.Option
}

// WithSchedulerOptions forwards options to the reminder scheduler, e.g. a
// fixed clock in tests.
func WithSchedulerOptions(opts ...scheduler.Option) Option {
	return func(o *options) {
		o.schedulerOpts = append(o.schedulerOpts, opts...)
	}
}

// New creates an Application with every dependency initialized. Nothing is
// started until Run is called.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	app.Store = memory.NewTaskItemStore(logger)
	app.Emitter = events.NewInMemoryEventEmitter(logger)
	app.Emitter.RegisterHandler(NewEventLogHandler(logger))

	app.Queue = task.NewTaskQueue(cfg.Scheduler.NotifyQueueSize, logger)
	app.Pool = task.NewWorkerPool(app.Queue, task.WorkerPoolConfig{
		WorkerCount: cfg.Scheduler.NotifyWorkers,
	}, logger)
	app.Pool.SetErrorHandler(func(t task.Task, err error) {
		logger.Error("notification task failed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
	})

	var err error
	app.Scheduler, err = scheduler.NewReminderScheduler(
		app.Store,
		app.Queue,
		app.Emitter,
		scheduler.Config{PollInterval: cfg.Scheduler.PollInterval()},
		logger,
		o.schedulerOpts...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder scheduler: %w", err)
	}

	app.ReminderService, err = service.NewReminderService(app.Store, app.Scheduler, app.Emitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder service: %w", err)
	}

	if cfg.Auth.Enabled() {
		app.JWTService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	} else {
		logger.Warn("JWT authentication disabled, API is unauthenticated")
	}

	logger.Info("Application initialized successfully",
		"poll_interval", cfg.Scheduler.PollInterval(),
		"notify_workers", cfg.Scheduler.NotifyWorkers)
	return app, nil
}

// Run starts the notification workers and the reminder scheduler, plus any
// extra components, and blocks until ctx is cancelled or one of them fails.
// Once everything has returned the queue is closed and any notification
// still in it is delivered.
func (a *Application) Run(ctx context.Context, extra ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.Pool.Run(gctx) })
	g.Go(func() error { return a.Scheduler.Run(gctx) })
	for _, fn := range extra {
		fn := fn
		g.Go(func() error { return fn(gctx) })
	}

	err := g.Wait()
	a.Queue.Close()
	if n := a.Pool.Drain(); n > 0 {
		a.Logger.Info("delivered notifications queued during shutdown", "count", n)
	}
	a.Logger.Info("Application shutdown completed")
	return err
}
