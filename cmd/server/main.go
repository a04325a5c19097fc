// Package main implements the entry point for the tickler HTTP server,
// which exposes the reminder tracker over a JSON API and fires reminders
// in the background.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tickler/internal/app"
	"github.com/phrazzld/tickler/internal/config"
	"github.com/phrazzld/tickler/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("tickler server failed: %v", err)
	}
}

// run loads configuration, sets up logging and runs the server until ctx is
// cancelled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	if cfg.Auth.Enabled() {
		slog.Debug("Auth configuration", "jwt_secret_present", true)
	}

	a, err := app.New(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	srv := newServer(a)
	return a.Run(ctx, srv.Run)
}
