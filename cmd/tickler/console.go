package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tickler/internal/app"
	"github.com/phrazzld/tickler/internal/console"
	"github.com/phrazzld/tickler/internal/platform/logger"
	"github.com/spf13/cobra"
)

func consoleCmd(configPath *string) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Run the interactive reminder menu with the scheduler in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()

			l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel, Output: f})
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}

			a, err := app.New(cfg, l)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			c := console.New(a.ReminderService, cmd.InOrStdin(), cmd.OutOrStdout(), l)
			a.Emitter.RegisterHandler(c.ReminderHandler())

			// Quitting the menu ends the scheduler and workers too.
			return a.Run(ctx, func(ctx context.Context) error {
				defer stop()
				return c.Run(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "tickler.log", "File receiving the JSON log output")
	return cmd
}
