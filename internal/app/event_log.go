package app

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tickler/internal/events"
)

// EventLogHandler writes every emitted event to the structured log.
type EventLogHandler struct {
	logger *slog.Logger
}

// NewEventLogHandler creates a handler logging through logger.
func NewEventLogHandler(logger *slog.Logger) *EventLogHandler {
	return &EventLogHandler{logger: logger.With("component", "event_log")}
}

// HandleEvent implements events.EventHandler.
func (h *EventLogHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	level := slog.LevelDebug
	if event.Type == events.TypeReminderFired {
		level = slog.LevelInfo
	}
	h.logger.Log(ctx, level, "event emitted",
		"event_id", event.ID.String(),
		"event_type", event.Type,
		"payload", string(event.Payload))
	return nil
}

var _ events.EventHandler = (*EventLogHandler)(nil)
