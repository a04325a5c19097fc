package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReminderTimeLayout is the fixed dd.MM.yyyy HH:mm pattern front ends accept.
const ReminderTimeLayout = "02.01.2006 15:04"

// ErrInvalidReminderTime is returned when a reminder time cannot be parsed.
// Callers must ask for the value again; there is no fallback instant.
var ErrInvalidReminderTime = fmt.Errorf(
	"%w: %w: reminder time must match dd.MM.yyyy HH:mm",
	ErrValidation,
	ErrInvalidFormat,
)

// ParseReminderTime parses s with ReminderTimeLayout, interpreting it as UTC.
func ParseReminderTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ReminderTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidReminderTime, s)
	}
	return t, nil
}

// FormatReminderTime renders t in UTC using ReminderTimeLayout.
func FormatReminderTime(t time.Time) string {
	return t.UTC().Format(ReminderTimeLayout)
}
