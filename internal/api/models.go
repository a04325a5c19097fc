package api

import (
	"strconv"

	"github.com/phrazzld/tickler/internal/domain"
)

// taskToResponse converts a domain.TaskItem to a TaskResponse
func taskToResponse(item domain.TaskItem) TaskResponse {
	return TaskResponse{
		ID:                    item.ID,
		Title:                 item.Title,
		Description:           item.Description,
		ReminderTime:          domain.FormatReminderTime(item.ReminderTime),
		ReminderBeforeMinutes: item.ReminderBeforeMinutes,
		DueAt:                 item.DueAt().UTC(),
		Priority:              item.Priority.String(),
		IsCompleted:           item.IsCompleted,
		Status:                item.StatusLabel(),
	}
}

// tasksToResponse converts a slice, always returning a non-nil slice so the
// JSON body is [] rather than null.
func tasksToResponse(items []domain.TaskItem) []TaskResponse {
	out := make([]TaskResponse, 0, len(items))
	for _, item := range items {
		out = append(out, taskToResponse(item))
	}
	return out
}

// changeToResponse renders every field of a TaskChange as strings.
func changeToResponse(c domain.TaskChange) map[string]Change {
	return map[string]Change{
		"title":       {Old: c.Old.Title, New: c.New.Title},
		"description": {Old: c.Old.Description, New: c.New.Description},
		"reminder_time": {
			Old: domain.FormatReminderTime(c.Old.ReminderTime),
			New: domain.FormatReminderTime(c.New.ReminderTime),
		},
		"reminder_before_minutes": {
			Old: itoa(c.Old.ReminderBeforeMinutes),
			New: itoa(c.New.ReminderBeforeMinutes),
		},
		"priority": {Old: c.Old.Priority.String(), New: c.New.Priority.String()},
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
