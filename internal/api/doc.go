// Package api handles incoming HTTP requests, request validation and
// response formatting for the task and reminder endpoints. It translates
// HTTP concerns into calls on service.ReminderService.
package api
