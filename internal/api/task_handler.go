package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tickler/internal/api/shared"
	"github.com/phrazzld/tickler/internal/domain"
	"github.com/phrazzld/tickler/internal/platform/logger"
	"github.com/phrazzld/tickler/internal/service"
)

// TaskRequest is the body of POST /api/tasks and PUT /api/tasks/{id}.
type TaskRequest struct {
	Title                 string `json:"title" validate:"required,max=200"`
	Description           string `json:"description" validate:"max=2000"`
	ReminderTime          string `json:"reminder_time" validate:"required"`
	ReminderBeforeMinutes *int   `json:"reminder_before_minutes" validate:"omitempty,gte=0"`
	Priority              string `json:"priority" validate:"required,oneof=Low Medium High"`
}

// toFields converts the request into domain fields, parsing the reminder
// time (dd.MM.yyyy HH:mm, UTC) and the priority token.
func (req TaskRequest) toFields() (domain.TaskItemFields, error) {
	at, err := domain.ParseReminderTime(req.ReminderTime)
	if err != nil {
		return domain.TaskItemFields{}, err
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return domain.TaskItemFields{}, err
	}

	lead := 0
	if req.ReminderBeforeMinutes != nil {
		lead = *req.ReminderBeforeMinutes
	}

	return domain.TaskItemFields{
		Title:                 req.Title,
		Description:           req.Description,
		ReminderTime:          at,
		ReminderBeforeMinutes: lead,
		Priority:              priority,
	}, nil
}

// TaskResponse represents a task item in API responses.
type TaskResponse struct {
	ID                    int       `json:"id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	ReminderTime          string    `json:"reminder_time"`
	ReminderBeforeMinutes int       `json:"reminder_before_minutes"`
	DueAt                 time.Time `json:"due_at"`
	Priority              string    `json:"priority"`
	IsCompleted           bool      `json:"is_completed"`
	Status                string    `json:"status"`
}

// UpdateTaskResponse is returned by PUT /api/tasks/{id}.
type UpdateTaskResponse struct {
	Task    TaskResponse      `json:"task"`
	Changes map[string]Change `json:"changes"`
	Notice  string            `json:"notice,omitempty"`
}

// Change is an old/new pair for one field.
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// CheckRemindersResponse is returned by POST /api/reminders/check.
type CheckRemindersResponse struct {
	Fired []TaskResponse `json:"fired"`
}

// completedEditNotice is attached to updates of already-completed items.
const completedEditNotice = "task is already completed; its reminder will not fire again"

// TaskHandler handles task and reminder HTTP requests.
type TaskHandler struct {
	reminderService service.ReminderService
	validator       *validator.Validate
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(reminderService service.ReminderService) *TaskHandler {
	return &TaskHandler{
		reminderService: reminderService,
		validator:       validator.New(),
	}
}

// decodeTaskRequest parses and validates the body, writing a 400 on failure.
func (h *TaskHandler) decodeTaskRequest(w http.ResponseWriter, r *http.Request) (domain.TaskItemFields, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return domain.TaskItemFields{}, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return domain.TaskItemFields{}, false
	}

	fields, err := req.toFields()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return domain.TaskItemFields{}, false
	}
	return fields, true
}

// handleServiceError maps a service error onto the HTTP response.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	item, err := h.reminderService.AddTask(r.Context(), fields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/tasks/"+itoa(item.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(item))
}

// ListTasks handles GET /api/tasks requests. Without a filter the items are
// ordered by priority; ?status=pending|completed returns one partition in
// insertion order.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	completed, filtered, err := parseStatusFilter(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid status filter", err)
		return
	}

	var items []domain.TaskItem
	if filtered {
		items, err = h.reminderService.ListTasksByStatus(r.Context(), completed)
	} else {
		items, err = h.reminderService.ListTasks(r.Context())
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(items))
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid task id", err)
		return
	}

	item, err := h.reminderService.GetTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(item))
}

// UpdateTask handles PUT /api/tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid task id", err)
		return
	}

	fields, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	change, err := h.reminderService.UpdateTask(r.Context(), id, fields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	item, err := h.reminderService.GetTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := UpdateTaskResponse{
		Task:    taskToResponse(item),
		Changes: changeToResponse(change),
	}
	if change.Completed {
		resp.Notice = completedEditNotice
	}

	logger.FromContext(r.Context()).Debug("task updated via API", "task_id", id)
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CheckReminders handles POST /api/reminders/check requests
func (h *TaskHandler) CheckReminders(w http.ResponseWriter, r *http.Request) {
	fired, err := h.reminderService.CheckReminders(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CheckRemindersResponse{Fired: tasksToResponse(fired)})
}
