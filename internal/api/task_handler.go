package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/matveyg/eisenhower-api/internal/api/shared"
	"github.com/matveyg/eisenhower-api/internal/domain"
	"github.com/matveyg/eisenhower-api/internal/platform/logger"
	"github.com/matveyg/eisenhower-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	timeFunc    func() time.Time
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
		timeFunc:    time.Now,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.Create(r.Context(), p, service.NewTaskInput{
		Title:       req.Title,
		Description: req.Description,
		IsImportant: req.IsImportant,
		DeadlineAt:  req.DeadlineAt,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.String("quadrant", string(task.Quadrant)))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task, h.timeFunc()))
}

// Get handles GET /tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, taskID, ok := requirePrincipalAndPathID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), p, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task, h.timeFunc()))
}

// List handles GET /tasks requests, returning every task visible to the
// caller.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(r.Context(), p)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks, h.timeFunc()))
}

// ListByQuadrant handles GET /tasks/quadrant/{quadrant} requests.
// An unknown quadrant token is rejected before storage is touched.
func (h *TaskHandler) ListByQuadrant(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByQuadrant(r.Context(), p, chi.URLParam(r, "quadrant"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks, h.timeFunc()))
}

// ListByStatus handles GET /tasks/status/{status} requests, where status is
// "completed" or "pending".
func (h *TaskHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByStatus(r.Context(), p, chi.URLParam(r, "status"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks, h.timeFunc()))
}

// Search handles GET /tasks/search?q= requests. A search that matches nothing
// is an error, unlike an empty List.
func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < 2 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Search query must be at least 2 characters")
		return
	}

	tasks, err := h.taskService.Search(r.Context(), p, q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks, h.timeFunc()))
}

// DueToday handles GET /tasks/due-today requests.
func (h *TaskHandler) DueToday(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListDueToday(r.Context(), p)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks, h.timeFunc()))
}

// Update handles PATCH /tasks/{id} requests with a partial update.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, taskID, ok := requirePrincipalAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.Update(r.Context(), p, taskID, domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		IsImportant: req.IsImportant,
		DeadlineAt:  req.DeadlineAt,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task, h.timeFunc()))
}

// Complete handles POST /tasks/{id}/complete requests. Completion is not
// idempotent: a repeated call restamps completed_at.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	p, taskID, ok := requirePrincipalAndPathID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Complete(r.Context(), p, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task, h.timeFunc()))
}

// Delete handles DELETE /tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, taskID, ok := requirePrincipalAndPathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.taskService.Delete(r.Context(), p, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		ID:    deleted.ID,
		Title: deleted.Title,
	})
}
