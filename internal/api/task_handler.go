package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkovacs/tasknest/internal/api/shared"
	"github.com/dkovacs/tasknest/internal/platform/logger"
	"github.com/dkovacs/tasknest/internal/redact"
	"github.com/dkovacs/tasknest/internal/service"
	"github.com/dkovacs/tasknest/internal/store"
)

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Content  string  `json:"content" validate:"required"`
	Category *string `json:"category"`
}

// UpdateTaskRequest represents the request body for updating a task.
// Both fields are optional but at least one must be present.
type UpdateTaskRequest struct {
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// CompleteTaskRequest represents the request body for toggling completion.
// A pointer distinguishes an absent field from an explicit false.
type CompleteTaskRequest struct {
	Completed *bool `json:"completed"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// requireUserID extracts the authenticated user's ID from the request
// context. A missing ID means the auth middleware did not run; the request
// is rejected rather than served unscoped.
func (h *TaskHandler) requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// parseTaskID parses the {id} URL parameter.
func (h *TaskHandler) parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	taskID, err := uuid.Parse(pathID)
	if err != nil {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Warn("invalid task ID format", slog.String("task_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return uuid.Nil, false
	}
	return taskID, true
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing or invalid content")
		return
	}
	if req.Content == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing or invalid content")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, req.Content, req.Category)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusBadRequest {
			safeMessage = "Missing or invalid content"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{Task: taskToResponse(task)})
}

// ListTasks handles GET /tasks requests with an optional ?category= filter
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	category := r.URL.Query().Get("category")

	tasks, err := h.taskService.ListTasks(r.Context(), userID, category)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListEnvelope{Tasks: tasksToResponse(tasks)})
}

// UpdateTask handles PUT /tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing content or category")
		return
	}
	if req.Content == nil && req.Category == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing content or category")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, taskID, store.TaskUpdate{
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusBadRequest {
			safeMessage = "Missing content or category"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{Task: taskToResponse(task)})
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{Success: true})
}

// CompleteTask handles PATCH /tasks/{id}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	var req CompleteTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing or invalid completed status")
		return
	}
	if req.Completed == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing or invalid completed status")
		return
	}

	task, err := h.taskService.SetTaskCompleted(r.Context(), userID, taskID, *req.Completed)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{Task: taskToResponse(task)})
}

// Progress handles GET /tasks/progress requests
func (h *TaskHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	progress, err := h.taskService.Progress(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to get progress", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}
