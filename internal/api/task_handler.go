package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasktracker/internal/api/shared"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/phrazzld/tasktracker/internal/service"
)

// TaskIDParam is the chi URL parameter holding the task id.
const TaskIDParam = "task_id"

// MsgTaskCompleted is returned when a task is marked as completed.
const MsgTaskCompleted = "Task marked as completed"

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
// If logger is nil, a default logger will be used.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// AddTask handles POST /tasks requests
func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("failed to decode task request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("task request failed validation", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgTaskFieldsRequired)
		return
	}

	task, err := h.taskService.AddTask(r.Context(), req.Title, req.Deadline)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListActiveTasks handles GET /tasks/active requests
func (h *TaskHandler) ListActiveTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListActiveTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListAllTasks handles GET /tasks/all requests
func (h *TaskHandler) ListAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListAllTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CompleteTask handles PUT /tasks/{task_id}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	taskID := chi.URLParam(r, TaskIDParam)

	if err := h.taskService.CompleteTask(r.Context(), taskID); err != nil {
		log.Debug("task completion failed", slog.String("task_id", taskID))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgTaskCompleted)
}

// Health handles GET /health requests. It answers 503 when the store
// cannot be reached.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Ping(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, MsgStoreUnavailable, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
