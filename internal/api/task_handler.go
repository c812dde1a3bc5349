package api

import (
	"log/slog"
	"net/http"

	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/service"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// TaskResponse is the body of single-task responses.
type TaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"tarefa"`
}

// TaskListResponse is the body of the task list response.
type TaskListResponse struct {
	Tasks store.Page[domain.Task] `json:"tarefas"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	raw, err := shared.DecodeBody(w, r)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), raw)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskResponse{
		Message: "Tarefa cadastrada com sucesso",
		Task:    task,
	})
}

// UpdateTask handles PATCH /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	raw, err := shared.DecodeBody(w, r)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), pathParam(r, "id"), raw)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Message: "Tarefa atualizada com sucesso",
		Task:    task,
	})
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	page, err := h.tasks.ListTasks(r.Context(), r.URL.Query())
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: page})
}

// FindTaskByTitle handles GET /tasks/titulo/{titulo}. The task is returned
// without an envelope.
func (h *TaskHandler) FindTaskByTitle(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.FindTaskByTitle(r.Context(), pathParam(r, "titulo"))
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// FindTasksByStatus handles GET /tasks/status/{status}. The list is returned
// without an envelope.
func (h *TaskHandler) FindTasksByStatus(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.FindTasksByStatus(r.Context(), pathParam(r, "status"))
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// FindTasksByDueDate handles GET /tasks/dataLimite/{dataLimite}.
func (h *TaskHandler) FindTasksByDueDate(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.FindTasksByDueDate(r.Context(), pathParam(r, "dataLimite"))
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.DeleteTask(r.Context(), pathParam(r, "id"))
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Message: "Tarefa deletada com sucesso",
		Task:    task,
	})
}
