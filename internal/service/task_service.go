package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/query"
	"github.com/RuanLopes1350/AnotaAi/internal/redact"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
	"github.com/RuanLopes1350/AnotaAi/internal/validation"
)

// TaskService provides the task use cases. Raw payloads are the decoded JSON
// request bodies; they are validated here before reaching the store.
type TaskService interface {
	// CreateTask validates raw and stores a new task.
	CreateTask(ctx context.Context, raw map[string]any) (*domain.Task, error)

	// UpdateTask applies a partial update to the task with the given id.
	UpdateTask(ctx context.Context, id string, raw map[string]any) (*domain.Task, error)

	// ListTasks returns one page of the tasks matching the query values.
	ListTasks(ctx context.Context, values url.Values) (store.Page[domain.Task], error)

	// FindTaskByTitle returns the first task whose title equals title exactly.
	FindTaskByTitle(ctx context.Context, title string) (*domain.Task, error)

	// FindTasksByStatus returns every task with the given status. An empty
	// result is reported as a NotFoundError.
	FindTasksByStatus(ctx context.Context, status string) ([]domain.Task, error)

	// FindTasksByDueDate returns every task due at the given instant. An empty
	// result is reported as a NotFoundError.
	FindTasksByDueDate(ctx context.Context, due string) ([]domain.Task, error)

	// DeleteTask removes the task and returns it as it was.
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	tasks     store.TaskStore
	validator *validation.Validator
	queries   *query.Builder
	logger    *slog.Logger
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService
func NewTaskService(tasks store.TaskStore, v *validation.Validator, logger *slog.Logger) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:     tasks,
		validator: v,
		queries:   query.NewBuilder(v),
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask validates raw and stores a new task
func (s *TaskServiceImpl) CreateTask(ctx context.Context, raw map[string]any) (*domain.Task, error) {
	op := startOperation(ctx, s.logger, "create_task", payload(raw))

	task, err := s.validator.TaskCreate(raw)
	if err != nil {
		return nil, op.fail(err)
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, op.fail(translateStoreError(err, "create task", lookup{}))
	}

	op.succeed(slog.String("task_id", created.ID))
	return created, nil
}

// UpdateTask applies a partial update to the task with the given id
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id string, raw map[string]any) (*domain.Task, error) {
	op := startOperation(ctx, s.logger, "update_task", slog.String("task_id", id), payload(raw))

	if err := s.validator.ValidateID(id); err != nil {
		return nil, op.fail(err)
	}
	patch, err := s.validator.TaskUpdate(raw)
	if err != nil {
		return nil, op.fail(err)
	}

	updated, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, op.fail(translateStoreError(err, "update task", lookup{"task", "id", id}))
	}

	op.succeed(slog.String("task_id", updated.ID))
	return updated, nil
}

// ListTasks returns one page of the tasks matching the query values
func (s *TaskServiceImpl) ListTasks(ctx context.Context, values url.Values) (store.Page[domain.Task], error) {
	op := startOperation(ctx, s.logger, "list_tasks", slog.String("query", redact.Values(values).Encode()))

	filter, page, err := s.queries.Tasks(values)
	if err != nil {
		return store.Page[domain.Task]{}, op.fail(err)
	}

	result, err := s.tasks.List(ctx, filter, page)
	if err != nil {
		return store.Page[domain.Task]{}, op.fail(translateStoreError(err, "list tasks", lookup{}))
	}

	op.succeed(slog.Int64("total", result.TotalDocs), slog.Int("returned", len(result.Docs)))
	return result, nil
}

// FindTaskByTitle returns the first task whose title equals title exactly
func (s *TaskServiceImpl) FindTaskByTitle(ctx context.Context, title string) (*domain.Task, error) {
	op := startOperation(ctx, s.logger, "find_task_by_title", slog.String("titulo", title))

	task, err := s.tasks.FindByTitle(ctx, title)
	if err != nil {
		return nil, op.fail(translateStoreError(err, "find task by title", lookup{"task", "titulo", title}))
	}

	op.succeed(slog.String("task_id", task.ID))
	return task, nil
}

// FindTasksByStatus returns every task with the given status. The status is
// not checked against the known values: an unknown status matches nothing.
func (s *TaskServiceImpl) FindTasksByStatus(ctx context.Context, status string) ([]domain.Task, error) {
	op := startOperation(ctx, s.logger, "find_tasks_by_status", slog.String("status", status))

	tasks, err := s.tasks.FindByStatus(ctx, domain.TaskStatus(status))
	if err != nil {
		return nil, op.fail(translateStoreError(err, "find tasks by status", lookup{"task", "status", status}))
	}
	if len(tasks) == 0 {
		return nil, op.fail(domain.NewNotFoundError("task", "status", status))
	}

	op.succeed(slog.Int("returned", len(tasks)))
	return tasks, nil
}

// FindTasksByDueDate returns every task due at the given instant
func (s *TaskServiceImpl) FindTasksByDueDate(ctx context.Context, due string) ([]domain.Task, error) {
	op := startOperation(ctx, s.logger, "find_tasks_by_due_date", slog.String("dataLimite", due))

	at, err := s.validator.DueDate(due)
	if err != nil {
		return nil, op.fail(err)
	}

	tasks, err := s.tasks.FindByDueDate(ctx, at)
	if err != nil {
		return nil, op.fail(translateStoreError(err, "find tasks by due date", lookup{"task", "dataLimite", due}))
	}
	if len(tasks) == 0 {
		return nil, op.fail(domain.NewNotFoundError("task", "dataLimite", due))
	}

	op.succeed(slog.Int("returned", len(tasks)))
	return tasks, nil
}

// DeleteTask removes the task and returns it as it was
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	op := startOperation(ctx, s.logger, "delete_task", slog.String("task_id", id))

	if err := s.validator.ValidateID(id); err != nil {
		return nil, op.fail(err)
	}

	deleted, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return nil, op.fail(translateStoreError(err, "delete task", lookup{"task", "id", id}))
	}

	op.succeed(slog.String("task_id", deleted.ID))
	return deleted, nil
}
