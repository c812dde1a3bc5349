package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

const taskSelectColumns = `id, titulo, descricao, status, data_limite, data_conclusao, usuario, data_criacao, data_ultima_atualizacao`

// TaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type TaskStore struct {
	db     DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewTaskStore(db DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    time.Now,
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Postgres timestamps have microsecond precision.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func (s *TaskStore) mapError(err error, operation string) error {
	return MapError(err, "task", operation, store.ErrTaskNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t           domain.Task
		status      string
		completedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.DueDate, &completedAt,
		&t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	t.DueDate = t.DueDate.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if completedAt.Valid {
		c := completedAt.Time.UTC()
		t.CompletedAt = &c
	}
	return &t, nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	now := storedTime(s.now())
	id := strings.ToLower(task.ID)
	if id == "" {
		id = domain.NewID()
	}

	var completedAt sql.NullTime
	if task.CompletedAt != nil {
		completedAt = sql.NullTime{Time: storedTime(*task.CompletedAt), Valid: true}
	}

	query := `INSERT INTO tasks (` + taskSelectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + taskSelectColumns

	created, err := scanTask(s.db.QueryRowContext(ctx, query,
		id, task.Title, task.Description, string(task.Status), storedTime(task.DueDate),
		completedAt, strings.ToLower(task.OwnerID), now, now))
	if err != nil {
		s.logger.Error("failed to insert task", slog.String("error", err.Error()))
		return nil, s.mapError(err, "create")
	}
	return created, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		set("titulo", *patch.Title)
	}
	if patch.Description != nil {
		set("descricao", *patch.Description)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.DueDate != nil {
		set("data_limite", storedTime(*patch.DueDate))
	}
	if patch.ClearCompletedAt {
		set("data_conclusao", nil)
	} else if patch.CompletedAt != nil {
		set("data_conclusao", storedTime(*patch.CompletedAt))
	}
	if patch.OwnerID != nil {
		set("usuario", strings.ToLower(*patch.OwnerID))
	}
	set("data_ultima_atualizacao", storedTime(s.now()))

	args = append(args, strings.ToLower(id))
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), taskSelectColumns)

	updated, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.mapError(err, "update")
	}
	return updated, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.Filter, page store.PageRequest) (store.Page[domain.Task], error) {
	where, args, err := RenderWhere(filter, taskColumns)
	if err != nil {
		return store.Page[domain.Task]{}, err
	}
	order, err := orderBy(page, taskColumns)
	if err != nil {
		return store.Page[domain.Task]{}, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE `+where, args...).Scan(&total); err != nil {
		return store.Page[domain.Task]{}, s.mapError(err, "count")
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		taskSelectColumns, where, order, len(args)+1, len(args)+2)
	tasks, err := s.query(ctx, query, append(args, page.Limit, page.Skip())...)
	if err != nil {
		return store.Page[domain.Task]{}, s.mapError(err, "list")
	}

	return store.NewPage(tasks, total, page), nil
}

// FindByTitle implements store.TaskStore.FindByTitle
func (s *TaskStore) FindByTitle(ctx context.Context, title string) (*domain.Task, error) {
	query := `SELECT ` + taskSelectColumns + ` FROM tasks WHERE titulo = $1 ORDER BY data_criacao ASC, id ASC LIMIT 1`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, title))
	if err != nil {
		return nil, s.mapError(err, "find")
	}
	return task, nil
}

// FindByStatus implements store.TaskStore.FindByStatus
func (s *TaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	query := `SELECT ` + taskSelectColumns + ` FROM tasks WHERE status = $1 ORDER BY data_criacao DESC, id DESC`
	tasks, err := s.query(ctx, query, string(status))
	if err != nil {
		return nil, s.mapError(err, "find")
	}
	return tasks, nil
}

// FindByDueDate implements store.TaskStore.FindByDueDate
func (s *TaskStore) FindByDueDate(ctx context.Context, due time.Time) ([]domain.Task, error) {
	query := `SELECT ` + taskSelectColumns + ` FROM tasks WHERE data_limite = $1 ORDER BY data_criacao DESC, id DESC`
	tasks, err := s.query(ctx, query, storedTime(due))
	if err != nil {
		return nil, s.mapError(err, "find")
	}
	return tasks, nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	query := `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskSelectColumns
	deleted, err := scanTask(s.db.QueryRowContext(ctx, query, strings.ToLower(id)))
	if err != nil {
		return nil, s.mapError(err, "delete")
	}
	s.logger.Debug("task deleted", slog.String("task_id", deleted.ID))
	return deleted, nil
}

// CountByOwner implements store.TaskStore.CountByOwner
func (s *TaskStore) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE usuario = $1`, strings.ToLower(ownerID)).Scan(&n)
	if err != nil {
		return 0, s.mapError(err, "count")
	}
	return n, nil
}

func (s *TaskStore) query(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
