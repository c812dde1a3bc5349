package store

import (
	"context"
	"time"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Identifiers are assumed well-formed; callers check them first.
type TaskStore interface {
	// Create inserts a task. The store assigns the identifier when it is empty
	// and stamps both timestamps. Returns the stored task.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Update applies patch to the task with the given id and returns the
	// updated task. Returns ErrTaskNotFound if no task has that id.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// List returns one page of the tasks matching filter.
	List(ctx context.Context, filter Filter, page PageRequest) (Page[domain.Task], error)

	// FindByTitle returns the first task whose title equals title exactly.
	// Returns ErrTaskNotFound when there is none.
	FindByTitle(ctx context.Context, title string) (*domain.Task, error)

	// FindByStatus returns every task with the given status, possibly none.
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)

	// FindByDueDate returns every task due at exactly the given instant.
	FindByDueDate(ctx context.Context, due time.Time) ([]domain.Task, error)

	// Delete removes the task and returns it as it was before deletion.
	// Returns ErrTaskNotFound if no task has that id.
	Delete(ctx context.Context, id string) (*domain.Task, error)

	// CountByOwner returns how many tasks reference the given user.
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}
