package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. Function fields
// override single methods; otherwise tasks live in an in-memory map.
type MockTaskStore struct {
	CreateFn        func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateFn        func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	ListFn          func(ctx context.Context, filter store.Filter, page store.PageRequest) (store.Page[domain.Task], error)
	FindByTitleFn   func(ctx context.Context, title string) (*domain.Task, error)
	FindByStatusFn  func(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)
	FindByDueDateFn func(ctx context.Context, due time.Time) ([]domain.Task, error)
	DeleteFn        func(ctx context.Context, id string) (*domain.Task, error)
	CountByOwnerFn  func(ctx context.Context, ownerID string) (int64, error)

	// Err, when set, is returned by every default implementation.
	Err error

	// LastFilter and LastPage record the arguments of the last List call.
	LastFilter store.Filter
	LastPage   store.PageRequest

	Now func() time.Time

	mu    sync.Mutex
	tasks map[string]domain.Task
	order []string
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore(tasks ...domain.Task) *MockTaskStore {
	m := &MockTaskStore{Now: time.Now, tasks: make(map[string]domain.Task)}
	for _, t := range tasks {
		m.put(t)
	}
	return m
}

func (m *MockTaskStore) put(t domain.Task) {
	if m.tasks == nil {
		m.tasks = make(map[string]domain.Task)
	}
	if _, exists := m.tasks[t.ID]; !exists {
		m.order = append(m.order, t.ID)
	}
	m.tasks[t.ID] = t
}

func (m *MockTaskStore) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now().UTC()
}

// all returns the stored tasks, newest first.
func (m *MockTaskStore) all() []domain.Task {
	out := make([]domain.Task, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if t, ok := m.tasks[m.order[i]]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	created := *task
	if created.ID == "" {
		created.ID = domain.NewID()
	}
	now := m.now()
	created.CreatedAt, created.UpdatedAt = now, now
	m.put(created)
	return &created, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	patch.Apply(&t, m.now())
	m.tasks[id] = t
	return &t, nil
}

// List implements the TaskStore interface. The filter is recorded but not
// applied; every stored task is paginated.
func (m *MockTaskStore) List(ctx context.Context, filter store.Filter, page store.PageRequest) (store.Page[domain.Task], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastFilter, m.LastPage = filter, page
	if m.Err != nil {
		return store.Page[domain.Task]{}, m.Err
	}

	all := m.all()
	start := int(page.Skip())
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return store.NewPage(all[start:end], int64(len(all)), page), nil
}

// FindByTitle implements the TaskStore interface
func (m *MockTaskStore) FindByTitle(ctx context.Context, title string) (*domain.Task, error) {
	if m.FindByTitleFn != nil {
		return m.FindByTitleFn(ctx, title)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.order {
		if t, ok := m.tasks[id]; ok && t.Title == title {
			return &t, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// FindByStatus implements the TaskStore interface
func (m *MockTaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	if m.FindByStatusFn != nil {
		return m.FindByStatusFn(ctx, status)
	}
	return m.match(func(t domain.Task) bool { return t.Status == status })
}

// FindByDueDate implements the TaskStore interface
func (m *MockTaskStore) FindByDueDate(ctx context.Context, due time.Time) ([]domain.Task, error) {
	if m.FindByDueDateFn != nil {
		return m.FindByDueDateFn(ctx, due)
	}
	return m.match(func(t domain.Task) bool { return t.DueDate.Equal(due) })
}

func (m *MockTaskStore) match(keep func(domain.Task) bool) ([]domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Task{}
	for _, t := range m.all() {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return &t, nil
}

// CountByOwner implements the TaskStore interface
func (m *MockTaskStore) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	if m.CountByOwnerFn != nil {
		return m.CountByOwnerFn(ctx, ownerID)
	}
	tasks, err := m.match(func(t domain.Task) bool { return t.OwnerID == ownerID })
	return int64(len(tasks)), err
}

// Tasks returns a snapshot of the stored tasks ordered by id.
func (m *MockTaskStore) Tasks() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
