package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// MockUserStore implements store.UserStore for testing. Function fields
// override single methods; otherwise users live in an in-memory map that
// enforces handle and email uniqueness like the real stores.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn     func(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	ListFn       func(ctx context.Context, filter store.Filter, page store.PageRequest) (store.Page[domain.User], error)
	DeleteFn     func(ctx context.Context, id string) (*domain.User, error)

	// Err, when set, is returned by every default implementation.
	Err error

	// LastFilter and LastPage record the arguments of the last List call.
	LastFilter store.Filter
	LastPage   store.PageRequest

	Now func() time.Time

	mu    sync.Mutex
	users map[string]domain.User
	order []string
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore(users ...domain.User) *MockUserStore {
	m := &MockUserStore{Now: time.Now, users: make(map[string]domain.User)}
	for _, u := range users {
		m.put(u)
	}
	return m
}

func (m *MockUserStore) put(u domain.User) {
	if m.users == nil {
		m.users = make(map[string]domain.User)
	}
	if _, exists := m.users[u.ID]; !exists {
		m.order = append(m.order, u.ID)
	}
	m.users[u.ID] = u
}

func (m *MockUserStore) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now().UTC()
}

// conflict reports the first unique field of u already used by another user.
func (m *MockUserStore) conflict(u domain.User) error {
	for _, other := range m.users {
		if other.ID == u.ID {
			continue
		}
		if other.Email == u.Email {
			return store.NewDuplicateError("user", "email", nil)
		}
		if other.Handle == u.Handle {
			return store.NewDuplicateError("user", "apelido", nil)
		}
	}
	return nil
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	created := *user
	if created.ID == "" {
		created.ID = domain.NewID()
	}
	if err := m.conflict(created); err != nil {
		return nil, err
	}
	now := m.now()
	created.CreatedAt, created.UpdatedAt = now, now
	m.put(created)
	return &created, nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	patch.Apply(&u, m.now())
	if err := m.conflict(u); err != nil {
		return nil, err
	}
	m.users[id] = u
	return &u, nil
}

// List implements the UserStore interface. The filter is recorded but not
// applied; every stored user is paginated, newest first.
func (m *MockUserStore) List(ctx context.Context, filter store.Filter, page store.PageRequest) (store.Page[domain.User], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastFilter, m.LastPage = filter, page
	if m.Err != nil {
		return store.Page[domain.User]{}, m.Err
	}

	all := make([]domain.User, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if u, ok := m.users[m.order[i]]; ok {
			all = append(all, u)
		}
	}
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

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	delete(m.users, id)
	return &u, nil
}
