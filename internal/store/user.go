package store

import (
	"context"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Handle and email uniqueness is enforced here, by the storage engine.
type UserStore interface {
	// Create inserts a user with already hashed secrets. The store assigns the
	// identifier when it is empty and stamps both timestamps.
	// Returns a *DuplicateError if the handle or the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID retrieves a user by identifier.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update applies patch to the user with the given id and returns the
	// updated user. Returns ErrUserNotFound if the user does not exist and a
	// *DuplicateError if the new handle or email is taken.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)

	// List returns one page of the users matching filter.
	List(ctx context.Context, filter Filter, page PageRequest) (Page[domain.User], error)

	// Delete removes the user and returns it as it was before deletion.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id string) (*domain.User, error)
}
