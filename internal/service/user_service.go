package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/query"
	"github.com/RuanLopes1350/AnotaAi/internal/redact"
	"github.com/RuanLopes1350/AnotaAi/internal/service/auth"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
	"github.com/RuanLopes1350/AnotaAi/internal/validation"
)

// UserService provides the user account use cases.
type UserService interface {
	// CreateUser validates raw, hashes the secret and the security answer and
	// stores a new user.
	CreateUser(ctx context.Context, raw map[string]any) (*domain.User, error)

	// UpdateUser applies a partial update to the user with the given id.
	UpdateUser(ctx context.Context, id string, raw map[string]any) (*domain.User, error)

	// ListUsers returns one page of the users matching the query values.
	ListUsers(ctx context.Context, values url.Values) (store.Page[domain.User], error)

	// DeleteUser removes a user that owns no tasks and returns it as it was.
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users     store.UserStore
	tasks     store.TaskStore
	validator *validation.Validator
	queries   *query.Builder
	secrets   auth.SecretHasher
	answers   auth.SecretHasher
	logger    *slog.Logger
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// UserServiceDeps groups the collaborators of the user service.
type UserServiceDeps struct {
	Users     store.UserStore
	Tasks     store.TaskStore
	Validator *validation.Validator
	// Secrets hashes login secrets, Answers hashes security answers.
	Secrets auth.SecretHasher
	Answers auth.SecretHasher
	Logger  *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(deps UserServiceDeps) UserService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:     deps.Users,
		tasks:     deps.Tasks,
		validator: deps.Validator,
		queries:   query.NewBuilder(deps.Validator),
		secrets:   deps.Secrets,
		answers:   deps.Answers,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// NormalizeSecurityAnswer folds a security answer before hashing and
// comparison, so that "Rex" and " rex" are the same answer.
func NormalizeSecurityAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// CreateUser validates raw and stores a new user
func (s *UserServiceImpl) CreateUser(ctx context.Context, raw map[string]any) (*domain.User, error) {
	op := startOperation(ctx, s.logger, "create_user", payload(raw))

	in, err := s.validator.UserCreate(raw)
	if err != nil {
		return nil, op.fail(err)
	}

	secretHash, err := s.secrets.Hash(in.Secret)
	if err != nil {
		return nil, op.fail(fmt.Errorf("failed to hash secret: %w", err))
	}
	answerHash, err := s.answers.Hash(NormalizeSecurityAnswer(in.SecurityAnswer))
	if err != nil {
		return nil, op.fail(fmt.Errorf("failed to hash security answer: %w", err))
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:               in.Name,
		Handle:             in.Handle,
		Email:              in.Email,
		SecretHash:         secretHash,
		SecurityAnswerHash: answerHash,
		Status:             in.Status,
	})
	if err != nil {
		return nil, op.fail(translateStoreError(err, "create user", lookup{}))
	}

	op.succeed(slog.String("user_id", created.ID))
	return created, nil
}

// UpdateUser applies a partial update to the user with the given id
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, raw map[string]any) (*domain.User, error) {
	op := startOperation(ctx, s.logger, "update_user", slog.String("user_id", id), payload(raw))

	if err := s.validator.ValidateID(id); err != nil {
		return nil, op.fail(err)
	}
	in, err := s.validator.UserUpdate(raw)
	if err != nil {
		return nil, op.fail(err)
	}

	patch := domain.UserPatch{
		Name:   in.Name,
		Handle: in.Handle,
		Email:  in.Email,
		Status: in.Status,
	}
	if in.Secret != nil {
		h, err := s.secrets.Hash(*in.Secret)
		if err != nil {
			return nil, op.fail(fmt.Errorf("failed to hash secret: %w", err))
		}
		patch.SecretHash = &h
	}
	if in.SecurityAnswer != nil {
		h, err := s.answers.Hash(NormalizeSecurityAnswer(*in.SecurityAnswer))
		if err != nil {
			return nil, op.fail(fmt.Errorf("failed to hash security answer: %w", err))
		}
		patch.SecurityAnswerHash = &h
	}

	updated, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, op.fail(translateStoreError(err, "update user", lookup{"user", "id", id}))
	}

	op.succeed(slog.String("user_id", updated.ID))
	return updated, nil
}

// ListUsers returns one page of the users matching the query values
func (s *UserServiceImpl) ListUsers(ctx context.Context, values url.Values) (store.Page[domain.User], error) {
	op := startOperation(ctx, s.logger, "list_users", slog.String("query", redact.Values(values).Encode()))

	filter, page, err := s.queries.Users(values)
	if err != nil {
		return store.Page[domain.User]{}, op.fail(err)
	}

	result, err := s.users.List(ctx, filter, page)
	if err != nil {
		return store.Page[domain.User]{}, op.fail(translateStoreError(err, "list users", lookup{}))
	}

	op.succeed(slog.Int64("total", result.TotalDocs), slog.Int("returned", len(result.Docs)))
	return result, nil
}

// DeleteUser removes a user that owns no tasks
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	op := startOperation(ctx, s.logger, "delete_user", slog.String("user_id", id))

	if err := s.validator.ValidateID(id); err != nil {
		return nil, op.fail(err)
	}

	owned, err := s.tasks.CountByOwner(ctx, id)
	if err != nil {
		return nil, op.fail(translateStoreError(err, "count user tasks", lookup{}))
	}
	if owned > 0 {
		return nil, op.fail(domain.NewValidationError(validation.ValidationFailedMessage,
			domain.FieldError{Field: "id", Message: fmt.Sprintf("user still owns %d tasks", owned)}))
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, op.fail(translateStoreError(err, "delete user", lookup{"user", "id", id}))
	}

	op.succeed(slog.String("user_id", deleted.ID))
	return deleted, nil
}
