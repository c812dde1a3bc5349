package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/service/auth"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
	"github.com/RuanLopes1350/AnotaAi/internal/validation"
)

// Messages of the authentication failures. Login does not reveal which of
// the email or the secret was wrong.
const (
	invalidCredentialsMessage = "invalid email or password"
	inactiveAccountMessage    = "account is not active"
	invalidAnswerMessage      = "invalid email or security answer"
)

// ErrLoginDisabled is returned by Login when no token service is configured.
var ErrLoginDisabled = errors.New("login is disabled: no token secret configured")

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"usuario"`
}

// AuthService provides login and secret recovery.
type AuthService interface {
	// Login checks an email and secret and issues a bearer token.
	Login(ctx context.Context, raw map[string]any) (*LoginResult, error)

	// ResetSecret replaces the secret of the user whose security answer matches.
	ResetSecret(ctx context.Context, raw map[string]any) error
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	users     store.UserStore
	validator *validation.Validator
	tokens    auth.JWTService
	secrets   auth.SecretHasher
	answers   auth.SecretHasher
	logger    *slog.Logger
}

// Ensure AuthServiceImpl implements AuthService interface
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceDeps groups the collaborators of the auth service. Tokens may be
// nil, in which case Login always fails with ErrLoginDisabled.
type AuthServiceDeps struct {
	Users     store.UserStore
	Validator *validation.Validator
	Tokens    auth.JWTService
	Secrets   auth.SecretHasher
	Answers   auth.SecretHasher
	Logger    *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(deps AuthServiceDeps) AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		users:     deps.Users,
		validator: deps.Validator,
		tokens:    deps.Tokens,
		secrets:   deps.Secrets,
		answers:   deps.Answers,
		logger:    logger.With(slog.String("component", "auth_service")),
	}
}

// Login checks an email and secret and issues a bearer token
func (s *AuthServiceImpl) Login(ctx context.Context, raw map[string]any) (*LoginResult, error) {
	op := startOperation(ctx, s.logger, "login", payload(raw))

	if s.tokens == nil {
		return nil, op.fail(ErrLoginDisabled)
	}

	in, err := s.validator.Login(raw)
	if err != nil {
		return nil, op.fail(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, op.fail(&domain.UnauthorizedError{Message: invalidCredentialsMessage})
		}
		return nil, op.fail(translateStoreError(err, "find user by email", lookup{}))
	}

	if err := s.secrets.Compare(user.SecretHash, in.Secret); err != nil {
		if errors.Is(err, auth.ErrSecretMismatch) {
			return nil, op.fail(&domain.UnauthorizedError{Message: invalidCredentialsMessage})
		}
		return nil, op.fail(fmt.Errorf("failed to compare secret: %w", err))
	}
	if user.Status != domain.UserStatusActive {
		return nil, op.fail(&domain.UnauthorizedError{Message: inactiveAccountMessage})
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, op.fail(fmt.Errorf("failed to generate token: %w", err))
	}

	op.succeed(slog.String("user_id", user.ID))
	return &LoginResult{Token: token, User: user}, nil
}

// ResetSecret replaces the secret of the user whose security answer matches
func (s *AuthServiceImpl) ResetSecret(ctx context.Context, raw map[string]any) error {
	op := startOperation(ctx, s.logger, "reset_secret", payload(raw))

	in, err := s.validator.ResetSecret(raw)
	if err != nil {
		return op.fail(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return op.fail(&domain.UnauthorizedError{Message: invalidAnswerMessage})
		}
		return op.fail(translateStoreError(err, "find user by email", lookup{}))
	}

	if err := s.answers.Compare(user.SecurityAnswerHash, NormalizeSecurityAnswer(in.SecurityAnswer)); err != nil {
		if errors.Is(err, auth.ErrSecretMismatch) {
			return op.fail(&domain.UnauthorizedError{Message: invalidAnswerMessage})
		}
		return op.fail(fmt.Errorf("failed to compare security answer: %w", err))
	}

	hash, err := s.secrets.Hash(in.NewSecret)
	if err != nil {
		return op.fail(fmt.Errorf("failed to hash secret: %w", err))
	}
	if _, err := s.users.Update(ctx, user.ID, domain.UserPatch{SecretHash: &hash}); err != nil {
		return op.fail(translateStoreError(err, "update user secret", lookup{"user", "id", user.ID}))
	}

	op.succeed(slog.String("user_id", user.ID))
	return nil
}
