package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/mocks"
	"github.com/RuanLopes1350/AnotaAi/internal/service"
	"github.com/RuanLopes1350/AnotaAi/internal/service/auth"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

type authFixture struct {
	auth   service.AuthService
	users  *mocks.MockUserStore
	tokens *mocks.MockJWTService
	user   *domain.User
}

func newAuthFixture(t *testing.T, status domain.UserStatus) authFixture {
	t.Helper()
	secrets, answers := fastHashers()
	users := mocks.NewMockUserStore()

	secretHash, err := secrets.Hash("segredo123")
	require.NoError(t, err)
	answerHash, err := answers.Hash(service.NormalizeSecurityAnswer("Rex"))
	require.NoError(t, err)
	user, err := users.Create(context.Background(), &domain.User{
		Name:               "Maria Silva",
		Handle:             "maria",
		Email:              "maria@example.com",
		SecretHash:         secretHash,
		SecurityAnswerHash: answerHash,
		Status:             status,
	})
	require.NoError(t, err)

	tokens := &mocks.MockJWTService{}
	tokens.GenerateTokenFn = func(_ context.Context, userID string) (string, error) {
		return "token-for-" + userID, nil
	}

	return authFixture{
		auth: service.NewAuthService(service.AuthServiceDeps{
			Users:     users,
			Validator: newTestValidator(),
			Tokens:    tokens,
			Secrets:   secrets,
			Answers:   answers,
		}),
		users:  users,
		tokens: tokens,
		user:   user,
	}
}

func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture(t, domain.UserStatusActive)

		res, err := f.auth.Login(ctx, map[string]any{"email": "MARIA@example.com", "senha": "segredo123"})
		require.NoError(t, err)
		assert.Equal(t, "token-for-"+f.user.ID, res.Token)
		assert.Equal(t, f.user.ID, res.User.ID)
	})

	tests := []struct {
		name    string
		status  domain.UserStatus
		payload map[string]any
	}{
		{"wrong secret", domain.UserStatusActive, map[string]any{"email": "maria@example.com", "senha": "errada"}},
		{"unknown email", domain.UserStatusActive, map[string]any{"email": "joao@example.com", "senha": "segredo123"}},
		{"inactive account", domain.UserStatusInactive, map[string]any{"email": "maria@example.com", "senha": "segredo123"}},
		{"banned account", domain.UserStatusBanned, map[string]any{"email": "maria@example.com", "senha": "segredo123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t, tt.status)
			_, err := f.auth.Login(ctx, tt.payload)
			assert.True(t, isUnauthorized(err), "got %v", err)
		})
	}

	t.Run("invalid payload", func(t *testing.T) {
		f := newAuthFixture(t, domain.UserStatusActive)
		_, err := f.auth.Login(ctx, map[string]any{"email": "nope"})
		requireValidation(t, err, "email", "senha")
	})

	t.Run("token failure", func(t *testing.T) {
		f := newAuthFixture(t, domain.UserStatusActive)
		f.tokens.GenerateTokenFn = nil
		f.tokens.Err = auth.ErrInvalidToken

		_, err := f.auth.Login(ctx, map[string]any{"email": "maria@example.com", "senha": "segredo123"})
		assert.True(t, errors.Is(err, auth.ErrInvalidToken))
	})

	t.Run("disabled without token service", func(t *testing.T) {
		secrets, answers := fastHashers()
		svc := service.NewAuthService(service.AuthServiceDeps{
			Users:     mocks.NewMockUserStore(),
			Validator: newTestValidator(),
			Secrets:   secrets,
			Answers:   answers,
		})
		_, err := svc.Login(ctx, map[string]any{"email": "maria@example.com", "senha": "segredo123"})
		assert.ErrorIs(t, err, service.ErrLoginDisabled)
	})

	t.Run("store failure is a database error", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		users.On("GetByEmail", mock.Anything, "maria@example.com").Return(nil, errors.New("no reachable servers"))
		secrets, answers := fastHashers()

		svc := service.NewAuthService(service.AuthServiceDeps{
			Users:     users,
			Validator: newTestValidator(),
			Tokens:    &mocks.MockJWTService{Token: "t"},
			Secrets:   secrets,
			Answers:   answers,
		})
		_, err := svc.Login(ctx, map[string]any{"email": "maria@example.com", "senha": "segredo123"})
		assert.True(t, errors.Is(err, domain.ErrDatabase))
		users.AssertExpectations(t)
	})
}

func TestAuthService_ResetSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("matching answer replaces the secret", func(t *testing.T) {
		f := newAuthFixture(t, domain.UserStatusActive)

		err := f.auth.ResetSecret(ctx, map[string]any{
			"email":             "maria@example.com",
			"respostaSeguranca": "  rex ",
			"novaSenha":         "novoSegredo",
		})
		require.NoError(t, err)

		_, err = f.auth.Login(ctx, map[string]any{"email": "maria@example.com", "senha": "novoSegredo"})
		assert.NoError(t, err)
		_, err = f.auth.Login(ctx, map[string]any{"email": "maria@example.com", "senha": "segredo123"})
		assert.True(t, isUnauthorized(err))
	})

	t.Run("wrong answer", func(t *testing.T) {
		f := newAuthFixture(t, domain.UserStatusActive)
		f.users.UpdateFn = func(context.Context, string, domain.UserPatch) (*domain.User, error) {
			t.Fatal("secret must not change")
			return nil, nil
		}

		err := f.auth.ResetSecret(ctx, map[string]any{
			"email":             "maria@example.com",
			"respostaSeguranca": "Totó",
			"novaSenha":         "novoSegredo",
		})
		assert.True(t, isUnauthorized(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t, domain.UserStatusActive)
		err := f.auth.ResetSecret(ctx, map[string]any{
			"email":             "joao@example.com",
			"respostaSeguranca": "Rex",
			"novaSenha":         "novoSegredo",
		})
		assert.True(t, isUnauthorized(err))
	})

	t.Run("user removed before update", func(t *testing.T) {
		f := newAuthFixture(t, domain.UserStatusActive)
		f.users.UpdateFn = func(context.Context, string, domain.UserPatch) (*domain.User, error) {
			return nil, store.ErrUserNotFound
		}
		err := f.auth.ResetSecret(ctx, map[string]any{
			"email":             "maria@example.com",
			"respostaSeguranca": "Rex",
			"novaSenha":         "novoSegredo",
		})
		requireNotFound(t, err)
	})
}
