package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

func TestTranslateStoreError(t *testing.T) {
	const id = "507f1f77bcf86cd799439011"
	taskLookup := lookup{"task", "id", id}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, translateStoreError(nil, "update task", taskLookup))
	})

	t.Run("not found", func(t *testing.T) {
		err := translateStoreError(fmt.Errorf("wrapped: %w", store.ErrTaskNotFound), "update task", taskLookup)
		var nf *domain.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "Tarefa com id '507f1f77bcf86cd799439011' não encontrada", nf.Error())
	})

	t.Run("invalid id", func(t *testing.T) {
		err := translateStoreError(fmt.Errorf("%w: %q", domain.ErrInvalidID, "xyz"), "update task", lookup{"task", "id", "xyz"})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.True(t, ve.HasField("id"))
	})

	t.Run("duplicate field", func(t *testing.T) {
		err := translateStoreError(store.NewDuplicateError("user", "apelido", errors.New("E11000")), "create user", lookup{})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		require.Len(t, ve.Fields, 1)
		assert.Equal(t, domain.FieldError{Field: "apelido", Message: "Apelido já está em uso"}, ve.Fields[0])
	})

	t.Run("unknown duplicate field", func(t *testing.T) {
		err := translateStoreError(store.NewDuplicateError("user", "cpf", nil), "create user", lookup{})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "cpf já está em uso", ve.Fields[0].Message)
	})

	t.Run("typed errors pass through", func(t *testing.T) {
		original := domain.NewNotFoundError("user", "email", "a@b.com")
		assert.Same(t, original, translateStoreError(original, "x", taskLookup))
	})

	t.Run("anything else is a database error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := translateStoreError(cause, "list tasks", lookup{})
		var dbe *domain.DatabaseError
		require.True(t, errors.As(err, &dbe))
		assert.Equal(t, "list tasks", dbe.Operation)
		assert.True(t, errors.Is(err, cause))
	})
}

func TestIsClientError(t *testing.T) {
	assert.True(t, isClientError(domain.NewValidationError("x")))
	assert.True(t, isClientError(domain.NewNotFoundError("task", "id", "1")))
	assert.True(t, isClientError(&domain.UnauthorizedError{Message: "no"}))
	assert.False(t, isClientError(domain.NewDatabaseError("x", nil)))
	assert.False(t, isClientError(errors.New("boom")))
}
