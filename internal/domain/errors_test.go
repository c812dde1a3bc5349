package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("validation failed",
		FieldError{Field: "titulo", Message: "Título deve ter pelo menos 3 caracteres"},
		FieldError{Field: "status", Message: "Status inválido"},
	)

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, err.HasField("titulo"))
	assert.False(t, err.HasField("descricao"))
	assert.Contains(t, err.Error(), "titulo: Título deve ter pelo menos 3 caracteres")

	wrapped := fmt.Errorf("create task: %w", err)
	var ve *ValidationError
	require.True(t, errors.As(wrapped, &ve))
	assert.Len(t, ve.Fields, 2)
}

func TestInvalidIDError(t *testing.T) {
	err := NewInvalidIDError("123")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, err.HasField("id"))
	assert.Contains(t, err.Detail, "123")
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "id", "507f1f77bcf86cd799439011")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Tarefa com id '507f1f77bcf86cd799439011' não encontrada", err.Error())

	assert.Equal(t, "Usuário com email 'maria@example.com' não encontrado",
		NewNotFoundError("user", "email", "maria@example.com").Error())
	assert.Equal(t, "token com jti 'abc' não encontrado",
		NewNotFoundError("token", "jti", "abc").Error())
}

func TestDatabaseError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("create task", cause)

	assert.True(t, errors.Is(err, ErrDatabase))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "database error during create task: connection refused", err.Error())
	assert.Equal(t, "database error during ping", NewDatabaseError("ping", nil).Error())
}

func TestUnauthorizedError(t *testing.T) {
	err := &UnauthorizedError{Message: "invalid credentials"}
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "invalid credentials", err.Error())
}
