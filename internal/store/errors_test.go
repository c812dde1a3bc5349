package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "ErrTaskNotFound",
			err:      ErrTaskNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrUserNotFound",
			err:      fmt.Errorf("failed to find user: %w", ErrUserNotFound),
			expected: true,
		},
		{
			name:     "duplicate error",
			err:      NewDuplicateError("user", "email", nil),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestDuplicateError(t *testing.T) {
	cause := errors.New("E11000 duplicate key error")
	err := NewDuplicateError("user", "apelido", cause)

	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "user with this apelido already exists", err.Error())

	var de *DuplicateError
	wrapped := fmt.Errorf("create: %w", err)
	if assert.True(t, errors.As(wrapped, &de)) {
		assert.Equal(t, "apelido", de.Field)
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("task", "create", "failed to insert task", cause)

	assert.Equal(t, "create operation on task failed: failed to insert task: connection reset", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "delete operation on user failed: boom", NewStoreError("user", "delete", "boom", nil).Error())
}
