package mongodb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

func duplicateKeyError(index string) error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: anotaai.usuarios index: " + index + " dup key: { }",
		}},
	}
}

func TestMapError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil, "task", "create", store.ErrTaskNotFound))
	})

	t.Run("no documents", func(t *testing.T) {
		err := MapError(mongo.ErrNoDocuments, "task", "update", store.ErrTaskNotFound)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound))
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := MapError(duplicateKeyError(emailIndex), "user", "create", store.ErrUserNotFound)
		var de *store.DuplicateError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "email", de.Field)
	})

	t.Run("duplicate handle", func(t *testing.T) {
		err := MapError(duplicateKeyError(handleIndex), "user", "update", store.ErrUserNotFound)
		var de *store.DuplicateError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "apelido", de.Field)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("server selection timeout")
		err := MapError(cause, "task", "list", store.ErrTaskNotFound)

		var se *store.StoreError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "list", se.Operation)
		assert.True(t, errors.Is(err, cause))
		assert.False(t, store.IsNotFoundError(err))
	})
}
