package mongodb

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// MapError maps a driver error to the store error vocabulary. notFound is the
// entity-specific sentinel returned for mongo.ErrNoDocuments.
func MapError(err error, entity, operation string, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return store.NewDuplicateError(entity, duplicateField(err), err)
	}

	return store.NewStoreError(entity, operation, fmt.Sprintf("failed to %s %s", operation, entity), err)
}

// duplicateField recovers the wire name of the field behind a duplicate-key
// error from the index named in the server message.
func duplicateField(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, emailIndex):
		return "email"
	case strings.Contains(msg, handleIndex):
		return "apelido"
	default:
		return "_id"
	}
}
