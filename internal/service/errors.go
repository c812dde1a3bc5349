package service

import (
	"errors"
	"fmt"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
	"github.com/RuanLopes1350/AnotaAi/internal/validation"
)

// Messages attached to a duplicated unique field.
var duplicateMessages = map[string]string{
	store.UserFieldEmail:  "Email já está em uso",
	store.UserFieldHandle: "Apelido já está em uso",
}

// lookup names the entity and key a storage call was looking for, so that a
// missing row can be reported as a NotFoundError.
type lookup struct {
	entity string
	key    string
	value  string
}

// translateStoreError normalises a storage error into the domain error set.
// Typed domain errors pass through unchanged; anything unrecognised becomes a
// DatabaseError for the named operation.
func translateStoreError(err error, operation string, l lookup) error {
	if err == nil {
		return nil
	}

	var (
		ve  *domain.ValidationError
		nf  *domain.NotFoundError
		dbe *domain.DatabaseError
		ue  *domain.UnauthorizedError
		dup *store.DuplicateError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &nf), errors.As(err, &dbe), errors.As(err, &ue):
		return err
	case errors.Is(err, domain.ErrInvalidID):
		return domain.NewInvalidIDError(l.value)
	case errors.Is(err, store.ErrNotFound):
		return domain.NewNotFoundError(l.entity, l.key, l.value)
	case errors.As(err, &dup):
		return domain.NewValidationError(validation.ValidationFailedMessage,
			domain.FieldError{Field: dup.Field, Message: duplicateMessage(dup.Field)})
	default:
		return domain.NewDatabaseError(operation, err)
	}
}

func duplicateMessage(field string) string {
	if msg, ok := duplicateMessages[field]; ok {
		return msg
	}
	return fmt.Sprintf("%s já está em uso", field)
}

// isClientError reports whether err is caused by the caller rather than the
// storage layer.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrUnauthorized)
}
