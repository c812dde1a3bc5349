package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is the sentinel matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is the sentinel matched by every *NotFoundError.
	ErrNotFound = errors.New("entity not found")

	// ErrDatabase is the sentinel matched by every *DatabaseError.
	ErrDatabase = errors.New("database operation failed")

	// ErrUnauthorized is the sentinel matched by every *UnauthorizedError.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidID is returned when an identifier is not a 24-character hex ObjectID.
	ErrInvalidID = errors.New("invalid ID")
)

// FieldError describes one violated constraint on one input field.
// The JSON names follow the wire vocabulary of the API.
type FieldError struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
}

// ValidationError reports malformed or out-of-constraint client input.
// It maps to HTTP 400.
type ValidationError struct {
	Message string
	Fields  []FieldError
	// Detail is used instead of Fields when the failure is not tied to a
	// field list (e.g. a malformed identifier).
	Detail string
}

// NewValidationError creates a ValidationError with the given field violations.
func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// NewInvalidIDError creates the ValidationError returned for malformed identifiers.
func NewInvalidIDError(id string) *ValidationError {
	return &ValidationError{
		Message: "invalid ID",
		Detail:  fmt.Sprintf("the provided ID '%s' is not a valid ObjectID", id),
		Fields:  []FieldError{{Field: "id", Message: ErrInvalidID.Error()}},
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HasField reports whether a violation was recorded for the given field.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// NotFoundError reports a well-formed request for an entity that does not exist.
// It maps to HTTP 404.
type NotFoundError struct {
	Entity string // "task", "user"
	Key    string // "id", "titulo", "status", ...
	Value  string
	Detail string
}

// NewNotFoundError creates a NotFoundError for the entity looked up by key=value.
func NewNotFoundError(entity, key, value string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key, Value: value}
}

// notFoundLabels holds the client-facing noun and the gendered "not found"
// phrase for each known entity.
var notFoundLabels = map[string][2]string{
	"task": {"Tarefa", "não encontrada"},
	"user": {"Usuário", "não encontrado"},
}

// Error implements the error interface. The message is returned to clients
// as is.
func (e *NotFoundError) Error() string {
	noun, phrase := e.Entity, "não encontrado"
	if l, ok := notFoundLabels[e.Entity]; ok {
		noun, phrase = l[0], l[1]
	}
	return fmt.Sprintf("%s com %s '%s' %s", noun, e.Key, e.Value, phrase)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DatabaseError wraps an unexpected storage-layer failure.
// It maps to HTTP 500.
type DatabaseError struct {
	Operation string
	Cause     error
}

// NewDatabaseError wraps cause as a DatabaseError for the named operation.
func NewDatabaseError(operation string, cause error) *DatabaseError {
	return &DatabaseError{Operation: operation, Cause: cause}
}

// Error implements the error interface.
func (e *DatabaseError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("database error during %s", e.Operation)
	}
	return fmt.Sprintf("database error during %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the wrapped storage error.
func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrDatabase.
func (e *DatabaseError) Is(target error) bool {
	return target == ErrDatabase
}

// UnauthorizedError reports failed credential or token checks. It maps to HTTP 401.
type UnauthorizedError struct {
	Message string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	return e.Message
}

// Is reports whether target is ErrUnauthorized.
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}
