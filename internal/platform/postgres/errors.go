package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// Unique constraints, mapped back to the wire name of their field.
var uniqueConstraintFields = map[string]string{
	"usuarios_email_key":   "email",
	"usuarios_apelido_key": "apelido",
	"usuarios_pkey":        "_id",
	"tasks_pkey":           "_id",
}

// MapError maps a database error to the store error vocabulary. notFound is
// the entity-specific sentinel returned for sql.ErrNoRows.
func MapError(err error, entity, operation string, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			field, ok := uniqueConstraintFields[pgErr.ConstraintName]
			if !ok {
				field = pgErr.ConstraintName
			}
			return store.NewDuplicateError(entity, field, err)
		case checkViolationCode:
			return store.NewStoreError(entity, operation,
				fmt.Sprintf("check constraint violation (%s)", pgErr.ConstraintName), err)
		case notNullViolationCode:
			return store.NewStoreError(entity, operation,
				fmt.Sprintf("not null violation (%s)", pgErr.ColumnName), err)
		}
	}

	return store.NewStoreError(entity, operation, fmt.Sprintf("failed to %s %s", operation, entity), err)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
