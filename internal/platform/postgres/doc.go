// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. The schema is managed by goose migrations embedded
// in the binary. Identifiers are kept as 24-character hex strings so that the
// API behaves identically on both storage backends.
package postgres
