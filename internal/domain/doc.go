// Package domain contains the core business entities of the task API (tasks
// and the users that own them), their enumerations, and the closed set of
// error variants that every layer above it speaks. It does not depend on any
// delivery mechanism or storage backend.
package domain
