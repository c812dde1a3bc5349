// Package mongodb implements the store interfaces on top of a MongoDB
// database using the official driver. Tasks live in the "tasks" collection and
// users in "usuarios"; identifiers are ObjectIDs stored natively and exposed
// as 24-character hex strings.
package mongodb
