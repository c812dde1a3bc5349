// Package service contains the task, user and authentication use cases.
//
// Services validate raw request payloads with internal/validation, call one
// store method per operation and normalise every failure into the closed set
// of domain errors: validation failures and duplicate unique fields become
// *domain.ValidationError, missing entities *domain.NotFoundError, failed
// credential checks *domain.UnauthorizedError and anything else the store
// reports *domain.DatabaseError. The API layer translates those into HTTP
// responses.
//
// Each call logs its entry and exit under a fresh operation id, with payloads
// passed through redact.Fields first.
package service
