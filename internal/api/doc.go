// Package api holds the HTTP handlers of the task, user and authentication
// endpoints. Handlers decode the request, call one service method and write
// JSON; every failure goes through RespondWithDomainError.
package api
