package api

import (
	"errors"
	"net/http"

	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/redact"
	"github.com/RuanLopes1350/AnotaAi/internal/service/auth"
)

// Client-facing messages for errors that carry no message of their own.
const (
	internalErrorMessage = "Erro interno do servidor"
	databaseErrorMessage = "Erro no banco de dados"
	invalidTokenMessage  = "invalid authentication token"
)

// MapErrorToStatusCode maps an error from the service layer to its HTTP status.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithDomainError is the single place that turns an error into an
// HTTP error response of the form {message, details, trace_id}.
// Database causes are redacted before they reach the client; unknown errors
// get a generic message.
func RespondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var (
		ve  *domain.ValidationError
		nf  *domain.NotFoundError
		ue  *domain.UnauthorizedError
		dbe *domain.DatabaseError
	)
	switch {
	case errors.As(err, &ve):
		var details any = ve.Fields
		if ve.Detail != "" {
			details = ve.Detail
		}
		shared.RespondWithErrorAndLog(w, r, status, ve.Message, err, shared.WithDetails(details))

	case errors.As(err, &nf):
		opts := []shared.ResponseOption{}
		if nf.Detail != "" {
			opts = append(opts, shared.WithDetails(nf.Detail))
		}
		shared.RespondWithErrorAndLog(w, r, status, nf.Error(), err, opts...)

	case errors.As(err, &ue):
		shared.RespondWithErrorAndLog(w, r, status, ue.Message, err, shared.WithElevatedLogLevel())

	case status == http.StatusUnauthorized:
		shared.RespondWithErrorAndLog(w, r, status, invalidTokenMessage, err, shared.WithElevatedLogLevel())

	case errors.As(err, &dbe):
		shared.RespondWithErrorAndLog(w, r, status, databaseErrorMessage, err,
			shared.WithDetails(redact.Error(dbe.Cause)))

	default:
		shared.RespondWithErrorAndLog(w, r, status, internalErrorMessage, err)
	}
}
