package api

import (
	"log/slog"
	"net/http"

	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/service"
)

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"usuario"`
}

// MessageResponse is a body carrying only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	auth   service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		auth:   auth,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	raw, err := shared.DecodeBody(w, r)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), raw)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message: "Login realizado com sucesso",
		Token:   result.Token,
		User:    result.User,
	})
}

// ResetSecret handles POST /auth/reset-secret.
func (h *AuthHandler) ResetSecret(w http.ResponseWriter, r *http.Request) {
	raw, err := shared.DecodeBody(w, r)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	if err := h.auth.ResetSecret(r.Context(), raw); err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Senha redefinida com sucesso"})
}
