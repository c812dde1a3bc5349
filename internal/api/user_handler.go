package api

import (
	"log/slog"
	"net/http"

	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/service"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// UserResponse is the body of single-user responses.
type UserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"usuario"`
}

// UserListResponse is the body of the user list response.
type UserListResponse struct {
	Users store.Page[domain.User] `json:"usuarios"`
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	raw, err := shared.DecodeBody(w, r)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), raw)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, UserResponse{
		Message: "Usuário cadastrado com sucesso",
		User:    user,
	})
}

// UpdateUser handles PATCH /users/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	raw, err := shared.DecodeBody(w, r)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), pathParam(r, "id"), raw)
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		Message: "Usuário atualizado com sucesso",
		User:    user,
	})
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.ListUsers(r.Context(), r.URL.Query())
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserListResponse{Users: page})
}

// DeleteUser handles DELETE /users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.DeleteUser(r.Context(), pathParam(r, "id"))
	if err != nil {
		RespondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		Message: "Usuário deletado com sucesso",
		User:    user,
	})
}
