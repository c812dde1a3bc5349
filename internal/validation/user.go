package validation

import (
	"strings"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

var userSchema = schema{
	fields: []string{"nome", "apelido", "email", "senha", "respostaSeguranca", "status"},
	messages: map[string]string{
		"nome.required":              "Nome é obrigatório",
		"nome.min":                   "Nome deve ter pelo menos 3 caracteres",
		"nome.max":                   "Nome deve ter no máximo 50 caracteres",
		"apelido.required":           "Apelido é obrigatório",
		"apelido.min":                "Apelido deve ter pelo menos 3 caracteres",
		"apelido.max":                "Apelido deve ter no máximo 50 caracteres",
		"email.required":             "Email é obrigatório",
		"email.email":                "Email inválido",
		"email.max":                  "Email deve ter no máximo 50 caracteres",
		"senha.required":             "Senha é obrigatória",
		"senha.min":                  "Senha deve ter pelo menos 6 caracteres",
		"senha.max":                  "Senha deve ter no máximo 26 caracteres",
		"respostaSeguranca.required": "Resposta de segurança é obrigatória",
		"respostaSeguranca.max":      "Resposta de segurança deve ter no máximo 100 caracteres",
		"status.required":            "Status é obrigatório",
		"status.userstatus":          "Status deve ser um dos seguintes: Ativo, Inativo, Banido",
	},
}

type userCreateInput struct {
	Name           *string `json:"nome" validate:"required,min=3,max=50"`
	Handle         *string `json:"apelido" validate:"required,min=3,max=50"`
	Email          *string `json:"email" validate:"required,email,max=50"`
	Secret         *string `json:"senha" validate:"required,min=6,max=26"`
	SecurityAnswer *string `json:"respostaSeguranca" validate:"required,max=100"`
	Status         *string `json:"status" validate:"required,userstatus"`
}

type userUpdateInput struct {
	Name           *string `json:"nome" validate:"omitempty,min=3,max=50"`
	Handle         *string `json:"apelido" validate:"omitempty,min=3,max=50"`
	Email          *string `json:"email" validate:"omitempty,email,max=50"`
	Secret         *string `json:"senha" validate:"omitempty,min=6,max=26"`
	SecurityAnswer *string `json:"respostaSeguranca" validate:"omitempty,max=100"`
	Status         *string `json:"status" validate:"omitempty,userstatus"`
}

// UserCreate is a validated user registration. Secret and SecurityAnswer are
// still in plain text and must be hashed before storage.
type UserCreate struct {
	Name           string
	Handle         string
	Email          string
	Secret         string
	SecurityAnswer string
	Status         domain.UserStatus
}

// UserUpdate is a validated partial user update; nil fields are absent.
type UserUpdate struct {
	Name           *string
	Handle         *string
	Email          *string
	Secret         *string
	SecurityAnswer *string
	Status         *domain.UserStatus
}

// UserCreate validates a user registration payload.
func (v *Validator) UserCreate(raw map[string]any) (*UserCreate, error) {
	c := newCoercer(raw)
	in := userCreateInput{
		Name:           c.str("nome"),
		Handle:         c.str("apelido"),
		Email:          c.str("email"),
		Secret:         c.str("senha"),
		SecurityAnswer: c.str("respostaSeguranca"),
		Status:         c.str("status"),
	}

	if err := fail(v.run(userSchema, &in, c)); err != nil {
		return nil, err
	}

	return &UserCreate{
		Name:           *in.Name,
		Handle:         *in.Handle,
		Email:          normalizeEmail(*in.Email),
		Secret:         *in.Secret,
		SecurityAnswer: *in.SecurityAnswer,
		Status:         domain.UserStatus(*in.Status),
	}, nil
}

// UserUpdate validates a partial user update.
func (v *Validator) UserUpdate(raw map[string]any) (*UserUpdate, error) {
	c := newCoercer(raw)
	in := userUpdateInput{
		Name:           c.str("nome"),
		Handle:         c.str("apelido"),
		Email:          c.str("email"),
		Secret:         c.str("senha"),
		SecurityAnswer: c.str("respostaSeguranca"),
		Status:         c.str("status"),
	}

	if err := fail(v.run(userSchema, &in, c)); err != nil {
		return nil, err
	}

	out := &UserUpdate{
		Name:           in.Name,
		Handle:         in.Handle,
		Secret:         in.Secret,
		SecurityAnswer: in.SecurityAnswer,
	}
	if in.Email != nil {
		e := normalizeEmail(*in.Email)
		out.Email = &e
	}
	if in.Status != nil {
		s := domain.UserStatus(*in.Status)
		out.Status = &s
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
