package validation

var loginSchema = schema{
	fields: []string{"email", "senha"},
	messages: map[string]string{
		"email.required": "Email é obrigatório",
		"email.email":    "Email inválido",
		"senha.required": "Senha é obrigatória",
	},
}

var resetSchema = schema{
	fields: []string{"email", "respostaSeguranca", "novaSenha"},
	messages: map[string]string{
		"email.required":             "Email é obrigatório",
		"email.email":                "Email inválido",
		"respostaSeguranca.required": "Resposta de segurança é obrigatória",
		"novaSenha.required":         "Nova senha é obrigatória",
		"novaSenha.min":              "Senha deve ter pelo menos 6 caracteres",
		"novaSenha.max":              "Senha deve ter no máximo 26 caracteres",
	},
}

type loginInput struct {
	Email  *string `json:"email" validate:"required,email"`
	Secret *string `json:"senha" validate:"required"`
}

type resetInput struct {
	Email          *string `json:"email" validate:"required,email"`
	SecurityAnswer *string `json:"respostaSeguranca" validate:"required"`
	NewSecret      *string `json:"novaSenha" validate:"required,min=6,max=26"`
}

// Login holds validated login credentials.
type Login struct {
	Email  string
	Secret string
}

// ResetSecret holds a validated secret-reset request.
type ResetSecret struct {
	Email          string
	SecurityAnswer string
	NewSecret      string
}

// Login validates a login payload.
func (v *Validator) Login(raw map[string]any) (*Login, error) {
	c := newCoercer(raw)
	in := loginInput{
		Email:  c.str("email"),
		Secret: c.str("senha"),
	}
	if err := fail(v.run(loginSchema, &in, c)); err != nil {
		return nil, err
	}
	return &Login{Email: normalizeEmail(*in.Email), Secret: *in.Secret}, nil
}

// ResetSecret validates a secret-reset payload.
func (v *Validator) ResetSecret(raw map[string]any) (*ResetSecret, error) {
	c := newCoercer(raw)
	in := resetInput{
		Email:          c.str("email"),
		SecurityAnswer: c.str("respostaSeguranca"),
		NewSecret:      c.str("novaSenha"),
	}
	if err := fail(v.run(resetSchema, &in, c)); err != nil {
		return nil, err
	}
	return &ResetSecret{
		Email:          normalizeEmail(*in.Email),
		SecurityAnswer: *in.SecurityAnswer,
		NewSecret:      *in.NewSecret,
	}, nil
}
