package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

func validUserPayload() map[string]any {
	return map[string]any{
		"nome":              "Maria Silva",
		"apelido":           "maria",
		"email":             "Maria@Example.com",
		"senha":             "segredo123",
		"respostaSeguranca": "Rex",
		"status":            "Ativo",
	}
}

func TestUserCreate_Valid(t *testing.T) {
	v := newTestValidator()

	u, err := v.UserCreate(validUserPayload())
	require.NoError(t, err)

	assert.Equal(t, "Maria Silva", u.Name)
	assert.Equal(t, "maria", u.Handle)
	assert.Equal(t, "maria@example.com", u.Email)
	assert.Equal(t, "segredo123", u.Secret)
	assert.Equal(t, "Rex", u.SecurityAnswer)
	assert.Equal(t, domain.UserStatusActive, u.Status)
}

func TestUserCreate_Violations(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		mutate func(map[string]any)
		fields []string
	}{
		{"short name", func(p map[string]any) { p["nome"] = "Al" }, []string{"nome"}},
		{"long handle", func(p map[string]any) { p["apelido"] = strings.Repeat("a", 51) }, []string{"apelido"}},
		{"bad email", func(p map[string]any) { p["email"] = "not-an-email" }, []string{"email"}},
		{"long email", func(p map[string]any) { p["email"] = strings.Repeat("a", 45) + "@x.com" }, []string{"email"}},
		{"short secret", func(p map[string]any) { p["senha"] = "12345" }, []string{"senha"}},
		{"long secret", func(p map[string]any) { p["senha"] = strings.Repeat("s", 27) }, []string{"senha"}},
		{"long answer", func(p map[string]any) { p["respostaSeguranca"] = strings.Repeat("r", 101) }, []string{"respostaSeguranca"}},
		{"lowercase status", func(p map[string]any) { p["status"] = "ativo" }, []string{"status"}},
		{"everything missing", func(p map[string]any) {
			for k := range p {
				delete(p, k)
			}
		}, []string{"nome", "apelido", "email", "senha", "respostaSeguranca", "status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validUserPayload()
			tt.mutate(payload)
			_, err := v.UserCreate(payload)
			requireFields(t, err, tt.fields...)
		})
	}
}

func TestUserCreate_Messages(t *testing.T) {
	v := newTestValidator()
	payload := validUserPayload()
	payload["senha"] = "123"

	_, err := v.UserCreate(payload)
	ve := requireFields(t, err, "senha")
	assert.Equal(t, "Senha deve ter pelo menos 6 caracteres", ve.Fields[0].Message)
}

func TestUserUpdate(t *testing.T) {
	v := newTestValidator()

	t.Run("subset", func(t *testing.T) {
		u, err := v.UserUpdate(map[string]any{"status": "Banido", "email": "NEW@example.com"})
		require.NoError(t, err)
		require.NotNil(t, u.Status)
		assert.Equal(t, domain.UserStatusBanned, *u.Status)
		require.NotNil(t, u.Email)
		assert.Equal(t, "new@example.com", *u.Email)
		assert.Nil(t, u.Name)
		assert.Nil(t, u.Secret)
	})

	t.Run("present fields constrained", func(t *testing.T) {
		_, err := v.UserUpdate(map[string]any{"nome": "AB", "senha": "1"})
		requireFields(t, err, "nome", "senha")
	})
}

func TestLoginAndReset(t *testing.T) {
	v := newTestValidator()

	l, err := v.Login(map[string]any{"email": "A@B.com", "senha": "whatever"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", l.Email)

	_, err = v.Login(map[string]any{"email": "nope"})
	requireFields(t, err, "email", "senha")

	r, err := v.ResetSecret(map[string]any{
		"email":             "a@b.com",
		"respostaSeguranca": "Rex",
		"novaSenha":         "novoSegredo",
	})
	require.NoError(t, err)
	assert.Equal(t, "novoSegredo", r.NewSecret)

	_, err = v.ResetSecret(map[string]any{"email": "a@b.com", "respostaSeguranca": "Rex", "novaSenha": "1"})
	requireFields(t, err, "novaSenha")
}
