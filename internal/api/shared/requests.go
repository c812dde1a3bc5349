package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

// MaxBodyBytes bounds the size of a JSON request body.
const MaxBodyBytes = 1 << 20

const invalidBodyMessage = "Corpo da requisição inválido"

// DecodeBody decodes the request body as a JSON object. An empty body yields
// an empty map. Malformed or non-object bodies fail as a ValidationError on
// the "body" field.
func DecodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()

	var raw map[string]any
	err := json.NewDecoder(body).Decode(&raw)
	switch {
	case errors.Is(err, io.EOF):
		return map[string]any{}, nil
	case err != nil:
		var tooLarge *http.MaxBytesError
		message := "JSON inválido"
		if errors.As(err, &tooLarge) {
			message = "Corpo da requisição muito grande"
		}
		return nil, domain.NewValidationError(invalidBodyMessage,
			domain.FieldError{Field: "body", Message: message})
	case raw == nil:
		return nil, domain.NewValidationError(invalidBodyMessage,
			domain.FieldError{Field: "body", Message: "JSON deve ser um objeto"})
	}
	return raw, nil
}
