// Package validation turns raw request input (decoded JSON bodies and query
// strings) into typed, coerced records, or into a *domain.ValidationError that
// lists every violated constraint.
//
// Each schema runs in three passes: coercion of raw values into their target
// types, per-field constraints expressed as go-playground/validator tags, and
// cross-field checks. A field whose coercion fails reports only that failure.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

// ValidationFailedMessage is the top-level message of every schema failure.
const ValidationFailedMessage = "Erro de validação"

// Validator validates request input against the API schemas.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used by the "future" rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// New creates a Validator with the custom tags registered:
//   - future: a time strictly after the validator's clock
//   - objectid: a 24-character hex identifier
//   - taskstatus / userstatus: members of the status enumerations
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	// Report fields by their wire names.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil functions.
	_ = v.validate.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(v.now())
	})
	_ = v.validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return domain.IsValidID(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return domain.TaskStatus(fl.Field().String()).Valid()
	})
	_ = v.validate.RegisterValidation("userstatus", func(fl validator.FieldLevel) bool {
		return domain.UserStatus(fl.Field().String()).Valid()
	})

	return v
}

// Now returns the validator's current time.
func (v *Validator) Now() time.Time {
	return v.now()
}

// ValidateID checks that id is a well-formed identifier.
func (v *Validator) ValidateID(id string) error {
	if !domain.IsValidID(id) {
		return domain.NewInvalidIDError(id)
	}
	return nil
}

// schema describes one input shape: its field order (for stable error output)
// and the message for each field/tag pair.
type schema struct {
	fields   []string
	messages map[string]string
}

func (s schema) index(field string) int {
	for i, f := range s.fields {
		if f == field {
			return i
		}
	}
	return len(s.fields)
}

// run executes the per-field pass on input and merges its violations with the
// coercion violations already collected in c. Fields that failed coercion are
// not reported again.
func (v *Validator) run(s schema, input any, c *coercer) []domain.FieldError {
	errs := append([]domain.FieldError(nil), c.errs...)

	if err := v.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs = append(errs, domain.FieldError{Field: "body", Message: err.Error()})
		} else {
			for _, fe := range verrs {
				if c.failed(fe.Field()) {
					continue
				}
				errs = append(errs, domain.FieldError{Field: fe.Field(), Message: s.message(fe)})
			}
		}
	}

	sort.SliceStable(errs, func(i, j int) bool {
		return s.index(errs[i].Field) < s.index(errs[j].Field)
	})
	return errs
}

func (s schema) message(fe validator.FieldError) string {
	if m, ok := s.messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "min":
		return "Valor abaixo do mínimo permitido (" + fe.Param() + ")"
	case "max":
		return "Valor acima do máximo permitido (" + fe.Param() + ")"
	case "email":
		return "Email inválido"
	case "oneof":
		return "Valor deve ser um dos seguintes: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "objectid":
		return "ID deve ser um ObjectId válido"
	case "future":
		return "Data deve ser uma data futura"
	default:
		return "Valor inválido"
	}
}

// fail builds the ValidationError for a non-empty violation list.
func fail(errs []domain.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return domain.NewValidationError(ValidationFailedMessage, errs...)
}
