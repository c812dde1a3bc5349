package validation

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

// Accepted textual date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a date the way the API accepts it on the wire: an RFC 3339
// timestamp, a timestamp without zone (read as UTC), or a bare calendar date.
// Other common textual forms ("01 Jul 2030", RFC 1123, "2030-07-01 10:00:00")
// are accepted through cast, with zoneless values read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if t, err := cast.ToTimeInDefaultLocationE(s, time.UTC); err == nil && t.Year() > 0 {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// coercer reads typed values out of a raw input map and records a violation
// for every value that cannot be coerced to its target type.
type coercer struct {
	raw     map[string]any
	errs    []domain.FieldError
	invalid map[string]bool
}

func newCoercer(raw map[string]any) *coercer {
	if raw == nil {
		raw = map[string]any{}
	}
	return &coercer{raw: raw, invalid: map[string]bool{}}
}

// queryInput flattens query-string values to their first occurrence. Empty
// values are treated as absent.
func queryInput(values url.Values) map[string]any {
	raw := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) == 0 || strings.TrimSpace(vs[0]) == "" {
			continue
		}
		raw[k] = vs[0]
	}
	return raw
}

func (c *coercer) reject(field, message string) {
	c.errs = append(c.errs, domain.FieldError{Field: field, Message: message})
	c.invalid[field] = true
}

func (c *coercer) failed(field string) bool {
	return c.invalid[field]
}

// str returns the string value of field, nil when absent.
func (c *coercer) str(field string) *string {
	v, ok := c.raw[field]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		c.reject(field, "Deve ser um texto")
		return nil
	}
	return &s
}

// date returns the time value of field. A JSON null yields (nil, true) when
// nullable is set.
func (c *coercer) date(field string, nullable bool) (*time.Time, bool) {
	v, ok := c.raw[field]
	if !ok {
		return nil, false
	}

	switch x := v.(type) {
	case nil:
		if nullable {
			return nil, true
		}
	case time.Time:
		t := x.UTC()
		return &t, false
	case string:
		if t, ok := ParseDate(x); ok {
			return &t, false
		}
	case float64:
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			t := time.UnixMilli(int64(x)).UTC()
			return &t, false
		}
	case json.Number:
		if ms, err := x.Int64(); err == nil {
			t := time.UnixMilli(ms).UTC()
			return &t, false
		}
	}

	c.reject(field, "Data inválida")
	return nil, false
}

// integer returns the integer value of field, accepting numeric strings.
// Strings are read as base 10 only; cast would read "010" as octal.
func (c *coercer) integer(field string) *int {
	v, ok := c.raw[field]
	if !ok {
		return nil
	}

	switch x := v.(type) {
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return &n
		}
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < math.MaxInt32 {
			n := int(x)
			return &n
		}
	case int, int32, int64, json.Number:
		if n, err := cast.ToIntE(x); err == nil {
			return &n
		}
	}

	c.reject(field, "Deve ser um número inteiro")
	return nil
}

// boolean returns the boolean value of field, accepting "true"/"false" strings.
func (c *coercer) boolean(field string) *bool {
	v, ok := c.raw[field]
	if !ok {
		return nil
	}

	switch x := v.(type) {
	case bool:
		return &x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			b := true
			return &b
		case "false":
			b := false
			return &b
		}
	}

	c.reject(field, "Deve ser verdadeiro ou falso")
	return nil
}
