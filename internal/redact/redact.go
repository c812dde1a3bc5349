// Package redact removes sensitive information from strings and request
// payloads before they are logged or returned in error responses: credentials
// in connection strings, bearer tokens, secrets, e-mail addresses, file paths,
// stack traces and SQL fragments.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; earlier placeholders are never matched again.
var rules = []rule{
	// Userinfo in connection strings
	{regexp.MustCompile(`(?i)\b(postgres|postgresql|mongodb|mongodb\+srv|redis)://[^@\s/]+@`), RedactedCredentialPlaceholder},
	// Three-part base64url JWT
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedJWTPlaceholder},
	// key=value or key: value secrets
	{regexp.MustCompile(`(?i)\b(password|passwd|senha|segredo|secret|token)\s*[=:]\s*['"]?[^'"&\s,\[][^'"&\s,]*`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), RedactedStackPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
	// Statement text up to the end of the line
	{regexp.MustCompile(`\b(SELECT|INSERT INTO|UPDATE|DELETE FROM)\s.*`), RedactedSQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
}

// sensitiveFields are payload keys whose values are never logged.
var sensitiveFields = map[string]struct{}{
	"senha":             {},
	"novasenha":         {},
	"password":          {},
	"token":             {},
	"respostaseguranca": {},
	"segredo":           {},
	"cartao":            {},
	"credito":           {},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// IsSensitiveField reports whether values under key must not be logged.
// Matching is case-insensitive.
func IsSensitiveField(key string) bool {
	_, ok := sensitiveFields[strings.ToLower(key)]
	return ok
}

// Fields returns a copy of payload with the value of every sensitive key
// replaced by RedactionPlaceholder. Nested objects and arrays are copied and
// redacted too; payload itself is never modified.
func Fields(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}

	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if IsSensitiveField(k) {
			out[k] = RedactionPlaceholder
			continue
		}
		out[k] = value(v)
	}
	return out
}

// Values returns a copy of v with every value under a sensitive key replaced
// by RedactionPlaceholder.
func Values(v url.Values) url.Values {
	if v == nil {
		return nil
	}

	out := make(url.Values, len(v))
	for k, vals := range v {
		masked := make([]string, len(vals))
		for i, val := range vals {
			if IsSensitiveField(k) {
				masked[i] = RedactionPlaceholder
				continue
			}
			masked[i] = String(val)
		}
		out[k] = masked
	}
	return out
}

// Query redacts a raw URL query string key by key. A query that does not
// parse is passed through String instead.
func Query(raw string) string {
	if raw == "" {
		return raw
	}
	parsed, err := url.ParseQuery(raw)
	if err != nil {
		return String(raw)
	}
	return Values(parsed).Encode()
}

func value(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Fields(t)
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = value(item)
		}
		return items
	default:
		return v
	}
}
