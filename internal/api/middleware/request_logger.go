package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/RuanLopes1350/AnotaAi/internal/platform/logger"
	"github.com/RuanLopes1350/AnotaAi/internal/redact"
)

// maxLoggedBody bounds how much of a request body is read for logging.
const maxLoggedBody = 64 << 10

// RequestLogger logs "request received" before the handler runs and
// "response sent" after it. The response is logged at info for 1xx-3xx, warn
// for 4xx and error for 5xx. JSON bodies are logged with sensitive fields
// redacted.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)
		start := time.Now()

		attrs := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("ip", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		}
		if r.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("query", redact.Query(r.URL.RawQuery)))
		}
		if body, ok := peekJSONBody(r); ok {
			attrs = append(attrs, slog.Any("body", body))
		}
		log.InfoContext(ctx, "request received", attrs...)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "response sent",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.Int("size", ww.BytesWritten()),
		)
	})
}

// peekJSONBody reads a JSON object body for logging and restores it for the
// handler. Bodies that are not small JSON objects are not logged.
func peekJSONBody(r *http.Request) (map[string]any, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(data), r.Body), r.Body}
	if err != nil || len(data) == 0 || len(data) > maxLoggedBody {
		return nil, false
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil || body == nil {
		return nil, false
	}
	return redact.Fields(body), true
}
