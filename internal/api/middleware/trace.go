package middleware

import (
	"log/slog"
	"net/http"

	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/logger"
)

// RequestIDHeader carries the trace id in both directions.
const RequestIDHeader = "X-Request-Id"

// NewTraceMiddleware adds a trace ID and the base logger to the request
// context and echoes the trace ID in the response header. A client-supplied
// X-Request-Id is reused when it is usable.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context(), r.Header.Get(RequestIDHeader))
			ctx = logger.WithLogger(ctx, base)

			w.Header().Set(RequestIDHeader, shared.GetTraceID(ctx))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
