package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/logger"
)

// Recoverer turns a handler panic into a logged error and a JSON 500 response
// carrying the generic server error message. http.ErrAbortHandler is
// re-raised so net/http can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			ctx := r.Context()
			logger.FromContext(ctx).ErrorContext(ctx, "panic recovered",
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("stack", string(debug.Stack())),
			)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Erro interno do servidor")
		}()

		next.ServeHTTP(w, r)
	})
}
