package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuanLopes1350/AnotaAi/internal/platform/logger"
)

func TestRecoverer(t *testing.T) {
	t.Run("panic becomes a JSON 500", func(t *testing.T) {
		log, buf := logger.GetTestLogger(t)
		handler := NewTraceMiddleware(log)(Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
		assert.Equal(t, "Erro interno do servidor", body["message"])
		assert.NotContains(t, rec.Body.String(), "boom")

		logger.AssertLogContains(t, buf, "panic recovered")
		logger.AssertLogContains(t, buf, "boom")
	})

	t.Run("no panic passes through", func(t *testing.T) {
		handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tasks", nil))
		})
	})
}
