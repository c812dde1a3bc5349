package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	var seen string
	handler := NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).InfoContext(r.Context(), "inside handler")
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		assert.Len(t, seen, 32)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
		logger.AssertLogContains(t, buf, `"trace_id":"`+seen+`"`)
	})

	t.Run("propagated from header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set(RequestIDHeader, "client-req-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-req-42", seen)
		assert.Equal(t, "client-req-42", rec.Header().Get(RequestIDHeader))
	})
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"success", http.StatusCreated, "INFO"},
		{"client error", http.StatusNotFound, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := logger.GetTestLogger(t)

			var body string
			handler := NewTraceMiddleware(log)(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				data, _ := io.ReadAll(r.Body)
				body = string(data)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"ok":true}`))
			})))

			payload := `{"email":"a@b.com","senha":"segredo123"}`
			req := httptest.NewRequest(http.MethodPost, "/users?page=1", strings.NewReader(payload))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, payload, body, "handler must still see the full body")
			logger.AssertLogNotContains(t, buf, "segredo123")

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 2)

			assert.Equal(t, "request received", entries[0]["msg"])
			assert.Equal(t, "POST", entries[0]["method"])
			assert.Equal(t, "page=1", entries[0]["query"])
			assert.Equal(t, "[REDACTED]", entries[0]["body"].(map[string]any)["senha"])

			assert.Equal(t, "response sent", entries[1]["msg"])
			assert.Equal(t, tc.level, entries[1]["level"])
			assert.Equal(t, float64(tc.status), entries[1]["status"])
			assert.Equal(t, float64(len(`{"ok":true}`)), entries[1]["size"])
		})
	}
}

func TestRequestLogger_RedactsQuery(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	handler := NewTraceMiddleware(log)(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/users?senha=hunter2&respostaSeguranca=rexsecret&novaSenha=x1y2z3&page=2", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	logger.AssertLogNotContains(t, buf, "hunter2")
	logger.AssertLogNotContains(t, buf, "rexsecret")
	logger.AssertLogNotContains(t, buf, "x1y2z3")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0]["query"], "page=2")
	assert.Contains(t, entries[0]["query"], "respostaSeguranca=%5BREDACTED%5D")
}

func TestPeekJSONBody_NonJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader("plain text"))
	_, ok := peekJSONBody(req)
	assert.False(t, ok)

	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(data))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", metrics.Handler())

	for _, id := range []string{"507f1f77bcf86cd799439011", "507f1f77bcf86cd799439012"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tasks/"+id, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("GET", "/tasks/{id}", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/tasks/{id}",status="404"} 2`)
	assert.NotContains(t, rec.Body.String(), "507f1f77bcf86cd799439011")
}
