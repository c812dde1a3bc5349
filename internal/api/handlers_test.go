package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/RuanLopes1350/AnotaAi/internal/api"
	"github.com/RuanLopes1350/AnotaAi/internal/mocks"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/logger"
	"github.com/RuanLopes1350/AnotaAi/internal/service"
	"github.com/RuanLopes1350/AnotaAi/internal/service/auth"
	"github.com/RuanLopes1350/AnotaAi/internal/validation"
)

var fixedNow = time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)

const (
	ownerID   = "507f1f77bcf86cd799439011"
	missingID = "507f1f77bcf86cd799439099"
)

// testAPI wires real services over in-memory stores behind a chi router.
type testAPI struct {
	router http.Handler
	tasks  *mocks.MockTaskStore
	users  *mocks.MockUserStore
	tokens *mocks.MockJWTService
	logs   *logger.TestLogBuffer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log, buf := logger.GetTestLogger(t)
	v := validation.New(validation.WithClock(func() time.Time { return fixedNow }))
	secrets := auth.NewBcryptHasher(bcrypt.MinCost)
	answers := auth.NewArgon2idHasher(&argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})

	a := &testAPI{
		tasks:  mocks.NewMockTaskStore(),
		users:  mocks.NewMockUserStore(),
		tokens: &mocks.MockJWTService{Token: "signed-token"},
		logs:   buf,
	}

	taskHandler := api.NewTaskHandler(service.NewTaskService(a.tasks, v, log), log)
	userHandler := api.NewUserHandler(service.NewUserService(service.UserServiceDeps{
		Users: a.users, Tasks: a.tasks, Validator: v, Secrets: secrets, Answers: answers, Logger: log,
	}), log)
	authHandler := api.NewAuthHandler(service.NewAuthService(service.AuthServiceDeps{
		Users: a.users, Validator: v, Tokens: a.tokens, Secrets: secrets, Answers: answers, Logger: log,
	}), log)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(logger.WithLogger(req.Context(), log)))
		})
	})
	r.Post("/tasks", taskHandler.CreateTask)
	r.Get("/tasks", taskHandler.ListTasks)
	r.Get("/tasks/titulo/{titulo}", taskHandler.FindTaskByTitle)
	r.Get("/tasks/status/{status}", taskHandler.FindTasksByStatus)
	r.Get("/tasks/dataLimite/{dataLimite}", taskHandler.FindTasksByDueDate)
	r.Patch("/tasks/{id}", taskHandler.UpdateTask)
	r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	r.Post("/users", userHandler.CreateUser)
	r.Get("/users", userHandler.ListUsers)
	r.Patch("/users/{id}", userHandler.UpdateUser)
	r.Delete("/users/{id}", userHandler.DeleteUser)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/reset-secret", authHandler.ResetSecret)
	a.router = r
	return a
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func taskPayload() map[string]any {
	return map[string]any{
		"titulo":     "Buy milk",
		"descricao":  "2%",
		"status":     "Pendente",
		"dataLimite": "2030-07-01T10:00:00Z",
		"usuario":    ownerID,
	}
}

func userPayload() map[string]any {
	return map[string]any{
		"nome":              "Maria Silva",
		"apelido":           "maria",
		"email":             "maria@example.com",
		"senha":             "segredo123",
		"respostaSeguranca": "Rex",
		"status":            "Ativo",
	}
}
