package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/optimizeai/internal/models"
	"github.com/iudanet/optimizeai/internal/server/jwt"
	"github.com/iudanet/optimizeai/internal/server/storage/sqlite"
)

const testSecret = "test-secret-test-secret-test-secret"

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// captureNotifier запоминает выданные токены сброса
type captureNotifier struct {
	mu     sync.Mutex
	tokens map[string]string // email -> token
}

func (n *captureNotifier) NotifyReset(_ context.Context, user *models.User, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tokens == nil {
		n.tokens = make(map[string]string)
	}
	n.tokens[user.Email] = token
	return nil
}

func (n *captureNotifier) token(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens[email]
}

type testEnv struct {
	store    *sqlite.Storage
	tokens   *jwt.Service
	notifier *captureNotifier
	auth     *AuthHandler
	projects *ProjectHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := setupTestLogger()
	tokens := jwt.NewService(testSecret, time.Hour)
	notifier := &captureNotifier{}

	return &testEnv{
		store:    store,
		tokens:   tokens,
		notifier: notifier,
		auth: NewAuthHandler(logger, store, store, store, tokens, notifier, AuthConfig{
			ResetTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		}),
		projects: NewProjectHandler(logger, store, store),
	}
}

// signup регистрирует пользователя и возвращает его ID и ID сессии
func (e *testEnv) signup(t *testing.T, email string) (string, string) {
	t.Helper()

	w := serve(e.auth.Signup, newJSONRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	claims, err := e.tokens.Parse(resp.Token)
	require.NoError(t, err)
	return claims.UserID, claims.ID
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// authed добавляет в контекст данные, которые выставляет auth middleware
func authed(req *http.Request, userID, sessionID string) *http.Request {
	return req.WithContext(WithAuth(req.Context(), userID, sessionID))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// serveMux прогоняет запрос через ServeMux, чтобы заполнить PathValue
func serveMux(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}
