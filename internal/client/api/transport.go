package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/iudanet/optimizeai/internal/client/storage"
)

// RequestIDHeader заголовок для корреляции запросов клиента с логами сервера
const RequestIDHeader = "X-Request-ID"

// requestIDTransport добавляет X-Request-ID к каждому запросу
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.base.RoundTrip(req)
	}
	// RoundTripper не должен изменять исходный запрос
	clone := req.Clone(req.Context())
	clone.Header.Set(RequestIDHeader, uuid.NewString())
	return t.base.RoundTrip(clone)
}

// storeTokenSource читает токен из CredentialStore при каждом запросе,
// поэтому login и logout сразу влияют на последующие вызовы
type storeTokenSource struct {
	store storage.CredentialStore
}

// NewTokenSource создает oauth2.TokenSource поверх хранилища токенов
func NewTokenSource(store storage.CredentialStore) oauth2.TokenSource {
	return &storeTokenSource{store: store}
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	raw, err := s.store.GetToken(context.Background())
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, fmt.Errorf("no stored token: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to read stored token: %w", err)
	}

	token := &oauth2.Token{
		AccessToken: raw,
		TokenType:   "Bearer",
	}
	if exp, ok := TokenExpiry(raw); ok {
		token.Expiry = exp
	}
	return token, nil
}

// TokenExpiry извлекает exp из JWT без проверки подписи
// Токен для клиента непрозрачен; результат используется только для отображения
func TokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
