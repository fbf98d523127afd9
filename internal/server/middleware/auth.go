package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/optimizeai/internal/models"
	"github.com/iudanet/optimizeai/internal/server/handlers"
	"github.com/iudanet/optimizeai/internal/server/jwt"
	"github.com/iudanet/optimizeai/internal/server/storage"
)

// SessionLookup проверяет, что сессия токена не отозвана
type SessionLookup interface {
	GetSession(ctx context.Context, id string) (*models.Session, error)
}

// AuthMiddleware создает middleware для проверки bearer токена
// Токен принимается, только если подпись верна и его сессия существует
func AuthMiddleware(logger *slog.Logger, tokens *jwt.Service, sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "missing Authorization header")
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.WarnContext(ctx, "invalid Authorization header format")
				writeError(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				logger.WarnContext(ctx, "invalid access token", slog.Any("error", err))
				writeError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			session, err := sessions.GetSession(ctx, claims.ID)
			if err != nil {
				if errors.Is(err, storage.ErrSessionNotFound) {
					logger.WarnContext(ctx, "session revoked", slog.String("user_id", claims.UserID))
					writeError(w, "session has been revoked", http.StatusUnauthorized)
					return
				}
				logger.ErrorContext(ctx, "failed to get session", slog.Any("error", err))
				writeError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			if session.UserID != claims.UserID {
				logger.WarnContext(ctx, "session belongs to another user", slog.String("user_id", claims.UserID))
				writeError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			logger.DebugContext(ctx, "user authenticated", slog.String("user_id", claims.UserID))

			next.ServeHTTP(w, r.WithContext(handlers.WithAuth(ctx, claims.UserID, claims.ID)))
		})
	}
}
