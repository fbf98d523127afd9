// Package app wires the development API server: storage, handlers, middleware
// and the HTTP listener.
package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/optimizeai/internal/server/handlers"
	"github.com/iudanet/optimizeai/internal/server/jwt"
	"github.com/iudanet/optimizeai/internal/server/middleware"
	"github.com/iudanet/optimizeai/internal/server/storage/sqlite"
)

// RouterConfig параметры маршрутизатора
type RouterConfig struct {
	Version      string
	Auth         handlers.AuthConfig
	RateRequests int
	RateWindow   time.Duration
}

// Router HTTP обработчик dev сервера
// Stop останавливает фоновые горутины rate limiter
type Router struct {
	http.Handler
	limiter *middleware.RateLimiter
}

// Stop освобождает ресурсы маршрутизатора
func (r *Router) Stop() {
	r.limiter.Stop()
}

// NewRouter собирает все маршруты API
//
// Публичные auth маршруты ограничены по частоте запросов,
// остальные маршруты кроме health требуют bearer токен.
func NewRouter(logger *slog.Logger, store *sqlite.Storage, tokens *jwt.Service, notifier handlers.ResetNotifier, cfg RouterConfig) *Router {
	authHandler := handlers.NewAuthHandler(logger, store, store, store, tokens, notifier, cfg.Auth)
	projectHandler := handlers.NewProjectHandler(logger, store, store)
	healthHandler := handlers.NewHealthHandler(logger, store, cfg.Version)

	limiter := middleware.NewRateLimiter(cfg.RateRequests, cfg.RateWindow, logger)
	requireAuth := middleware.AuthMiddleware(logger, tokens, store)

	public := func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
	protected := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", healthHandler.Health)

	mux.Handle("POST /api/auth/signup", public(authHandler.Signup))
	mux.Handle("POST /api/auth/login", public(authHandler.Login))
	mux.Handle("POST /api/auth/forgot-password", public(authHandler.ForgotPassword))
	mux.Handle("POST /api/auth/reset-password", public(authHandler.ResetPassword))
	mux.Handle("GET /api/auth/me", protected(authHandler.Me))
	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))

	mux.Handle("GET /api/projects", protected(projectHandler.List))
	mux.Handle("POST /api/projects", protected(projectHandler.Create))
	mux.Handle("GET /api/projects/{id}", protected(projectHandler.Get))
	mux.Handle("PATCH /api/projects/{id}", protected(projectHandler.Update))
	mux.Handle("DELETE /api/projects/{id}", protected(projectHandler.Delete))
	mux.Handle("GET /api/projects/{id}/audits", protected(projectHandler.ListAudits))
	mux.Handle("POST /api/projects/{id}/audits", protected(projectHandler.CreateAudit))

	// Порядок: recovery -> logging -> mux
	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, "/api/health")(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Router{Handler: handler, limiter: limiter}
}
