package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/optimizeai/internal/config"
	"github.com/iudanet/optimizeai/internal/server/handlers"
	"github.com/iudanet/optimizeai/internal/server/jwt"
	"github.com/iudanet/optimizeai/internal/server/storage/sqlite"
)

const (
	shutdownTimeout = 10 * time.Second
	// sessionSweepInterval период удаления истекших сессий
	sessionSweepInterval = 10 * time.Minute
)

// Server dev API сервер
type Server struct {
	logger *slog.Logger
	store  *sqlite.Storage
	router *Router
	cfg    *config.ServerConfig
}

// New открывает базу данных и собирает маршруты
func New(ctx context.Context, cfg *config.ServerConfig, logger *slog.Logger, version string) (*Server, error) {
	store, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	tokens := jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := NewRouter(logger, store, tokens, handlers.LogNotifier{Logger: logger}, RouterConfig{
		Version: version,
		Auth: handlers.AuthConfig{
			ResetTTL: cfg.Auth.ResetTTL,
		},
		RateRequests: cfg.RateLimit.Requests,
		RateWindow:   cfg.RateLimit.Window,
	})

	return &Server{logger: logger, store: store, router: router, cfg: cfg}, nil
}

// Run слушает адрес из конфигурации до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx, затем корректно завершает работу
// и закрывает базу данных
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.InfoContext(ctx, "server started", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.sweepSessions(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()

	s.router.Stop()
	if cerr := s.store.Close(); cerr != nil {
		s.logger.Error("failed to close storage", slog.Any("error", cerr))
	}

	return err
}

// sweepSessions периодически удаляет истекшие сессии
func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := s.store.DeleteExpiredSessions(ctx)
			if err != nil {
				s.logger.WarnContext(ctx, "failed to delete expired sessions", slog.Any("error", err))
				continue
			}
			if n > 0 {
				s.logger.InfoContext(ctx, "expired sessions deleted", slog.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}
