// Package cli implements the terminal dashboard: one-shot cobra commands and
// an interactive shell in which all commands share one session and one cache.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/optimizeai/internal/client/api"
	"github.com/iudanet/optimizeai/internal/client/cache"
	"github.com/iudanet/optimizeai/internal/client/dashboard"
	"github.com/iudanet/optimizeai/internal/client/guard"
	"github.com/iudanet/optimizeai/internal/client/iocli"
	"github.com/iudanet/optimizeai/internal/client/session"
	"github.com/iudanet/optimizeai/internal/client/storage"
	"github.com/iudanet/optimizeai/internal/client/storage/boltdb"
	"github.com/iudanet/optimizeai/internal/config"
)

var (
	// ErrNotSignedIn is returned by protected commands when nobody is signed in.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrSessionExpired is returned when the server rejects the stored token mid-session.
	ErrSessionExpired = errors.New("session expired")
)

// Components are the parts of the client that talk to the outside world.
type Components struct {
	Store  storage.CredentialStore
	Client *api.Client
	Close  func() error
}

// Opener builds Components from the loaded configuration.
type Opener func(ctx context.Context, cfg *config.ClientConfig) (*Components, error)

// OpenDefault opens the bbolt credential store and the HTTP client.
func OpenDefault(ctx context.Context, cfg *config.ClientConfig) (*Components, error) {
	store, err := boltdb.New(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	return &Components{
		Store:  store,
		Client: api.NewClient(cfg.Server.URL, store, api.WithTimeout(cfg.HTTP.Timeout)),
		Close:  store.Close,
	}, nil
}

// App holds everything a command needs. One App lives for the whole process,
// so the shell and live views share its session and cache.
type App struct {
	io          iocli.IO
	logger      *slog.Logger
	cfg         *config.ClientConfig
	comps       *Components
	session     *session.Manager
	cache       *cache.Cache
	dash        *dashboard.Service
	unsubscribe func()
}

// NewApp wires the session manager and the dashboard over comps and starts
// restoring the stored session in the background.
func NewApp(ctx context.Context, cfg *config.ClientConfig, out iocli.IO, logger *slog.Logger, comps *Components) (*App, error) {
	c, err := dashboard.NewCache(logger,
		cache.WithStaleTime(cfg.Cache.StaleTime),
		cache.WithMaxInactive(cfg.Cache.MaxInactive),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	a := &App{
		io:      out,
		logger:  logger,
		cfg:     cfg,
		comps:   comps,
		session: session.NewManager(comps.Client, comps.Store, logger),
		cache:   c,
		dash:    dashboard.NewService(comps.Client, c, logger),
	}

	// Данные одного пользователя не должны быть видны другому
	var current string
	a.unsubscribe = a.session.Subscribe(func(s session.State) {
		id := ""
		if s.User != nil {
			id = s.User.ID
		}
		if id != current && current != "" {
			a.logger.Debug("signed-in user changed, dropping cached data")
			a.dash.Reset()
		}
		current = id
	})

	go func() {
		_ = a.session.Bootstrap(context.WithoutCancel(ctx))
	}()

	return a, nil
}

// bootstrapWait ограничивает ожидание фонового восстановления сессии при закрытии
const bootstrapWait = 2 * time.Second

// Close releases the cache and the local database.
func (a *App) Close() error {
	// Восстановление сессии читает хранилище, закрывать его раньше нельзя
	select {
	case <-a.session.Done():
	case <-time.After(bootstrapWait):
		a.logger.Warn("session restore still running, closing anyway")
	}

	a.unsubscribe()
	a.cache.Close()
	if a.comps.Close != nil {
		return a.comps.Close()
	}
	return nil
}

// Session returns the session manager.
func (a *App) Session() *session.Manager {
	return a.session
}

// Dashboard returns the dashboard service.
func (a *App) Dashboard() *dashboard.Service {
	return a.dash
}

// protected runs fn only if the guard lets the user see destination.
// An ErrUnauthorized from fn means the token was revoked on the server:
// the session is cleared and ErrSessionExpired is returned.
func (a *App) protected(ctx context.Context, destination string, fn func(ctx context.Context) error) error {
	d, err := guard.Await(ctx, a.session, destination)
	if err != nil {
		return err
	}

	if d.Action == guard.ActionRedirect {
		return fmt.Errorf("%w: run 'login' to open %s", ErrNotSignedIn, d.ReturnTo)
	}

	err = fn(ctx)
	if errors.Is(err, api.ErrUnauthorized) {
		a.logger.InfoContext(ctx, "token rejected by server, signing out", slog.Any("error", err))
		a.session.Logout(ctx)
		return fmt.Errorf("%w: please run 'login' again", ErrSessionExpired)
	}
	return err
}
