// Package session owns the signed-in user of the client process.
//
// A Manager moves through two phases. It starts in PhaseResolving until
// Bootstrap has checked the stored token, then stays in PhaseReady for the
// rest of the process; login, signup and logout only switch the user.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/optimizeai/internal/client/storage"
	"github.com/iudanet/optimizeai/pkg/api"
)

//go:generate moq -out auth_client_mock_test.go . AuthClient

// AuthClient is the part of the remote API the session needs.
type AuthClient interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, req api.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req api.ResetPasswordRequest) error
}

// ErrEmptyToken is returned when the server answers login or signup without a token.
var ErrEmptyToken = errors.New("server returned an empty token")

// Phase is the bootstrap progress of the session.
type Phase int

const (
	PhaseResolving Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseResolving:
		return "resolving"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a snapshot of the session. User is nil when nobody is signed in.
type State struct {
	User  *api.User
	Phase Phase
}

// IsAuthenticated reports whether a user is signed in. It is derived, never stored.
func (s State) IsAuthenticated() bool {
	return s.Phase == PhaseReady && s.User != nil
}

// Listener receives the new state after every transition.
type Listener func(State)

// Manager is the single owner of the session state and the only writer of the credential store.
type Manager struct {
	client AuthClient
	store  storage.CredentialStore
	logger *slog.Logger

	bootOnce sync.Once
	booted   chan struct{}

	// notifyMu держится на время изменения и рассылки, чтобы слушатели видели переходы по порядку
	notifyMu sync.Mutex

	mu        sync.Mutex
	state     State
	epoch     uint64 // растёт при каждом login/signup/logout
	listeners map[uint64]Listener
	nextID    uint64
}

// NewManager creates a manager in PhaseResolving. Call Bootstrap to leave it.
func NewManager(client AuthClient, store storage.CredentialStore, logger *slog.Logger) *Manager {
	return &Manager{
		client:    client,
		store:     store,
		logger:    logger,
		booted:    make(chan struct{}),
		state:     State{Phase: PhaseResolving},
		listeners: make(map[uint64]Listener),
	}
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run synchronously on the goroutine that made the transition and
// must not call Login, Signup or Logout themselves.
func (m *Manager) Subscribe(l Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Bootstrap resolves the stored token into a user exactly once per manager.
// Concurrent and later callers share the same run; ctx only bounds how long
// this caller waits, the run itself is not cancelled by it.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.bootOnce.Do(func() {
		go m.bootstrap(context.WithoutCancel(ctx))
	})

	select {
	case <-m.booted:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once bootstrap has finished.
func (m *Manager) Done() <-chan struct{} {
	return m.booted
}

func (m *Manager) bootstrap(ctx context.Context) {
	defer close(m.booted)

	m.mu.Lock()
	epoch := m.epoch
	m.mu.Unlock()

	if _, err := m.store.GetToken(ctx); err != nil {
		if !errors.Is(err, storage.ErrTokenNotFound) {
			m.logger.WarnContext(ctx, "failed to read stored token", slog.Any("error", err))
		}
		m.finishBootstrap(epoch, nil)
		return
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		// Любая ошибка означает, что токен больше не годится
		m.logger.InfoContext(ctx, "stored token rejected, clearing session", slog.Any("error", err))
		if delErr := m.store.DeleteToken(ctx); delErr != nil {
			m.logger.WarnContext(ctx, "failed to delete stored token", slog.Any("error", delErr))
		}
		m.finishBootstrap(epoch, nil)
		return
	}

	m.logger.DebugContext(ctx, "session restored", slog.String("user_id", user.ID))
	m.finishBootstrap(epoch, user)
}

func (m *Manager) finishBootstrap(epoch uint64, user *api.User) {
	m.transition(func(s *State) {
		// Результат устарел, если во время bootstrap был logout
		if m.epoch == epoch {
			s.User = user
		}
		s.Phase = PhaseReady
	})
}

// Login exchanges credentials for a token. On failure neither the state nor the store changes.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.User, error) {
	if err := m.Bootstrap(ctx); err != nil {
		return nil, err
	}

	resp, err := m.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := m.establish(ctx, resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	m.logger.InfoContext(ctx, "user logged in", slog.String("user_id", resp.User.ID))
	return &resp.User, nil
}

// Signup registers an account and signs it in. On failure neither the state nor the store changes.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (*api.User, error) {
	if err := m.Bootstrap(ctx); err != nil {
		return nil, err
	}

	resp, err := m.client.Signup(ctx, api.SignupRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	if err := m.establish(ctx, resp); err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	m.logger.InfoContext(ctx, "user signed up", slog.String("user_id", resp.User.ID))
	return &resp.User, nil
}

func (m *Manager) establish(ctx context.Context, resp *api.AuthResponse) error {
	if resp.Token == "" {
		return ErrEmptyToken
	}

	// Без сохранённого токена защищённые запросы не пройдут
	if err := m.store.SaveToken(ctx, resp.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	user := resp.User
	m.transition(func(s *State) {
		m.epoch++
		s.User = &user
		s.Phase = PhaseReady
	})
	return nil
}

// Logout signs the user out. The server call is best-effort: its errors are
// logged and ignored, and the local token and user are always cleared.
// A logout during bootstrap leaves the phase resolving and discards the
// bootstrap result.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.WarnContext(ctx, "server logout failed, clearing local session anyway", slog.Any("error", err))
	}

	if err := m.store.DeleteToken(ctx); err != nil {
		m.logger.ErrorContext(ctx, "failed to delete stored token", slog.Any("error", err))
	}

	m.transition(func(s *State) {
		m.epoch++
		s.User = nil
		// Пока идёт bootstrap, в ready переводит только finishBootstrap
		if s.Phase != PhaseResolving {
			s.Phase = PhaseReady
		}
	})

	m.logger.InfoContext(ctx, "user logged out")
}

// ForgotPassword asks the server to send a reset link. It does not touch the session.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	if err := m.client.ForgotPassword(ctx, api.ForgotPasswordRequest{Email: email}); err != nil {
		return fmt.Errorf("forgot password failed: %w", err)
	}
	return nil
}

// ResetPassword sets a new password using a reset token. It does not sign the user in.
func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := m.client.ResetPassword(ctx, api.ResetPasswordRequest{Token: token, NewPassword: newPassword}); err != nil {
		return fmt.Errorf("reset password failed: %w", err)
	}
	return nil
}

// transition применяет изменение и уведомляет слушателей вне m.mu
func (m *Manager) transition(apply func(s *State)) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	apply(&m.state)
	snapshot := m.snapshotLocked()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func (m *Manager) snapshotLocked() State {
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
