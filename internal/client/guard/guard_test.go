package guard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/optimizeai/internal/client/session"
	"github.com/iudanet/optimizeai/pkg/api"
)

func TestDecide(t *testing.T) {
	user := &api.User{ID: "u1"}

	tests := []struct {
		name        string
		state       session.State
		destination string
		want        Decision
	}{
		{
			name:        "resolving shows loading",
			state:       session.State{Phase: session.PhaseResolving},
			destination: "/app/projects",
			want:        Decision{Action: ActionLoading},
		},
		{
			name:        "authenticated renders",
			state:       session.State{Phase: session.PhaseReady, User: user},
			destination: "/app/projects/p1",
			want:        Decision{Action: ActionRender},
		},
		{
			name:        "unauthenticated redirects with return path",
			state:       session.State{Phase: session.PhaseReady},
			destination: "/app/projects/p1/audits/new",
			want:        Decision{Action: ActionRedirect, Location: SignInPath, ReturnTo: "/app/projects/p1/audits/new"},
		},
		{
			name:        "app root is protected",
			state:       session.State{Phase: session.PhaseReady},
			destination: "/app",
			want:        Decision{Action: ActionRedirect, Location: SignInPath, ReturnTo: "/app"},
		},
		{
			name:        "public route renders while resolving",
			state:       session.State{Phase: session.PhaseResolving},
			destination: "/login",
			want:        Decision{Action: ActionRender},
		},
		{
			name:        "prefix lookalike is public",
			state:       session.State{Phase: session.PhaseReady},
			destination: "/application",
			want:        Decision{Action: ActionRender},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state, tt.destination))
		})
	}
}

func TestIsProtected(t *testing.T) {
	assert.True(t, IsProtected("/app/settings"))
	assert.True(t, IsProtected("/app?tab=billing"))
	assert.False(t, IsProtected("/"))
	assert.False(t, IsProtected("/reset-password?token=x"))
}

// fakeSource позволяет вручную переключать состояние сессии
type fakeSource struct {
	mu        sync.Mutex
	state     session.State
	listeners []session.Listener
}

func (f *fakeSource) State() session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSource) Subscribe(l session.Listener) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, l)
	return func() {}
}

func (f *fakeSource) set(s session.State) {
	f.mu.Lock()
	f.state = s
	listeners := append([]session.Listener(nil), f.listeners...)
	f.mu.Unlock()
	for _, l := range listeners {
		l(s)
	}
}

func TestAwait_WaitsForBootstrap(t *testing.T) {
	src := &fakeSource{state: session.State{Phase: session.PhaseResolving}}

	done := make(chan Decision, 1)
	go func() {
		d, err := Await(context.Background(), src, "/app/projects")
		assert.NoError(t, err)
		done <- d
	}()

	select {
	case <-done:
		t.Fatal("Await returned while resolving")
	case <-time.After(20 * time.Millisecond):
	}

	src.set(session.State{Phase: session.PhaseReady})

	select {
	case d := <-done:
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, "/app/projects", d.ReturnTo)
	case <-time.After(time.Second):
		t.Fatal("Await did not return after bootstrap")
	}
}

func TestAwait_ContextCancelled(t *testing.T) {
	src := &fakeSource{state: session.State{Phase: session.PhaseResolving}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	d, err := Await(ctx, src, "/app/projects")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, ActionLoading, d.Action)
}

func TestAwait_ReadyImmediately(t *testing.T) {
	src := &fakeSource{state: session.State{Phase: session.PhaseReady, User: &api.User{ID: "u1"}}}

	d, err := Await(context.Background(), src, "/app/projects")
	require.NoError(t, err)
	assert.Equal(t, ActionRender, d.Action)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "render", ActionRender.String())
	assert.Equal(t, "loading", ActionLoading.String())
	assert.Equal(t, "redirect", ActionRedirect.String())
}
