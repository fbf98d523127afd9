package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/optimizeai/internal/client/api"
	"github.com/iudanet/optimizeai/internal/client/dashboard"
	"github.com/iudanet/optimizeai/pkg/api"
)

// syncBuffer буфер, безопасный для записи из слушателей кэша
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// feedLines подает строки в ввод по одной, как пользователь за терминалом
func feedLines(t *testing.T) (io.Reader, chan<- string) {
	t.Helper()

	pr, pw := io.Pipe()
	lines := make(chan string, 8)
	go func() {
		for l := range lines {
			if _, err := io.WriteString(pw, l+"\n"); err != nil {
				return
			}
		}
	}()
	t.Cleanup(func() {
		close(lines)
		_ = pw.Close()
	})
	return pr, lines
}

// readLine читает строку через IO приложения с ограничением по времени
func readLine(t *testing.T, a *App) string {
	t.Helper()

	got := make(chan string, 1)
	go func() {
		line, _ := a.io.ReadInput("> ")
		got <- line
	}()

	select {
	case line := <-got:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("input was consumed by someone else")
		return ""
	}
}

func TestWatch_ForDuration(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)
	createProject(t, env, "Watched Site", "")

	out := env.mustRun(t, "", "watch", "projects", "--for", "300ms")
	assert.Contains(t, out, "Projects: updated")
	assert.Contains(t, out, "Watched Site")
}

func TestWatch_Arguments(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	_, err := env.run(t, "", "watch", "project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project ID is required")

	_, err = env.run(t, "", "watch", "everything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view")
}

func TestWatch_StopsOnEnter(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)
	id := createProject(t, env, "Docs", "")

	out := env.mustRun(t, "\n", "watch", "audits", id)
	assert.Contains(t, out, "press Enter to stop")
	assert.Contains(t, out, "No audits yet")
}

func TestLiveView_RefreshesAfterMutation(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	var out syncBuffer
	a := env.newApp(t, &out)
	ctx := context.Background()
	require.NoError(t, a.Session().Bootstrap(ctx))

	v := newLiveView(a, "Projects", 0)
	view, err := a.Dashboard().WatchProjects(func(s dashboard.ViewState[[]api.Project]) {
		show(v, s, renderProjects)
	})
	require.NoError(t, err)
	defer view.Close()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "No projects yet")
	}, 2*time.Second, 10*time.Millisecond)

	_, err = a.Dashboard().CreateProject(ctx, api.ProjectInput{Name: "Fresh Project"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Fresh Project")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLiveView_StopsWhenTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	var out syncBuffer
	a := env.newApp(t, &out)
	ctx := context.Background()
	require.NoError(t, a.Session().Bootstrap(ctx))
	userID := a.Session().State().User.ID

	v := newLiveView(a, "Projects", 5*time.Second)
	view, err := a.Dashboard().WatchProjects(func(s dashboard.ViewState[[]api.Project]) {
		show(v, s, renderProjects)
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Projects: updated")
	}, 2*time.Second, 10*time.Millisecond)

	_, err = env.store.DeleteUserSessions(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, a.Dashboard().Cache().Invalidate(ctx, dashboard.ProjectsKey()))

	err = v.wait(ctx, view)
	require.ErrorIs(t, err, clientapi.ErrUnauthorized)
}

func TestLiveView_RejectedAfterRenderLeavesNextLine(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	in, lines := feedLines(t)
	var out syncBuffer
	a := env.newAppIO(t, in, &out)
	ctx := context.Background()
	require.NoError(t, a.Session().Bootstrap(ctx))
	userID := a.Session().State().User.ID

	v := newLiveView(a, "Projects", 0)
	view, err := a.Dashboard().WatchProjects(func(s dashboard.ViewState[[]api.Project]) {
		show(v, s, renderProjects)
	})
	require.NoError(t, err)

	waitErr := make(chan error, 1)
	go func() { waitErr <- v.wait(ctx, view) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "press Enter to stop")
	}, 2*time.Second, 10*time.Millisecond)

	_, err = env.store.DeleteUserSessions(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, a.Dashboard().Cache().Invalidate(ctx, dashboard.ProjectsKey()))

	// wait не возвращается, пока его читатель не получит свою строку
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "press Enter to return")
	}, 2*time.Second, 10*time.Millisecond)
	select {
	case <-waitErr:
		t.Fatal("wait returned while its reader was still waiting for input")
	default:
	}

	lines <- ""
	select {
	case err := <-waitErr:
		require.ErrorIs(t, err, clientapi.ErrUnauthorized)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not return after Enter")
	}

	lines <- "projects list"
	assert.Equal(t, "projects list", readLine(t, a))
}

func TestLiveView_RejectedBeforeRenderReadsNothing(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	in, lines := feedLines(t)
	var out syncBuffer
	a := env.newAppIO(t, in, &out)
	ctx := context.Background()
	require.NoError(t, a.Session().Bootstrap(ctx))

	_, err := env.store.DeleteUserSessions(ctx, a.Session().State().User.ID)
	require.NoError(t, err)

	v := newLiveView(a, "Projects", 0)
	view, err := a.Dashboard().WatchProjects(func(s dashboard.ViewState[[]api.Project]) {
		show(v, s, renderProjects)
	})
	require.NoError(t, err)

	waitErr := make(chan error, 1)
	go func() { waitErr <- v.wait(ctx, view) }()

	select {
	case err := <-waitErr:
		require.ErrorIs(t, err, clientapi.ErrUnauthorized)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not return after the token was rejected")
	}
	assert.NotContains(t, out.String(), "press Enter")

	lines <- "status"
	assert.Equal(t, "status", readLine(t, a))
}
