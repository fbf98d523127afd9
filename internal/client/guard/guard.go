// Package guard decides whether a protected destination may be shown for a
// given session state. Decide never touches the network.
package guard

import (
	"context"
	"strings"

	"github.com/iudanet/optimizeai/internal/client/session"
)

const (
	// SignInPath куда отправляется неаутентифицированный пользователь
	SignInPath = "/login"
	// ProtectedPrefix все маршруты дашборда
	ProtectedPrefix = "/app"
)

// Action is what the view layer should do with the destination.
type Action int

const (
	ActionRender Action = iota
	ActionLoading
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionRender:
		return "render"
	case ActionLoading:
		return "loading"
	case ActionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of Decide. Location and ReturnTo are set only for ActionRedirect.
type Decision struct {
	Action   Action
	Location string
	ReturnTo string
}

// IsProtected reports whether destination requires a signed-in user.
func IsProtected(destination string) bool {
	path := destination
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return path == ProtectedPrefix || strings.HasPrefix(path, ProtectedPrefix+"/")
}

// Decide maps a session state and a destination to an action.
// Public destinations always render.
func Decide(state session.State, destination string) Decision {
	if !IsProtected(destination) {
		return Decision{Action: ActionRender}
	}

	switch {
	case state.Phase == session.PhaseResolving:
		return Decision{Action: ActionLoading}
	case state.IsAuthenticated():
		return Decision{Action: ActionRender}
	default:
		return Decision{Action: ActionRedirect, Location: SignInPath, ReturnTo: destination}
	}
}

// Source is the read side of session.Manager.
type Source interface {
	State() session.State
	Subscribe(l session.Listener) func()
}

// Await blocks until Decide stops returning ActionLoading for destination.
func Await(ctx context.Context, src Source, destination string) (Decision, error) {
	changed := make(chan struct{}, 1)
	unsubscribe := src.Subscribe(func(session.State) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		d := Decide(src.State(), destination)
		if d.Action != ActionLoading {
			return d, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return Decision{Action: ActionLoading}, ctx.Err()
		}
	}
}
