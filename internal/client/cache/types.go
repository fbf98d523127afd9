package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrReset is returned to waiters whose request was dropped by Reset or Remove.
	ErrReset = errors.New("cache entry was reset")
	// ErrClosed is returned by operations on a closed cache.
	ErrClosed = errors.New("cache is closed")
)

// Key identifies a cached resource, for example {Scope: "project", ID: "42"}.
// Params distinguishes variants of the same resource such as list pages.
type Key struct {
	Scope  string
	ID     string
	Params string
}

func (k Key) String() string {
	s := k.Scope
	if k.ID != "" {
		s += "/" + k.ID
	}
	if k.Params != "" {
		s += "?" + k.Params
	}
	return s
}

// Matches reports whether k selects other when used in Invalidate or Remove.
// Empty ID or Params act as wildcards, so {Scope: "project-audits", ID: "42"}
// selects every page of that project's audits.
func (k Key) Matches(other Key) bool {
	return k.Scope == other.Scope &&
		(k.ID == "" || k.ID == other.ID) &&
		(k.Params == "" || k.Params == other.Params)
}

// FetchState is the progress of the most recent request for an entry.
type FetchState int

const (
	StateIdle FetchState = iota
	StateLoading
	StateSuccess
	StateError
)

func (s FetchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("FetchState(%d)", int(s))
	}
}

// Fetcher loads the value for a key. The context belongs to the cache, not to
// the caller that triggered the request.
type Fetcher func(ctx context.Context) (any, error)

// Snapshot is an immutable view of an entry.
// After a failed refresh Data still holds the last successful value.
type Snapshot struct {
	Key       Key
	Data      any
	HasData   bool
	State     FetchState
	Err       error
	UpdatedAt time.Time
	Stale     bool
	Version   uint64 // растёт при каждом изменении записи
}

// Listener receives snapshots of a subscribed key. Snapshots older than one
// already delivered are dropped, but a listener may be called from different
// goroutines.
type Listener func(Snapshot)

// Effect lists the keys a successful mutation makes outdated.
// Invalidate keys are marked stale and refetched if subscribed,
// Remove keys are dropped from the cache. Keys are matched with Key.Matches.
type Effect struct {
	Invalidate []Key
	Remove     []Key
}

// MutateFunc performs a write against the server.
type MutateFunc func(ctx context.Context) (any, error)
