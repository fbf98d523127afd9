package dashboard

import (
	"context"
	"time"

	"github.com/iudanet/optimizeai/internal/client/cache"
)

// ViewState is what a live view renders.
type ViewState[T any] struct {
	Data      T
	HasData   bool
	State     cache.FetchState
	Err       error
	Stale     bool
	UpdatedAt time.Time
}

// Loading reports whether there is nothing to show yet.
func (v ViewState[T]) Loading() bool {
	return !v.HasData && (v.State == cache.StateLoading || v.State == cache.StateIdle)
}

// View is a mounted view of one cache key. Close unmounts it.
type View struct {
	sub *cache.Subscription
}

// Key returns the watched cache key.
func (v *View) Key() cache.Key {
	return v.sub.Key()
}

// Close stops updates.
func (v *View) Close() {
	v.sub.Close()
}

func watch[T any](c *cache.Cache, key cache.Key, fetch func(context.Context) (T, error), fn func(ViewState[T])) (*View, error) {
	sub, err := c.Subscribe(key, fetcher(fetch), func(snap cache.Snapshot) {
		fn(viewState[T](snap))
	})
	if err != nil {
		return nil, err
	}
	return &View{sub: sub}, nil
}

func viewState[T any](snap cache.Snapshot) ViewState[T] {
	data, _ := snap.Data.(T)
	return ViewState[T]{
		Data:      data,
		HasData:   snap.HasData,
		State:     snap.State,
		Err:       snap.Err,
		Stale:     snap.Stale,
		UpdatedAt: snap.UpdatedAt,
	}
}
