// Package cache keeps server-backed entities shared between views.
//
// Each key has at most one request in flight. Requests are numbered in issue
// order; a response is applied only if no later request for the same key has
// been issued since, so an old response can never overwrite newer data.
// Successful mutations mark keys stale and refetch the ones somebody is
// subscribed to before returning.
package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// Cache is safe for concurrent use.
type Cache struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
	now    func() time.Time

	staleTime    time.Duration
	maxInactive  int
	clearOnError func(error) bool

	mu       sync.Mutex
	entries  map[Key]*entry
	inactive *lru.Cache[Key, struct{}] // nil если вытеснение отключено
	seq      uint64                    // порядковый номер запросов и инвалидаций
	version  uint64
	nextSub  uint64
	closed   bool
}

type entry struct {
	key       Key
	data      any
	hasData   bool
	state     FetchState
	err       error
	updatedAt time.Time
	fetcher   Fetcher
	dataSeq   uint64 // seq запроса, который дал текущие data
	invalidAt uint64 // seq последней инвалидации
	version   uint64
	inflight  *flight
	listeners map[uint64]*Subscription
}

// flight завершается ровно одним способом: применён (snap), вытеснен (next) или сброшен (reset)
type flight struct {
	seq      uint64
	done     chan struct{}
	finished bool
	next     *flight
	reset    bool
	snap     Snapshot
}

type notification struct {
	sub  *Subscription
	snap Snapshot
}

// New creates a cache. Call Close to cancel requests still running.
func New(opts ...Option) (*Cache, error) {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Cache{
		ctx:         ctx,
		cancel:      cancel,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
		staleTime:   DefaultStaleTime,
		maxInactive: DefaultMaxInactive,
		entries:     make(map[Key]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.maxInactive > 0 {
		inactive, err := lru.NewWithEvict[Key, struct{}](c.maxInactive, c.evictLocked)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("create inactive entry cache: %w", err)
		}
		c.inactive = inactive
	}

	return c, nil
}

// Query returns the entry for key, fetching it if it is missing or stale.
// Concurrent callers share one request. If the request fails the returned
// snapshot still carries the last successful data and the error is returned.
// Cancelling ctx stops waiting but not the request.
func (c *Cache) Query(ctx context.Context, key Key, fetch Fetcher, opts ...QueryOption) (Snapshot, error) {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Snapshot{Key: key}, ErrClosed
	}

	e := c.entryLocked(key)
	e.fetcher = fetch
	c.touchLocked(e)

	if !o.force && c.freshLocked(e) {
		snap := c.snapshotLocked(e)
		c.mu.Unlock()
		return snap, nil
	}

	fl := e.inflight
	var notes []notification
	if !c.reusableLocked(e) {
		fl, notes = c.startLocked(e)
	}
	c.mu.Unlock()

	c.dispatch(notes)
	return c.wait(ctx, key, fl)
}

// Peek returns the cached entry without fetching.
func (c *Cache) Peek(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{Key: key}, false
	}
	return c.snapshotLocked(e), true
}

// Invalidate marks matching entries stale and refetches those with subscribers,
// returning once the refetches have settled. Fetch errors are recorded in
// the entries, only ctx errors are returned.
func (c *Cache) Invalidate(ctx context.Context, keys ...Key) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	c.seq++
	mark := c.seq

	type pending struct {
		key Key
		fl  *flight
	}
	var (
		refetches []pending
		notes     []notification
	)
	for _, e := range c.matchLocked(keys) {
		e.invalidAt = mark

		if len(e.listeners) > 0 && e.fetcher != nil {
			fl, n := c.startLocked(e)
			refetches = append(refetches, pending{key: e.key, fl: fl})
			notes = append(notes, n...)
		}
	}
	c.mu.Unlock()

	c.dispatch(notes)

	var g errgroup.Group
	for _, p := range refetches {
		g.Go(func() error {
			_, _ = c.wait(ctx, p.key, p.fl)
			return ctx.Err()
		})
	}
	return g.Wait()
}

// Mutate runs op once. On failure nothing is invalidated and the error is
// returned. On success the effect is applied and subscribed keys are
// refetched before Mutate returns; a cancelled ctx stops that wait but the
// mutation result is still returned.
func (c *Cache) Mutate(ctx context.Context, op MutateFunc, effect Effect) (any, error) {
	result, err := op(ctx)
	if err != nil {
		return nil, err
	}

	c.Remove(effect.Remove...)

	if err := c.Invalidate(ctx, effect.Invalidate...); err != nil {
		c.logger.DebugContext(ctx, "stopped waiting for refetch after mutation", slog.Any("error", err))
	}

	return result, nil
}

// Remove drops cached data for matching entries. Pending waiters get ErrReset.
// Subscribed entries stay registered with an empty idle snapshot.
func (c *Cache) Remove(keys ...Key) {
	c.mu.Lock()
	var notes []notification
	for _, e := range c.matchLocked(keys) {
		notes = append(notes, c.clearLocked(e)...)
	}
	c.mu.Unlock()

	c.dispatch(notes)
}

// Reset drops all cached data, for example after the user signs out.
func (c *Cache) Reset() {
	c.mu.Lock()
	var notes []notification
	for _, e := range c.entries {
		notes = append(notes, c.clearLocked(e)...)
	}
	c.mu.Unlock()

	c.logger.Debug("cache reset")
	c.dispatch(notes)
}

// Close cancels running requests. Further calls return ErrClosed.
func (c *Cache) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// Len returns the number of entries held, active and inactive.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// matchLocked возвращает записи, подходящие хотя бы под один из ключей, без повторов
func (c *Cache) matchLocked(keys []Key) []*entry {
	if len(keys) == 0 {
		return nil
	}

	var matched []*entry
	for key, e := range c.entries {
		for _, k := range keys {
			if k.Matches(key) {
				matched = append(matched, e)
				break
			}
		}
	}
	return matched
}

func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{key: key, listeners: make(map[uint64]*Subscription)}
		c.entries[key] = e
	}
	return e
}

// touchLocked отмечает использование записи без подписчиков в LRU
func (c *Cache) touchLocked(e *entry) {
	if c.inactive != nil && len(e.listeners) == 0 {
		c.inactive.Add(e.key, struct{}{})
	}
}

// evictLocked вызывается из LRU под c.mu
func (c *Cache) evictLocked(key Key, _ struct{}) {
	e, ok := c.entries[key]
	if !ok || len(e.listeners) > 0 || e.inflight != nil {
		return
	}
	delete(c.entries, key)
	c.logger.Debug("evicted inactive entry", slog.String("key", key.String()))
}

func (c *Cache) staleLocked(e *entry) bool {
	if !e.hasData || e.dataSeq <= e.invalidAt {
		return true
	}
	return c.now().Sub(e.updatedAt) >= c.staleTime
}

func (c *Cache) freshLocked(e *entry) bool {
	return e.state != StateError && !c.staleLocked(e)
}

// reusableLocked: текущий запрос выпущен после последней инвалидации
func (c *Cache) reusableLocked(e *entry) bool {
	return e.inflight != nil && e.inflight.seq > e.invalidAt
}

func (c *Cache) startLocked(e *entry) (*flight, []notification) {
	c.seq++
	fl := &flight{seq: c.seq, done: make(chan struct{})}

	// Ответ старого запроса больше не будет применён
	if old := e.inflight; old != nil {
		old.next = fl
		old.finished = true
		close(old.done)
	}

	e.inflight = fl
	e.state = StateLoading
	notes := c.changedLocked(e)

	go c.run(e, fl, e.fetcher)

	return fl, notes
}

func (c *Cache) run(e *entry, fl *flight, fetch Fetcher) {
	c.logger.Debug("fetch started", slog.String("key", e.key.String()), slog.Uint64("seq", fl.seq))

	data, err := c.call(fetch)
	c.complete(e, fl, data, err)
}

func (c *Cache) call(fetch Fetcher) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetcher panicked: %v", r)
		}
	}()
	return fetch(c.ctx)
}

func (c *Cache) complete(e *entry, fl *flight, data any, err error) {
	c.mu.Lock()
	if fl.finished {
		c.mu.Unlock()
		c.logger.Debug("discarded superseded response", slog.String("key", e.key.String()), slog.Uint64("seq", fl.seq))
		return
	}

	e.inflight = nil
	if err == nil {
		e.data = data
		e.hasData = true
		e.state = StateSuccess
		e.err = nil
		e.updatedAt = c.now()
		e.dataSeq = fl.seq
	} else {
		e.state = StateError
		e.err = err
		if c.clearOnError != nil && c.clearOnError(err) {
			e.data = nil
			e.hasData = false
			e.dataSeq = 0
		}
		c.logger.Debug("fetch failed", slog.String("key", e.key.String()), slog.Any("error", err))
	}

	notes := c.changedLocked(e)
	fl.snap = c.snapshotLocked(e)
	fl.finished = true

	// Запись могла быть вытеснена из LRU, пока запрос выполнялся
	if _, ok := c.entries[e.key]; ok {
		c.touchLocked(e)
	}
	c.mu.Unlock()

	// Подписчики получают данные раньше, чем ожидающие вернутся
	c.dispatch(notes)
	close(fl.done)
}

// wait следует за цепочкой вытеснивших запросов до применённого
func (c *Cache) wait(ctx context.Context, key Key, fl *flight) (Snapshot, error) {
	for {
		select {
		case <-fl.done:
		case <-ctx.Done():
			snap, _ := c.Peek(key)
			return snap, ctx.Err()
		}

		c.mu.Lock()
		next, reset, snap := fl.next, fl.reset, fl.snap
		c.mu.Unlock()

		switch {
		case reset:
			return Snapshot{Key: key}, ErrReset
		case next != nil:
			fl = next
		default:
			return snap, snap.Err
		}
	}
}

// clearLocked сбрасывает данные записи и отменяет ожидание текущего запроса
func (c *Cache) clearLocked(e *entry) []notification {
	if fl := e.inflight; fl != nil {
		fl.reset = true
		fl.finished = true
		close(fl.done)
		e.inflight = nil
	}

	if len(e.listeners) == 0 {
		delete(c.entries, e.key)
		if c.inactive != nil {
			c.inactive.Remove(e.key)
		}
		return nil
	}

	e.data = nil
	e.hasData = false
	e.state = StateIdle
	e.err = nil
	e.updatedAt = time.Time{}
	e.dataSeq = 0
	return c.changedLocked(e)
}

func (c *Cache) changedLocked(e *entry) []notification {
	c.version++
	e.version = c.version

	if len(e.listeners) == 0 {
		return nil
	}

	snap := c.snapshotLocked(e)
	notes := make([]notification, 0, len(e.listeners))
	for _, sub := range e.listeners {
		notes = append(notes, notification{sub: sub, snap: snap})
	}
	return notes
}

func (c *Cache) snapshotLocked(e *entry) Snapshot {
	return Snapshot{
		Key:       e.key,
		Data:      e.data,
		HasData:   e.hasData,
		State:     e.state,
		Err:       e.err,
		UpdatedAt: e.updatedAt,
		Stale:     e.hasData && c.staleLocked(e),
		Version:   e.version,
	}
}

func (c *Cache) dispatch(notes []notification) {
	for _, n := range notes {
		n.sub.deliver(n.snap)
	}
}
