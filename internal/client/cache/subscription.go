package cache

import "sync"

// Subscription keeps a key active, like a mounted view. Subscribed entries
// are never evicted and are refetched when invalidated.
type Subscription struct {
	cache    *Cache
	key      Key
	id       uint64
	listener Listener

	mu        sync.Mutex
	delivered bool
	last      uint64
	closed    bool
}

// Subscribe registers listener for key. The listener immediately receives the
// current snapshot; if the entry is missing or stale a request is started.
func (c *Cache) Subscribe(key Key, fetch Fetcher, listener Listener) (*Subscription, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}

	e := c.entryLocked(key)
	e.fetcher = fetch

	c.nextSub++
	sub := &Subscription{cache: c, key: key, id: c.nextSub, listener: listener}
	e.listeners[sub.id] = sub

	// Активные записи не участвуют в LRU
	if c.inactive != nil {
		c.inactive.Remove(key)
	}

	var notes []notification
	if !c.freshLocked(e) && !c.reusableLocked(e) {
		_, notes = c.startLocked(e)
	}
	initial := c.snapshotLocked(e)
	c.mu.Unlock()

	sub.deliver(initial)
	c.dispatch(notes)

	return sub, nil
}

// Key returns the subscribed key.
func (s *Subscription) Key() Key {
	return s.key
}

// Close stops deliveries. The entry becomes inactive once its last subscriber leaves.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	c := s.cache
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[s.key]
	if !ok {
		return
	}
	delete(e.listeners, s.id)
	c.touchLocked(e)
}

func (s *Subscription) deliver(snap Snapshot) {
	s.mu.Lock()
	if s.closed || (s.delivered && snap.Version <= s.last) {
		s.mu.Unlock()
		return
	}
	s.delivered = true
	s.last = snap.Version
	s.mu.Unlock()

	s.listener(snap)
}
