package cache

import (
	"log/slog"
	"time"
)

const (
	// DefaultStaleTime срок, в течение которого успешные данные считаются свежими
	DefaultStaleTime = 30 * time.Second
	// DefaultMaxInactive сколько записей без подписчиков хранится в LRU
	DefaultMaxInactive = 100
)

// Option configures a Cache.
type Option func(*Cache)

// WithStaleTime sets how long successful data stays fresh. Zero means always stale.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) {
		if d >= 0 {
			c.staleTime = d
		}
	}
}

// WithMaxInactive bounds the number of entries kept without subscribers.
// Zero or less disables eviction.
func WithMaxInactive(n int) Option {
	return func(c *Cache) {
		c.maxInactive = n
	}
}

// WithClearOnError makes a failed fetch drop the entry's data when pred matches the error.
// By default data survives errors.
func WithClearOnError(pred func(error) bool) Option {
	return func(c *Cache) {
		c.clearOnError = pred
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// QueryOption configures a single Query call.
type QueryOption func(*queryOptions)

type queryOptions struct {
	force bool
}

// WithForce skips the freshness check. An in-flight request that is still
// current is reused instead of starting another one.
func WithForce() QueryOption {
	return func(o *queryOptions) {
		o.force = true
	}
}
