package pagecache

import "time"

// MemoryOption configures Memory.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now             func() time.Time
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		now:             time.Now,
		defaultTTL:      10 * time.Minute,
		cleanupInterval: time.Minute,
	}
}

// WithDefaultTTL sets the expiry used when Set gets a zero TTL.
// Default: 10 minutes.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often expired pages are swept.
// Zero disables the background sweep. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries caps the number of pages; the least recently used page is
// evicted when the cap is reached. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		o.now = now
	}
}

// RedisOption configures Redis.
type RedisOption func(*Redis)

// WithPrefix namespaces keys as "{prefix}:{key}". Default: "page".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithRedisDefaultTTL sets the expiry used when Set gets a zero TTL.
// Default: 10 minutes.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(r *Redis) {
		r.defaultTTL = d
	}
}
