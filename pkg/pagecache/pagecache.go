package pagecache

import (
	"context"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Page is a rendered response.
type Page struct {
	StoredAt    time.Time `json:"storedAt"`
	ContentType string    `json:"contentType"`
	Body        []byte    `json:"body"`
	Status      int       `json:"status"`
}

// Store holds rendered pages.
type Store interface {
	// Get returns ErrNotFound when the key is absent or expired.
	Get(ctx context.Context, key string) (Page, error)
	Set(ctx context.Context, key string, page Page, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Purge drops every entry.
	Purge(ctx context.Context) error
	Close() error
}

// Key builds a cache key from a request target. The host is lowercased and
// query parameters are sorted so equivalent URLs share an entry.
func Key(host, path, rawQuery string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(host))
	if path == "" {
		path = "/"
	}
	b.WriteString(path)
	if rawQuery != "" {
		if q, err := url.ParseQuery(rawQuery); err == nil {
			rawQuery = q.Encode()
		}
		if rawQuery != "" {
			b.WriteByte('?')
			b.WriteString(rawQuery)
		}
	}
	return b.String()
}

var group singleflight.Group

// Render returns the cached page for key or calls fn on a miss.
// Concurrent misses for the same key share one fn call. Only 200 responses
// are stored; storage failures are ignored since the page is already rendered.
func Render(ctx context.Context, s Store, key string, ttl time.Duration, fn func(ctx context.Context) (Page, error)) (Page, bool, error) {
	if p, err := s.Get(ctx, key); err == nil {
		return p, true, nil
	}

	v, err, _ := group.Do(key, func() (any, error) {
		p, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if p.StoredAt.IsZero() {
			p.StoredAt = time.Now().UTC()
		}
		if p.Status == 0 || p.Status == 200 {
			_ = s.Set(ctx, key, p, ttl)
		}
		return p, nil
	})
	if err != nil {
		return Page{}, false, err
	}
	return v.(Page), false, nil
}
