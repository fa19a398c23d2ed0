package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pagefarm/pagefarm/internal"
	"github.com/pagefarm/pagefarm/pkg/pagecache"
)

// DefaultPageCacheTTL is how long a rendered page is served from cache.
const DefaultPageCacheTTL = time.Hour

// PageCacheConfig configures the page cache middleware.
type PageCacheConfig struct {
	Skip func(c internal.Context) bool // Bypass the cache for matching requests
	TTL  time.Duration                 // Entry lifetime
}

// PageCacheOption configures PageCacheConfig.
type PageCacheOption func(*PageCacheConfig)

// WithPageCacheTTL sets the entry lifetime.
func WithPageCacheTTL(ttl time.Duration) PageCacheOption {
	return func(cfg *PageCacheConfig) {
		cfg.TTL = ttl
	}
}

// WithPageCacheSkip bypasses the cache whenever fn returns true.
func WithPageCacheSkip(fn func(c internal.Context) bool) PageCacheOption {
	return func(cfg *PageCacheConfig) {
		cfg.Skip = fn
	}
}

// PageCache returns route middleware that serves GET responses from store.
// Entries are keyed by the host and path the client asked for plus the query,
// so a rewritten subdomain page and its root twin never share an entry.
// Only 200 responses are stored; the X-Cache header reports HIT or MISS.
func PageCache(store pagecache.Store, opts ...PageCacheOption) internal.Middleware {
	cfg := &PageCacheConfig{TTL: DefaultPageCacheTTL}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if r.Method != http.MethodGet || (cfg.Skip != nil && cfg.Skip(c)) {
				return next(c)
			}

			key := pagecache.Key(r.Host, c.OriginalPath(), r.URL.RawQuery)
			rendered := false

			page, hit, err := pagecache.Render(c, store, key, cfg.TTL, func(context.Context) (pagecache.Page, error) {
				rendered = true
				rw := c.ResponseWriter()
				rw.OnBeforeWrite(func() { rw.Header().Set("X-Cache", "MISS") })

				stop := rw.Capture()
				err := next(c)
				body := stop()
				if err != nil {
					return pagecache.Page{}, err
				}
				return pagecache.Page{
					Status:      rw.Status(),
					ContentType: rw.Header().Get("Content-Type"),
					Body:        body,
				}, nil
			})
			if err != nil || rendered {
				return err
			}

			if hit {
				c.LogDebug("page cache hit", slog.String("key", key))
			}
			c.SetHeader("X-Cache", "HIT")
			status := page.Status
			if status == 0 {
				status = http.StatusOK
			}
			contentType := page.ContentType
			if contentType == "" {
				contentType = "text/html; charset=utf-8"
			}
			return c.Blob(status, contentType, page.Body)
		}
	}
}

// SkipQuery returns a skip function for requests carrying any of the given
// query parameters, such as a form confirmation flag.
func SkipQuery(names ...string) func(c internal.Context) bool {
	return func(c internal.Context) bool {
		q := c.Request().URL.Query()
		for _, n := range names {
			if q.Has(n) {
				return true
			}
		}
		return false
	}
}

// SkipPathPrefix returns a skip function for paths under any of the prefixes.
func SkipPathPrefix(prefixes ...string) func(c internal.Context) bool {
	return func(c internal.Context) bool {
		p := c.Request().URL.Path
		for _, pre := range prefixes {
			if strings.HasPrefix(p, pre) {
				return true
			}
		}
		return false
	}
}
