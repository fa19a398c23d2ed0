package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pagefarm/pagefarm/internal"
)

// DefaultCORSMaxAge is how long browsers may cache a preflight answer.
const DefaultCORSMaxAge = 12 * time.Hour

var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodOptions}, ", ")
	corsHeaders = strings.Join([]string{"Origin", "Content-Type", "Accept"}, ", ")
)

// CORSOption configures CORS.
type CORSOption func(*corsConfig)

type corsConfig struct {
	allow   func(origin string) bool
	origins []string
	maxAge  time.Duration
}

// WithAllowOrigins restricts the API to the listed origins. "*" allows any.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.origins = origins
	}
}

// WithAllowOriginFunc decides per origin and takes precedence over the list.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *corsConfig) {
		cfg.allow = fn
	}
}

// WithMaxAge sets the preflight cache lifetime. Zero omits the header.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *corsConfig) {
		cfg.maxAge = d
	}
}

// CORS opens the read-only lookup API to browsers. Only GET, HEAD and
// OPTIONS are advertised. Disallowed origins get no CORS headers and the
// browser blocks the response. On a route group, pair it with an OPTIONS
// route so preflight requests reach it.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := &corsConfig{origins: []string{"*"}, maxAge: DefaultCORSMaxAge}
	for _, opt := range opts {
		opt(cfg)
	}
	wildcard := cfg.allow == nil && slices.Contains(cfg.origins, "*")
	maxAge := strconv.Itoa(int(cfg.maxAge.Seconds()))

	allowed := func(origin string) bool {
		if cfg.allow != nil {
			return cfg.allow(origin)
		}
		return wildcard || slices.Contains(cfg.origins, origin)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || !allowed(origin) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			if wildcard {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}
			h.Add("Vary", "Access-Control-Request-Method")
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			if cfg.maxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
