package middlewares

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pagefarm/pagefarm/internal"
)

// DefaultTimeout is the page budget used when Timeout gets zero.
const DefaultTimeout = 15 * time.Second

// TimeoutOption configures Timeout.
type TimeoutOption func(*timeoutConfig)

type timeoutConfig struct {
	paths []pathBudget
	limit time.Duration
}

type pathBudget struct {
	prefix string
	limit  time.Duration
}

// WithPathTimeout gives internal paths starting with prefix their own budget.
// The longest matching prefix wins.
func WithPathTimeout(prefix string, limit time.Duration) TimeoutOption {
	return func(cfg *timeoutConfig) {
		if limit > 0 {
			cfg.paths = append(cfg.paths, pathBudget{prefix: prefix, limit: limit})
		}
	}
}

func (cfg *timeoutConfig) budget(path string) time.Duration {
	limit, matched := cfg.limit, -1
	for _, p := range cfg.paths {
		if strings.HasPrefix(path, p.prefix) && len(p.prefix) > matched {
			limit, matched = p.limit, len(p.prefix)
		}
	}
	return limit
}

// Timeout bounds how long a page may take. Install it after SiteRouting so
// the budget is chosen by the rewritten path, e.g. a city page and the
// sitemap can get different limits.
//
// A handler that overruns keeps running in its goroutine; the request gets a
// *TimeoutError for the error handler. Long work should watch
// TimeoutContext(c).Done().
func Timeout(limit time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &timeoutConfig{limit: limit}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.limit <= 0 {
		cfg.limit = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			limit := cfg.budget(c.Request().URL.Path)
			ctx, cancel := context.WithTimeout(c.Context(), limit)
			defer cancel()
			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() { done <- next(c) }()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return ctx.Err()
				}
				c.LogWarn("page budget exceeded", "limit", limit.String())
				return &TimeoutError{Host: c.Domain(), Path: c.OriginalPath(), Limit: limit}
			}
		}
	}
}

type timeoutContextKey struct{}

// TimeoutContext returns the context that expires with the page budget, or
// the request context outside Timeout.
func TimeoutContext(c internal.Context) context.Context {
	if ctx, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return ctx
	}
	return c.Context()
}
