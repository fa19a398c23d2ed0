package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pagefarm/pagefarm/pkg/health"
)

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	options       []health.Option
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// middleware answers probe requests on any host and passes everything else on.
func (h *healthConfig) middleware(log *slog.Logger) func(http.Handler) http.Handler {
	live, ready := h.handlers(log)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				switch r.URL.Path {
				case h.livenessPath:
					live(w, r)
					return
				case h.readinessPath:
					ready(w, r)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// routes registers the probes as plain routes too. chi builds its
// middleware chain only once a route exists, so an App without page
// handlers still answers probes.
func (h *healthConfig) routes(r chi.Router, log *slog.Logger) {
	live, ready := h.handlers(log)
	for _, m := range []string{http.MethodGet, http.MethodHead} {
		r.MethodFunc(m, h.livenessPath, live)
		r.MethodFunc(m, h.readinessPath, ready)
	}
}

func (h *healthConfig) handlers(log *slog.Logger) (live, ready http.HandlerFunc) {
	opts := append([]health.Option{health.WithLogger(log)}, h.options...)
	return health.LivenessHandler(), health.ReadinessHandler(h.checks, opts...)
}

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	pagefarm.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}

// WithReadinessTimeout bounds the total time readiness checks may take.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		c.options = append(c.options, health.WithTimeout(d))
	}
}

// WithReadinessInfo attaches static details, such as the build version,
// to readiness responses.
func WithReadinessInfo(fn func() map[string]string) HealthOption {
	return func(c *healthConfig) {
		c.options = append(c.options, health.WithInfo(fn))
	}
}
