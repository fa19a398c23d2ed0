package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 3 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

var (
	ErrCheckFailed  = errors.New("health: a readiness check failed")
	ErrCheckTimeout = errors.New("health: check did not finish in time")
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its probe.
type Checks map[string]CheckFunc

// Response is the JSON body of a readiness probe.
type Response struct {
	Checks map[string]Check  `json:"checks,omitempty"`
	Info   map[string]string `json:"info,omitempty"`
	Status string            `json:"status"`
}

// Check is the outcome of one probe.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	info    func() map[string]string
	timeout time.Duration
}

// Option configures the readiness handler.
type Option func(*config)

// WithTimeout bounds all probes together. Default: 3s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failed probes at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInfo attaches static facts, such as loaded location counts, to JSON responses.
func WithInfo(fn func() map[string]string) Option {
	return func(c *config) {
		c.info = fn
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes every check concurrently under one timeout and aggregates the
// results. A check that outlives the timeout is reported as ErrCheckTimeout.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return runChecks(ctx, checks, newConfig(opts...))
}

func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	resp := &Response{Status: StatusHealthy}
	if cfg.info != nil {
		resp.Info = cfg.info()
	}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	resp.Checks = make(map[string]Check, len(checks))
	for name, check := range checks {
		g.Go(func() error {
			result := Check{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					err = errors.Join(ErrCheckTimeout, err)
				}
				result = Check{Status: StatusUnhealthy, Error: err.Error()}
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}
			mu.Lock()
			resp.Checks[name] = result
			if result.Status == StatusUnhealthy {
				resp.Status = StatusUnhealthy
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return resp
}

// Err returns ErrCheckFailed when the response is unhealthy.
func (r *Response) Err() error {
	if r.Status == StatusUnhealthy {
		return ErrCheckFailed
	}
	return nil
}
