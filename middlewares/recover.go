package middlewares

import (
	"runtime"

	"github.com/pagefarm/pagefarm/internal"
)

// DefaultStackSize caps the captured stack in bytes.
const DefaultStackSize = 4096

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

type recoverConfig struct {
	stackSize int
}

// WithRecoverStackSize sets the captured stack size. Zero or less turns
// capture off.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.stackSize = size
	}
}

// Recover turns a panic in a page handler into a *PanicError for the error
// handler. The log line carries the public URL and, after SiteRouting, the
// routing rule that picked the handler.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				pe := &PanicError{Value: r, Host: c.Domain(), Path: c.OriginalPath()}
				attrs := []any{"panic", r, "host", pe.Host, "path", pe.Path}
				if d, ok := RouteDecision(c); ok {
					attrs = append(attrs, "rule", d.Rule)
				}
				if cfg.stackSize > 0 {
					buf := make([]byte, cfg.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
					attrs = append(attrs, "stack", string(pe.Stack))
				}
				c.LogError("panic recovered", attrs...)
				err = pe
			}()

			return next(c)
		}
	}
}
