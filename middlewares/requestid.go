package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pagefarm/pagefarm/internal"
	"github.com/pagefarm/pagefarm/pkg/logger"
)

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds IDs taken from upstream headers.
const maxRequestIDLen = 128

// DefaultRequestIDHeaders are checked in order for an ID set by a proxy or CDN.
var DefaultRequestIDHeaders = []string{RequestIDHeader, "X-Correlation-ID", "Cf-Ray", "X-Amzn-Trace-Id"}

type requestIDKey struct{}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	generate func() string
	headers  []string
}

// WithRequestIDHeaders replaces the upstream headers checked for an ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.headers = headers
	}
}

// WithRequestIDGenerator replaces the ID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.generate = gen
	}
}

// RequestID tags each request with an ID, reusing one from an upstream
// header when it is printable ASCII of sane length. New IDs are UUIDv7 so
// they sort by arrival time in logs.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{headers: DefaultRequestIDHeaders, generate: newRequestID}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := ""
			for _, h := range cfg.headers {
				if v := c.Header(h); validRequestID(v) {
					id = v
					break
				}
			}
			if id == "" {
				id = cfg.generate()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(RequestIDHeader, id)
			return next(c)
		}
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func validRequestID(v string) bool {
	if v == "" || len(v) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x21 || v[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the request ID, or "" outside RequestID.
func GetRequestID(c internal.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds "request_id" to log records.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
