package pagefarm

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pagefarm/pagefarm/internal"
	"github.com/pagefarm/pagefarm/pkg/health"
	"github.com/pagefarm/pagefarm/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter wraps http.ResponseWriter with write hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error carrying an HTTP status.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Extractor tries value sources in order.
	Extractor = internal.Extractor

	// ExtractorSource pulls a value from the request.
	ExtractorSource = internal.ExtractorSource
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := pagefarm.New(
//	    pagefarm.WithBaseDomain(cfg.Routing.BaseDomain),
//	    pagefarm.WithMiddleware(middlewares.SiteRouting(engine)),
//	    pagefarm.WithHandlers(handlers.NewPages(deps)),
//	)
//
//	err := app.Run(":8080", pagefarm.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware runs before routing, in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed static
//	var assets embed.FS
//
//	pagefarm.New(
//	    pagefarm.WithStaticFiles("/static/", assets, "static"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live) always returns OK while the process runs.
// Readiness (/health/ready) runs all configured checks.
// Both answer on every host and skip global middleware.
//
// Example:
//
//	pagefarm.WithHealthChecks(
//	    pagefarm.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger decorates the application logger with a component name and
// optional extractors pulling request-scoped values from context.
//
// Example:
//
//	pagefarm.New(
//	    pagefarm.WithCustomLogger(log),
//	    pagefarm.WithLogger("site", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithBaseDomain configures the base domain for subdomain extraction.
// This enables c.Subdomain() to work without parameters.
func WithBaseDomain(domain string) Option {
	return internal.WithBaseDomain(domain)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// WithReadinessTimeout bounds the total time of a readiness probe.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return internal.WithReadinessTimeout(d)
}

// WithReadinessInfo adds static fields to the JSON readiness report.
func WithReadinessInfo(fn func() map[string]string) HealthOption {
	return internal.WithReadinessInfo(fn)
}

// Run options

// Logger sets the server logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run after the port is bound but
// before serving requests. A failing hook stops the server.
//
// Example:
//
//	pagefarm.StartupHook(func(ctx context.Context) error {
//	    return client.Ping(ctx).Err()
//	})
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
//
// Example:
//
//	pagefarm.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context used for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError with a status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrServiceUnavailable creates a 503 error.
func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

// WithError attaches the underlying cause to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError returns the HTTPError wrapped in err, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Typed helpers

// Param returns a typed URL parameter, or the zero value if it cannot be parsed.
func Param[T internal.Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter, or the zero value if it cannot be parsed.
func Query[T internal.Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter or defaultValue.
func QueryDefault[T internal.Scalar](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// ContextValue returns a typed value stored with c.Set.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// NewExtractor creates an Extractor trying sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource { return internal.FromQuery(name) }

// FromParam reads a URL parameter.
func FromParam(name string) ExtractorSource { return internal.FromParam(name) }

// FromForm reads a form value.
func FromForm(name string) ExtractorSource { return internal.FromForm(name) }

