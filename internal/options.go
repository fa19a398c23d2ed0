package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pagefarm/pagefarm/pkg/logger"
)

// Option configures the App.
type Option func(*App)

// WithBaseDomain sets the domain that c.Subdomain() strips, e.g. "example.com".
func WithBaseDomain(domain string) Option {
	return func(a *App) {
		a.baseDomain = strings.TrimSuffix(strings.ToLower(domain), ".")
	}
}

// WithMiddleware adds global middleware. It runs before routing, in the
// order given, so it may rewrite the request path.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers. Routes is called once, in New.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles serves subDir of fsys under pattern, e.g. "/static/".
// Directory paths answer 404. It panics when subDir is not a directory of
// fsys, which is a build mistake.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		a.staticRoutes = append(a.staticRoutes, staticRoute{
			pattern: pattern,
			handler: staticHandler(strings.TrimSuffix(pattern, "/"), sub),
		})
	}
}

func staticHandler(prefix string, fsys fs.FS) http.Handler {
	files := http.StripPrefix(prefix, http.FileServerFS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Cache-Control", "public, max-age=3600")
		h.Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

// WithErrorHandler renders errors returned by handlers and middleware.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler handles paths no route matched, after any rewrite.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler handles a known path with the wrong method.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks mounts the liveness and readiness probes. They answer on
// every host and bypass global middleware, so routing never redirects them.
//
//	pagefarm.WithHealthChecks(
//	    pagefarm.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger tags the current logger with a component name and adds
// attributes pulled from each request context. Apply it after
// WithCustomLogger.
//
//	pagefarm.New(
//	    pagefarm.WithCustomLogger(log),
//	    pagefarm.WithLogger("site", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		h := logger.NewLogHandlerDecorator(a.logger.Handler(), extractors...)
		a.logger = slog.New(h).With("component", component)
	}
}

// WithCustomLogger replaces the discard logger. Nil is ignored.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
