package internal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagefarm/pagefarm/pkg/logger"
)

// App is the site's HTTP application: health probes, then global middleware
// such as host routing, then static files and page handlers. It is fixed
// once New returns.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	baseDomain              string
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New builds the App and registers every route.
//
//	app := pagefarm.New(
//	    pagefarm.WithBaseDomain("example.com"),
//	    pagefarm.WithMiddleware(middlewares.SiteRouting(engine)),
//	    pagefarm.WithHandlers(handlers.NewPages(store, registry)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// ServeHTTP makes App usable as an http.Handler, mostly in tests.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	// Health probes sit in front of the global middleware so that host
	// based routing never rewrites or redirects them.
	if a.healthConfig != nil {
		a.router.Use(a.healthConfig.middleware(a.logger))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.healthConfig.routes(a.router, a.logger)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler runs h on a fresh Context and routes its error to handleError.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError renders err unless the response already started. Without an
// ErrorHandler it falls back to a plain text body.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogError("handler error after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			c.LogError("error handler failed", slog.Any("error", herr))
		}
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if httpErr := AsHTTPError(err); httpErr != nil {
		code = httpErr.Code
		msg = httpErr.Message
	}
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Any("error", err))
	}
	http.Error(c.Response(), msg, code)
}
