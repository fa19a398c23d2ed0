package internal

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Router is what handlers declare their pages on. The site is read-mostly,
// so only the methods it serves are exposed.
type Router interface {
	// GET registers a page. HEAD requests are answered by the same handler.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a form endpoint.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// OPTIONS registers a preflight endpoint.
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// Group shares middleware without a path prefix.
	Group(fn func(r Router))

	// Route shares a path prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to this router's stack.
	Use(mw ...Middleware)
}

type routerAdapter struct {
	router chi.Router
	app    *App
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	fn := r.wrap(h, mw)
	r.router.Get(path, fn)
	r.router.Head(path, fn)
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Post(path, r.wrap(h, mw))
}

func (r *routerAdapter) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Options(path, r.wrap(h, mw))
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(r.sub(cr))
	})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.router.Route(pattern, func(cr chi.Router) {
		fn(r.sub(cr))
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.router.Use(r.app.adaptMiddleware(m))
	}
}

func (r *routerAdapter) sub(cr chi.Router) *routerAdapter {
	return &routerAdapter{router: cr, app: r.app}
}

// wrap applies route middleware so the first one listed runs outermost.
func (r *routerAdapter) wrap(h HandlerFunc, mw []Middleware) http.HandlerFunc {
	for _, m := range slices.Backward(mw) {
		h = m(h)
	}
	return r.app.wrapHandler(h)
}

// adaptMiddleware converts a Middleware to chi middleware. The next
// handler receives the context's current request, so a path rewritten by
// the middleware is what chi routes on.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := newContext(w, r, a)
			err := mw(func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			})(c)
			if err != nil {
				a.handleError(c, err)
			}
		})
	}
}
