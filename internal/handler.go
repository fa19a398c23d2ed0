package internal

// Handler groups related pages and declares their routes.
//
//	func (h *Pages) Routes(r pagefarm.Router) {
//	    r.GET("/", h.home)
//	    r.GET("/locations/{id}", h.location)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves one route. A returned error goes to the ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc. Global middleware runs before routing and
// may rewrite the path; route middleware runs after a route matched.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders an error returned by a handler or middleware.
type ErrorHandler func(Context, error) error
