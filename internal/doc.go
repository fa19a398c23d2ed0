// Package internal provides the core types and implementation for the pagefarm web layer.
//
// This package is internal and should not be used directly. Import
// "github.com/pagefarm/pagefarm" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates the application lifecycle, HTTP routing, and graceful shutdown
//   - Context: Provides request/response access and helper methods
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns
//   - ErrorHandler: Custom error handling function for handler errors
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Pages) location(c pagefarm.Context) error {
//	    page, _, err := pagecache.Render(c, h.cache, key, ttl, render)
//	    ...
//	}
//
// # Path Rewriting
//
// Global middleware runs before chi matches a route. Calling c.Rewrite
// there changes the path the router sees while the client URL stays the
// same. c.OriginalPath still reports what the client asked for:
//
//	func tenant(next pagefarm.HandlerFunc) pagefarm.HandlerFunc {
//	    return func(c pagefarm.Context) error {
//	        if sub := c.Subdomain(); sub != "" {
//	            c.Rewrite("/locations/" + sub + c.Request().URL.Path)
//	        }
//	        return next(c)
//	    }
//	}
//
// Rewrites only take effect from middleware registered with WithMiddleware.
// Route level middleware runs after matching.
//
// # Error Handling
//
// Handlers return errors. HTTPError values (wrapped or not) carry a status
// code and a user facing message; anything else is a 500. Install a custom
// renderer with WithErrorHandler.
//
// # Health Probes
//
// WithHealthChecks mounts liveness and readiness endpoints that answer on
// every host, ahead of the global middleware, so host routing never
// redirects a probe.
package internal
