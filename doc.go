// Package pagefarm serves a programmatic-SEO site: one root domain, one
// subdomain per city and per US state, and thousands of pages generated from
// a location registry and a content catalog.
//
// The package is a thin layer over chi. A request first passes the global
// middleware, where site routing decides whether to redirect it, rewrite its
// path to an internal route, or let it through. chi then matches the
// (possibly rewritten) path against handler routes.
//
// # Quick Start
//
//	engine := siteroute.New(cfg.Routing, registry)
//
//	app := pagefarm.New(
//	    pagefarm.WithCustomLogger(log),
//	    pagefarm.WithBaseDomain(cfg.Routing.BaseDomain),
//	    pagefarm.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.SiteRouting(engine),
//	    ),
//	    pagefarm.WithHandlers(handlers.NewPages(deps)),
//	    pagefarm.WithHealthChecks(),
//	)
//
//	if err := app.Run(cfg.Address, pagefarm.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	func (h *Pages) Routes(r pagefarm.Router) {
//	    r.GET("/", h.home)
//	    r.GET("/locations/{id}", h.location)
//	}
//
// A handler returns an error to hand the request to the app's error
// handler. Return an [HTTPError] (for example [ErrNotFound]) to choose the
// status code.
//
// # Rewrites
//
// [Context.Rewrite] changes the internal path before routing while the
// client keeps seeing its URL. [Context.OriginalPath] returns the path the
// client asked for, which is what canonical links and cache keys use.
//
// # Health Checks
//
// [WithHealthChecks] answers /health/live and /health/ready on any host.
// Probes run before global middleware so that site routing never redirects
// them.
//
// # Graceful Shutdown
//
// App.Run handles SIGINT and SIGTERM, drains in-flight requests and then
// runs the hooks registered with [ShutdownHook].
package pagefarm
