// Package middlewares provides HTTP middleware for pagefarm applications.
//
// # Site Routing
//
// SiteRouting runs the host and path routing table before chi matches a
// route. Redirect decisions end the request with a 301; rewrite decisions
// change the internal path so that a city subdomain home is served by the
// /locations/{id} handler while the browser URL stays the same.
//
//	engine := siteroute.New(cfg.Routing, registry)
//	app := pagefarm.New(
//	    pagefarm.WithMiddleware(middlewares.SiteRouting(engine)),
//	)
//
// Handlers read the decision with RouteDecision(c).
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and debugging.
// It checks incoming headers for existing IDs or generates a UUID.
// Pair it with RequestIDExtractor for request_id in every log line:
//
//	app := pagefarm.New(
//	    pagefarm.WithLogger("site", middlewares.RequestIDExtractor(), middlewares.RouteExtractor()),
//	    pagefarm.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover and Timeout
//
// Recover converts panics into *PanicError and Timeout returns *TimeoutError;
// both are handled by the app's ErrorHandler:
//
//	pagefarm.WithErrorHandler(func(c pagefarm.Context, err error) error {
//	    switch {
//	    case middlewares.IsPanicError(err):
//	        return c.String(500, "Internal Server Error")
//	    case middlewares.IsTimeoutError(err):
//	        return c.String(504, "Gateway Timeout")
//	    }
//	    return c.String(500, err.Error())
//	})
//
// The handler goroutine keeps running after a timeout; use the context to
// stop early.
//
// # Page Cache
//
// PageCache is route middleware that stores rendered 200 responses in a
// pagecache.Store keyed by host, client path and query:
//
//	r.GET("/locations/{id}", h.location, middlewares.PageCache(store))
//
// # CORS
//
// CORS adds Cross-Origin Resource Sharing headers, by default for any origin
// and read-only methods. It is meant for the JSON lookup API.
//
// # Recommended Order
//
//	pagefarm.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Recover(),
//	    middlewares.SiteRouting(engine),
//	    middlewares.Timeout(10*time.Second),
//	)
package middlewares
