package middlewares

import (
	"context"
	"log/slog"

	"github.com/pagefarm/pagefarm/internal"
	"github.com/pagefarm/pagefarm/pkg/logger"
	"github.com/pagefarm/pagefarm/pkg/siteroute"
)

// routeDecisionKey is the context key for the routing decision.
type routeDecisionKey struct{}

// Decider picks the routing action for a request.
type Decider interface {
	Decide(host, path, rawQuery string) siteroute.Decision
}

// SiteRouting returns middleware that applies host and path routing before
// the router matches a handler. Redirects end the request; rewrites change
// the internal path and continue.
//
// Register it with WithMiddleware so the rewrite happens ahead of route matching.
func SiteRouting(d Decider) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			dec := d.Decide(r.Host, r.URL.Path, r.URL.RawQuery)
			c.Set(routeDecisionKey{}, dec)

			c.LogDebug("route decision",
				slog.String("rule", dec.Rule),
				slog.String("action", dec.Action.String()),
				slog.String("kind", dec.Route.Kind.String()),
				slog.String("subdomain", dec.Route.Subdomain),
			)

			switch dec.Action {
			case siteroute.ActionRedirect:
				return c.Redirect(dec.Status, dec.URL)
			case siteroute.ActionRewrite:
				c.Rewrite(dec.Path)
			}
			return next(c)
		}
	}
}

// RouteDecision returns the decision SiteRouting made for this request.
// The second value is false when the middleware did not run.
func RouteDecision(c internal.Context) (siteroute.Decision, bool) {
	d, ok := c.Get(routeDecisionKey{}).(siteroute.Decision)
	return d, ok
}

// RouteExtractor returns a ContextExtractor for use with WithLogger.
// It adds the tenant subdomain to every log entry of a tenant request.
func RouteExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		d, ok := ctx.Value(routeDecisionKey{}).(siteroute.Decision)
		if !ok || !d.Route.Tenant() {
			return slog.Attr{}, false
		}
		return slog.Group("route",
			slog.String("kind", d.Route.Kind.String()),
			slog.String("id", d.Route.ID),
		), true
	}
}
