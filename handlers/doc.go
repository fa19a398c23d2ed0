// Package handlers serves the site: HTML pages for the root domain, city and
// state subdomains, the lead form, the sitemap, and a read-only JSON API.
//
// Subdomain requests arrive already rewritten by middlewares.SiteRouting, so
// a city home is served by the /locations/{id} route and a state service
// page by /states/{code}/{page}. Handlers that also answer on tenant hosts
// without a rewrite, such as the cost calculator, read the tenant from
// middlewares.RouteDecision.
//
//	deps := handlers.Deps{Content: store, Locations: registry, Engine: engine}
//	errs := handlers.NewErrors(deps)
//	app := pagefarm.New(
//	    pagefarm.WithHandlers(handlers.NewPages(deps), handlers.NewSitemap(deps), handlers.NewAPI(deps)),
//	    pagefarm.WithErrorHandler(errs.Handle),
//	    pagefarm.WithNotFoundHandler(errs.NotFound),
//	)
package handlers
