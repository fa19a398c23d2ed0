package handlers

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/pagefarm/pagefarm"
	"github.com/pagefarm/pagefarm/middlewares"
	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/mailer"
	"github.com/pagefarm/pagefarm/pkg/pagecache"
	"github.com/pagefarm/pagefarm/pkg/placeholder"
	"github.com/pagefarm/pagefarm/pkg/siteroute"
	"github.com/pagefarm/pagefarm/views"
)

// LeadSender delivers lead notifications. *mailer.Mailer implements it.
type LeadSender interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// Deps are the shared dependencies of the site handlers.
type Deps struct {
	Content   *content.Store
	Locations *locations.Registry
	Engine    *siteroute.Engine

	// Leads and LeadRecipient are required for the contact form.
	Leads         LeadSender
	LeadRecipient string

	// PageCache stores rendered pages. Nil disables caching.
	PageCache pagecache.Store
	CacheTTL  time.Duration

	// NearbyLimit caps the nearby locations linked from a city page.
	NearbyLimit int
}

// Root pages have no location; these stand in for the location tokens.
var rootBindings = placeholder.Bindings{
	placeholder.City:      "your area",
	placeholder.State:     "US",
	placeholder.StateName: "your state",
}

// site renders the parts shared by every page archetype.
type site struct {
	Deps
}

// place describes who a page is for: the root site, a city or a state.
type place struct {
	loc   locations.Location
	zip   string
	state bool
}

func (p place) root() bool { return p.loc.ID == "" }

// label is the subdomain label of the place, or "" on the root site.
func (p place) label() string {
	switch {
	case p.root():
		return ""
	case p.state:
		return strings.ToLower(p.loc.State)
	default:
		return p.loc.ID
	}
}

// name is the display name used in headings ("Austin, TX", "Texas").
func (p place) name() string {
	if p.root() {
		return ""
	}
	if p.state || p.loc.FullName == "" {
		return p.loc.Name
	}
	return p.loc.FullName
}

func (s *site) cityPlace(loc locations.Location) place {
	p := place{loc: loc}
	if zips := s.Locations.ZipCodes(loc); len(zips) > 0 {
		p.zip = zips[0]
	}
	return p
}

func (s *site) statePlace(code string) (place, bool) {
	loc, ok := s.Locations.StateLocation(code)
	if !ok {
		return place{}, false
	}
	return place{loc: loc, zip: s.Locations.StateZip(code), state: true}, true
}

// requestPlace resolves the place from the tenant the request arrived on.
// Pass-through paths on a tenant host (calculator, guides) keep their
// tenant; everything else is the root site.
func (s *site) requestPlace(c pagefarm.Context) place {
	d, ok := middlewares.RouteDecision(c)
	if !ok || !d.Route.Tenant() {
		return place{}
	}
	if d.Route.Kind == siteroute.KindState {
		p, _ := s.statePlace(d.Route.ID)
		return p
	}
	return s.cityPlace(d.Route.Location)
}

func (s *site) bindings(p place, svc *content.Service) placeholder.Bindings {
	b := s.Content.Bindings(p.loc, p.zip, svc)
	if p.root() {
		for k, v := range rootBindings {
			b[k] = v
		}
	}
	return b
}

// page returns the copy of kind resolved for p.
func (s *site) page(kind content.PageKind, p place, svc *content.Service) content.Page {
	tpl, _ := s.Content.Page(kind)
	return tpl.Resolve(s.bindings(p, svc))
}

// layout builds the shared chrome. The canonical URL always points at the
// place's own host, whichever host label the request arrived on.
func (s *site) layout(c pagefarm.Context, p place, pg content.Page) views.Layout {
	siteInfo := s.Content.Site()
	phone := siteInfo.Phone
	if p.loc.Phone != "" {
		phone = p.loc.Phone
	}
	siteInfo.About = placeholder.Resolve(siteInfo.About, s.bindings(p, nil).Escaped())

	return views.Layout{
		Site:      siteInfo,
		Title:     pg.Title,
		Desc:      pg.Description,
		Canonical: s.Engine.URL(p.label(), publicPath(c, p), ""),
		HomeURL:   s.Engine.URL(p.label(), "/", ""),
		Phone:     phone,
		Nav: []views.Link{
			{Label: "Services", URL: "/services"},
			{Label: "Cost Guides", URL: s.Engine.URL("", "/cost-guides", "")},
			{Label: "About", URL: "/about"},
			{Label: "Contact", URL: "/contact"},
		},
		Crumbs: s.crumbs(p),
	}
}

// publicPath is the path of the page on its own host. Requests for a
// location that reach the apex under /locations/{id} or /states/{code}
// drop that prefix.
func publicPath(c pagefarm.Context, p place) string {
	path := c.OriginalPath()
	if p.root() {
		return path
	}
	if d, ok := middlewares.RouteDecision(c); ok && d.Route.Tenant() {
		return path
	}
	segs := siteroute.Segments(path)
	if len(segs) >= 2 && (segs[0] == "locations" || segs[0] == "states") {
		return "/" + strings.Join(segs[2:], "/")
	}
	return path
}

func (s *site) crumbs(p place) []views.Link {
	if p.root() {
		return nil
	}
	out := []views.Link{{Label: "Home", URL: s.Engine.URL("", "/", "")}}
	if !p.state {
		out = append(out, views.Link{
			Label: locations.StateName(p.loc.State),
			URL:   s.Engine.StateURL(p.loc.State, "/"),
		})
	}
	return append(out, views.Link{Label: p.name(), URL: s.Engine.URL(p.label(), "/", "")})
}

// serviceURL links a service page for p.
func (s *site) serviceURL(p place, slug string) string {
	if p.root() {
		return s.Engine.URL("", "/services/"+slug, "")
	}
	return s.Engine.URL(p.label(), "/"+slug, "")
}

// calculatorURL links the cost calculator for p on the root site.
// Locations and states use the /{id}/{service}/cost-calculator form.
func (s *site) calculatorURL(p place, slug string) string {
	if p.root() {
		return s.Engine.URL("", "/"+slug+"/cost-calculator", "")
	}
	return s.Engine.URL("", "/"+p.loc.ID+"/"+slug+"/cost-calculator", "")
}

func (s *site) serviceCards(p place) []views.ServiceCard {
	services := s.Content.Services()
	out := make([]views.ServiceCard, 0, len(services))
	for _, svc := range services {
		b := s.bindings(p, &svc)
		out = append(out, views.ServiceCard{
			Name:    svc.Name,
			Summary: placeholder.Resolve(svc.Summary, b),
			URL:     s.serviceURL(p, svc.Slug),
			From:    views.Money(svc.Cost.Low) + " per " + svc.Unit,
		})
	}
	return out
}

func (s *site) guideFor(slug string) (content.Guide, bool) {
	guides := s.Content.Guides()
	i := slices.IndexFunc(guides, func(g content.Guide) bool { return g.Service == slug })
	if i < 0 {
		return content.Guide{}, false
	}
	return guides[i], true
}

// cache returns the page cache middleware, or nothing when caching is off.
func (s *site) cache() []pagefarm.Middleware {
	if s.PageCache == nil {
		return nil
	}
	return []pagefarm.Middleware{middlewares.PageCache(s.PageCache,
		middlewares.WithPageCacheTTL(s.CacheTTL),
		middlewares.WithPageCacheSkip(middlewares.SkipQuery("sent", "service", "zip")),
	)}
}
