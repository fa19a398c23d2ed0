package handlers

import (
	"net/http"
	"net/url"

	"github.com/pagefarm/pagefarm"
	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/placeholder"
	"github.com/pagefarm/pagefarm/views"
)

// Pages serves the HTML site: the root pages, city and state pages reached
// through subdomain rewrites, the cost calculator and the cost guides.
type Pages struct {
	site
}

// NewPages creates the page handler.
func NewPages(deps Deps) *Pages {
	if deps.NearbyLimit <= 0 {
		deps.NearbyLimit = locations.DefaultNearbyLimit
	}
	return &Pages{site: site{Deps: deps}}
}

// Routes declares the page routes. City and state routes live under
// /locations and /states, which subdomain requests are rewritten to.
func (h *Pages) Routes(r pagefarm.Router) {
	cache := h.cache()

	r.GET("/", h.home, cache...)
	r.GET("/services", h.services, cache...)
	r.GET("/services/{service}", h.rootService, cache...)
	r.GET("/about", h.about, cache...)
	r.GET("/contact", h.contact, cache...)
	r.POST("/contact", h.submitLead)

	r.GET("/cost-guides", h.guides, cache...)
	r.GET("/cost-guides/{slug}", h.guide, cache...)
	r.GET("/{service}/cost-calculator", h.calculator, cache...)
	r.GET("/{id}/{service}/cost-calculator", h.calculator, cache...)

	r.Route("/locations/{id}", func(r pagefarm.Router) {
		r.GET("/", h.location, cache...)
		r.GET("/{page}", h.locationPage, cache...)
		r.POST("/contact", h.submitLead)
	})
	r.Route("/states/{code}", func(r pagefarm.Router) {
		r.GET("/", h.state, cache...)
		r.GET("/{page}", h.statePage, cache...)
		r.POST("/contact", h.submitLead)
	})
}

func (h *Pages) home(c pagefarm.Context) error {
	p := place{}
	pg := h.page(content.PageHome, p, nil)

	states := make([]views.Link, 0)
	for _, code := range h.Locations.States() {
		states = append(states, views.Link{Label: locations.StateName(code), URL: h.Engine.StateURL(code, "/")})
	}
	guides := make([]views.Link, 0)
	for _, g := range h.Content.Guides() {
		guides = append(guides, views.Link{Label: g.Title, URL: "/cost-guides/" + g.Slug})
	}

	return c.Render(http.StatusOK, views.Home(views.HomeView{
		Layout:   h.layout(c, p, pg),
		Page:     pg,
		Services: h.serviceCards(p),
		States:   states,
		Guides:   guides,
	}))
}

// locationPlace resolves {id}. Ids naming a state ("texas") resolve to the
// statewide place.
func (h *Pages) locationPlace(c pagefarm.Context) (place, error) {
	loc, ok := h.Locations.ByID(c.Param("id"))
	if !ok {
		return place{}, pagefarm.ErrNotFound("location not found")
	}
	if loc.Virtual {
		p, _ := h.statePlace(loc.State)
		return p, nil
	}
	return h.cityPlace(loc), nil
}

func (h *Pages) statePlaceParam(c pagefarm.Context) (place, error) {
	code := c.Param("code")
	if len(code) != 2 {
		return place{}, pagefarm.ErrNotFound("state not found")
	}
	p, ok := h.statePlace(code)
	if !ok {
		return place{}, pagefarm.ErrNotFound("state not found")
	}
	return p, nil
}

func (h *Pages) location(c pagefarm.Context) error {
	p, err := h.locationPlace(c)
	if err != nil {
		return err
	}
	if p.state {
		return h.renderState(c, p)
	}
	return h.renderLocation(c, p)
}

func (h *Pages) state(c pagefarm.Context) error {
	p, err := h.statePlaceParam(c)
	if err != nil {
		return err
	}
	return h.renderState(c, p)
}

func (h *Pages) locationPage(c pagefarm.Context) error {
	p, err := h.locationPlace(c)
	if err != nil {
		return err
	}
	return h.dispatch(c, p, c.Param("page"))
}

func (h *Pages) statePage(c pagefarm.Context) error {
	p, err := h.statePlaceParam(c)
	if err != nil {
		return err
	}
	return h.dispatch(c, p, c.Param("page"))
}

// dispatch serves the single-segment pages of a city or state.
func (h *Pages) dispatch(c pagefarm.Context, p place, page string) error {
	switch page {
	case "services":
		return h.renderServices(c, p)
	case "about":
		return h.renderAbout(c, p)
	case "contact":
		return h.renderContact(c, p, h.prefill(c), nil, http.StatusOK)
	}
	svc, ok := h.Content.Service(page)
	if !ok {
		return pagefarm.ErrNotFound("page not found")
	}
	return h.renderService(c, p, svc)
}

func (h *Pages) renderLocation(c pagefarm.Context, p place) error {
	pg := h.page(content.PageLocation, p, nil)

	nearby := h.Locations.Nearby(p.loc.ID, p.loc.State, h.NearbyLimit)
	links := make([]views.Link, 0, len(nearby))
	for _, n := range nearby {
		links = append(links, views.Link{Label: n.FullName, URL: h.Engine.LocationURL(n, "/")})
	}

	return c.Render(http.StatusOK, views.Location(views.LocationView{
		Layout:       h.layout(c, p, pg),
		Page:         pg,
		Location:     p.loc,
		StateName:    locations.StateName(p.loc.State),
		StateURL:     h.Engine.StateURL(p.loc.State, "/"),
		ZipCodes:     h.Locations.OwnZipCodes(p.loc),
		Services:     h.serviceCards(p),
		Nearby:       links,
		Blocks:       p.loc.Services,
		FAQs:         p.loc.FAQs,
		Testimonials: p.loc.Testimonials,
	}))
}

func (h *Pages) renderState(c pagefarm.Context, p place) error {
	pg := h.page(content.PageState, p, nil)

	in := h.Locations.InState(p.loc.State)
	links := make([]views.Link, 0, len(in))
	for _, loc := range in {
		links = append(links, views.Link{Label: loc.FullName, URL: h.Engine.LocationURL(loc, "/")})
	}

	return c.Render(http.StatusOK, views.State(views.StateView{
		Layout:    h.layout(c, p, pg),
		Page:      pg,
		Code:      p.loc.State,
		Name:      p.loc.Name,
		Zip:       p.zip,
		Locations: links,
		Services:  h.serviceCards(p),
	}))
}

func (h *Pages) renderService(c pagefarm.Context, p place, svc content.Service) error {
	pg := h.page(content.PageService, p, &svc)
	b := h.bindings(p, &svc)

	v := views.ServiceView{
		Layout:        h.layout(c, p, pg),
		Page:          pg,
		Service:       svc,
		Place:         p.name(),
		Estimate:      svc.Estimate(content.DefaultArea),
		CalculatorURL: h.calculatorURL(p, svc.Slug),
		QuoteURL:      "/contact?" + url.Values{"service": {svc.Slug}}.Encode(),
		FAQs:          svc.FAQs,
	}
	v.Service.Summary = placeholder.Resolve(svc.Summary, b)
	if g, ok := h.guideFor(svc.Slug); ok {
		v.GuideURL = h.Engine.URL("", "/cost-guides/"+g.Slug, "")
	}
	for i := range p.loc.Services {
		if p.loc.Services[i].Slug == svc.Slug {
			v.Block = &p.loc.Services[i]
			break
		}
	}
	return c.Render(http.StatusOK, views.Service(v))
}

func (h *Pages) renderServices(c pagefarm.Context, p place) error {
	pg := h.page(content.PageServices, p, nil)
	return c.Render(http.StatusOK, views.Services(views.ServicesView{
		Layout:   h.layout(c, p, pg),
		Page:     pg,
		Services: h.serviceCards(p),
	}))
}

func (h *Pages) renderAbout(c pagefarm.Context, p place) error {
	pg := h.page(content.PageAbout, p, nil)
	return c.Render(http.StatusOK, views.About(views.PageView{
		Layout: h.layout(c, p, pg),
		Page:   pg,
	}))
}

func (h *Pages) renderContact(c pagefarm.Context, p place, form views.LeadForm, errs map[string]string, code int) error {
	pg := h.page(content.PageContact, p, nil)
	return c.Render(code, views.Contact(views.ContactView{
		Layout: h.layout(c, p, pg),
		Page:   pg,
		Action: c.OriginalPath(),
		Sent:   c.Query("sent") == "1",
		Form:   form,
		Errors: errs,
	}))
}

var (
	prefillService = pagefarm.NewExtractor(pagefarm.FromQuery("service"))
	prefillZip     = pagefarm.NewExtractor(pagefarm.FromQuery("zip"))
)

// prefill seeds the contact form from links like /contact?service=roof-repair.
// Unknown services and malformed zips are ignored.
func (h *Pages) prefill(c pagefarm.Context) views.LeadForm {
	var form views.LeadForm
	if slug, ok := prefillService.Extract(c); ok {
		if svc, ok := h.Content.Service(slug); ok {
			form.Service = svc.Name
		}
	}
	if zip, ok := prefillZip.Extract(c); ok && locations.ValidZip(zip) {
		form.Zip = zip
	}
	return form
}

func (h *Pages) services(c pagefarm.Context) error {
	return h.renderServices(c, place{})
}

func (h *Pages) rootService(c pagefarm.Context) error {
	svc, ok := h.Content.Service(c.Param("service"))
	if !ok {
		return pagefarm.ErrNotFound("service not found")
	}
	return h.renderService(c, place{}, svc)
}

func (h *Pages) about(c pagefarm.Context) error {
	return h.renderAbout(c, place{})
}

func (h *Pages) contact(c pagefarm.Context) error {
	return h.renderContact(c, place{}, h.prefill(c), nil, http.StatusOK)
}

// calculator serves /{service}/cost-calculator on the root site or a
// tenant host, and /{id}/{service}/cost-calculator for a location or state.
func (h *Pages) calculator(c pagefarm.Context) error {
	svc, ok := h.Content.Service(c.Param("service"))
	if !ok {
		return pagefarm.ErrNotFound("service not found")
	}

	p := h.requestPlace(c)
	if c.Param("id") != "" {
		var err error
		if p, err = h.locationPlace(c); err != nil {
			return err
		}
	}

	area := pagefarm.QueryDefault(c, "sqft", float64(content.DefaultArea))
	pg := h.page(content.PageCalculator, p, &svc)
	l := h.layout(c, p, pg)
	if c.Param("id") != "" {
		l.Canonical = h.Engine.URL("", c.OriginalPath(), "")
	}

	return c.Render(http.StatusOK, views.Calculator(views.CalculatorView{
		Layout:   l,
		Page:     pg,
		Service:  svc,
		Place:    p.name(),
		Estimate: svc.Estimate(area),
		Action:   c.OriginalPath(),
	}))
}

func (h *Pages) guides(c pagefarm.Context) error {
	p := place{}
	pg := h.page(content.PageGuides, p, nil)
	guides := h.Content.Guides()
	cards := make([]views.GuideCard, 0, len(guides))
	for _, g := range guides {
		cards = append(cards, views.GuideCard{
			Title:   g.Title,
			Summary: g.Summary,
			URL:     "/cost-guides/" + g.Slug,
		})
	}
	return c.Render(http.StatusOK, views.Guides(views.GuidesView{
		Layout: h.layout(c, p, pg),
		Page:   pg,
		Guides: cards,
	}))
}

func (h *Pages) guide(c pagefarm.Context) error {
	g, ok := h.Content.Guide(c.Param("slug"))
	if !ok {
		return pagefarm.ErrNotFound("guide not found")
	}

	p := place{}
	b := h.bindings(p, nil)
	g.Title = placeholder.Resolve(g.Title, b)
	g.Summary = placeholder.Resolve(g.Summary, b)
	g.HTML = placeholder.Resolve(g.HTML, b.Escaped())

	v := views.GuideView{
		Layout: h.layout(c, p, content.Page{Title: g.Title, Description: g.Summary}),
		Guide:  g,
	}
	if g.Service != "" {
		v.ServiceURL = h.serviceURL(p, g.Service)
	}
	return c.Render(http.StatusOK, views.Guide(v))
}
