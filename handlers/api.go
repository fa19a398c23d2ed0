package handlers

import (
	"net/http"
	"strings"

	"github.com/pagefarm/pagefarm"
	"github.com/pagefarm/pagefarm/middlewares"
	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/siteroute"
)

// LocationJSON is a location in API responses.
type LocationJSON struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	State     string   `json:"state"`
	StateName string   `json:"stateName"`
	FullName  string   `json:"fullName"`
	URL       string   `json:"url"`
	Phone     string   `json:"phone,omitempty"`
	Areas     []string `json:"areas,omitempty"`
	ZipCodes  []string `json:"zipCodes,omitempty"`
}

// StateJSON is a state in API responses.
type StateJSON struct {
	Code      string         `json:"code"`
	Name      string         `json:"name"`
	Zip       string         `json:"zip,omitempty"`
	URL       string         `json:"url"`
	Locations []LocationJSON `json:"locations"`
}

// RouteJSON is a routing decision preview.
type RouteJSON struct {
	Rule      string `json:"rule"`
	Action    string `json:"action"`
	Status    int    `json:"status,omitempty"`
	URL       string `json:"url,omitempty"`
	Path      string `json:"path,omitempty"`
	Kind      string `json:"kind"`
	Subdomain string `json:"subdomain,omitempty"`
	ID        string `json:"id,omitempty"`
}

// API serves the read-only JSON lookup API under /api.
type API struct {
	locations *locations.Registry
	engine    *siteroute.Engine
}

// NewAPI creates the API handler.
func NewAPI(deps Deps) *API {
	return &API{locations: deps.Locations, engine: deps.Engine}
}

// Routes declares the API routes.
func (h *API) Routes(r pagefarm.Router) {
	r.Route("/api", func(r pagefarm.Router) {
		r.Use(middlewares.CORS())
		r.OPTIONS("/*", func(c pagefarm.Context) error { return c.NoContent(http.StatusNoContent) })

		r.GET("/locations", h.list)
		r.GET("/locations/{id}", h.get)
		r.GET("/locations/{id}/nearby", h.nearby)
		r.GET("/states/{code}", h.state)
		r.GET("/route", h.route)
	})
}

func (h *API) toJSON(loc locations.Location, detail bool) LocationJSON {
	out := LocationJSON{
		ID:        loc.ID,
		Name:      loc.Name,
		State:     loc.State,
		StateName: locations.StateName(loc.State),
		FullName:  loc.FullName,
		URL:       h.engine.LocationURL(loc, "/"),
	}
	if loc.Virtual {
		out.URL = h.engine.StateURL(loc.State, "/")
	}
	if detail {
		out.Phone = loc.Phone
		out.Areas = loc.Areas
		out.ZipCodes = h.locations.ZipCodes(loc)
	}
	return out
}

func (h *API) list(c pagefarm.Context) error {
	all := h.locations.All()
	out := make([]LocationJSON, 0, len(all))
	for _, loc := range all {
		out = append(out, h.toJSON(loc, false))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"locations": out,
		"total":     len(out),
	})
}

func (h *API) get(c pagefarm.Context) error {
	loc, ok := h.locations.ByID(c.Param("id"))
	if !ok {
		return pagefarm.ErrNotFound("location not found")
	}
	return c.JSON(http.StatusOK, h.toJSON(loc, true))
}

func (h *API) nearby(c pagefarm.Context) error {
	loc, ok := h.locations.ByID(c.Param("id"))
	if !ok {
		return pagefarm.ErrNotFound("location not found")
	}
	limit := pagefarm.QueryDefault(c, "limit", locations.DefaultNearbyLimit)
	if limit < 1 || limit > 100 {
		return pagefarm.ErrBadRequest("limit must be between 1 and 100")
	}

	near := h.locations.Nearby(loc.ID, loc.State, limit)
	out := make([]LocationJSON, 0, len(near))
	for _, n := range near {
		out = append(out, h.toJSON(n, false))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"locations": out,
		"total":     len(out),
	})
}

func (h *API) state(c pagefarm.Context) error {
	code := c.Param("code")
	if len(code) != 2 || !locations.IsStateCode(code) {
		return pagefarm.ErrNotFound("state not found")
	}
	in := h.locations.InState(code)
	out := StateJSON{
		Code:      strings.ToUpper(code),
		Name:      locations.StateName(code),
		Zip:       h.locations.StateZip(code),
		URL:       h.engine.StateURL(code, "/"),
		Locations: make([]LocationJSON, 0, len(in)),
	}
	for _, loc := range in {
		out.Locations = append(out.Locations, h.toJSON(loc, false))
	}
	return c.JSON(http.StatusOK, out)
}

// route previews the routing decision for a host and path.
func (h *API) route(c pagefarm.Context) error {
	host := c.Query("host")
	if host == "" {
		return pagefarm.ErrBadRequest("host is required")
	}
	path := c.QueryDefault("path", "/")

	d := h.engine.Decide(host, path, "")
	return c.JSON(http.StatusOK, RouteJSON{
		Rule:      d.Rule,
		Action:    d.Action.String(),
		Status:    d.Status,
		URL:       d.URL,
		Path:      d.Path,
		Kind:      d.Route.Kind.String(),
		Subdomain: d.Route.Subdomain,
		ID:        d.Route.ID,
	})
}
