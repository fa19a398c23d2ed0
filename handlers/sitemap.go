package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/pagefarm/pagefarm"
	"github.com/pagefarm/pagefarm/middlewares"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string  `xml:"loc"`
	Priority float64 `xml:"priority,omitempty"`
}

// Sitemap serves /sitemap.xml and /robots.txt for the root site.
type Sitemap struct {
	site
}

// NewSitemap creates the sitemap handler.
func NewSitemap(deps Deps) *Sitemap {
	return &Sitemap{site: site{Deps: deps}}
}

// Routes declares the crawler routes.
func (h *Sitemap) Routes(r pagefarm.Router) {
	r.GET("/sitemap.xml", h.sitemap, h.cache()...)
	r.GET("/robots.txt", h.robots)
}

// URLs lists every public page: root pages, city and state subdomain
// pages, and cost guides.
func (h *Sitemap) URLs() []string {
	var out []string
	add := func(label, path string) { out = append(out, h.Engine.URL(label, path, "")) }

	for _, path := range []string{"/", "/services", "/about", "/contact", "/cost-guides"} {
		add("", path)
	}
	slugs := h.Content.ServiceSlugs()
	for _, slug := range slugs {
		add("", "/services/"+slug)
	}
	for _, g := range h.Content.Guides() {
		add("", "/cost-guides/"+g.Slug)
	}

	for _, code := range h.Locations.States() {
		label := strings.ToLower(code)
		add(label, "/")
		for _, slug := range slugs {
			add(label, "/"+slug)
		}
	}
	for _, loc := range h.Locations.All() {
		for _, path := range []string{"/", "/services", "/about", "/contact"} {
			add(loc.ID, path)
		}
		for _, slug := range slugs {
			add(loc.ID, "/"+slug)
		}
	}
	return out
}

func (h *Sitemap) sitemap(c pagefarm.Context) error {
	if d, ok := middlewares.RouteDecision(c); ok && d.Route.Tenant() {
		return c.Redirect(http.StatusMovedPermanently, h.Engine.URL("", "/sitemap.xml", ""))
	}

	urls := h.URLs()
	set := urlSet{NS: sitemapNS, URLs: make([]sitemapURL, 0, len(urls))}
	for _, u := range urls {
		set.URLs = append(set.URLs, sitemapURL{Loc: u})
	}
	return c.XML(http.StatusOK, set)
}

func (h *Sitemap) robots(c pagefarm.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Allow: /\n\n")
	b.WriteString("Sitemap: " + h.Engine.URL("", "/sitemap.xml", "") + "\n")
	return c.String(http.StatusOK, b.String())
}
