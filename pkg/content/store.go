package content

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/placeholder"
	"github.com/pagefarm/pagefarm/pkg/sanitizer"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Store is the immutable, validated content catalog.
type Store struct {
	services     []Service
	serviceIndex map[string]int
	guides       []Guide
	guideIndex   map[string]int
	pages        map[PageKind]Page
	site         Site
}

// New validates the decoded content and builds a Store.
// HTML fragments are sanitized and guide bodies rendered from Markdown.
func New(site Site, services []Service, guides []Guide, pages map[PageKind]Page) (*Store, error) {
	s := &Store{
		site:         site,
		serviceIndex: make(map[string]int, len(services)),
		guideIndex:   make(map[string]int, len(guides)),
		pages:        make(map[PageKind]Page, len(pages)),
	}

	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	checkTokens := func(where, text string) {
		if unknown := placeholder.Unknown(text); len(unknown) > 0 {
			invalid("%s: unknown placeholders %s", where, strings.Join(unknown, ", "))
		}
	}

	if strings.TrimSpace(site.CompanyName) == "" {
		invalid("site.companyName is required")
	}
	if strings.TrimSpace(site.Phone) == "" {
		invalid("site.phone is required")
	}
	if s.site.Company == "" {
		s.site.Company = site.CompanyName
	}
	s.site.About = sanitizer.SanitizeHTML(site.About)
	checkTokens("site.about", site.About)
	checkTokens("site.tagline", site.Tagline)

	if len(services) == 0 {
		invalid("services: at least one service is required")
	}
	for i, svc := range services {
		where := fmt.Sprintf("services[%d] %q", i, svc.Slug)
		if !slugPattern.MatchString(svc.Slug) {
			invalid("%s: slug must be lowercase letters, digits and single hyphens", where)
			continue
		}
		if _, dup := s.serviceIndex[svc.Slug]; dup {
			invalid("%s: duplicate slug", where)
			continue
		}
		if strings.TrimSpace(svc.Name) == "" {
			invalid("%s: name is required", where)
		}
		if svc.Cost.Low < 0 || svc.Cost.High < svc.Cost.Low {
			invalid("%s: cost range %.2f-%.2f is not ascending", where, svc.Cost.Low, svc.Cost.High)
		}
		if svc.Unit == "" {
			svc.Unit = "sq ft"
		}
		checkTokens(where+".summary", svc.Summary)
		checkTokens(where+".description", svc.Description)
		svc.Description = sanitizer.SanitizeHTML(svc.Description)
		svc.FAQs = slices.Clone(svc.FAQs)
		s.serviceIndex[svc.Slug] = len(s.services)
		s.services = append(s.services, svc)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	for i, g := range guides {
		where := fmt.Sprintf("cost-guides[%d] %q", i, g.Slug)
		if !slugPattern.MatchString(g.Slug) {
			invalid("%s: slug must be lowercase letters, digits and single hyphens", where)
			continue
		}
		if _, dup := s.guideIndex[g.Slug]; dup {
			invalid("%s: duplicate slug", where)
			continue
		}
		if strings.TrimSpace(g.Title) == "" || strings.TrimSpace(g.Body) == "" {
			invalid("%s: title and body are required", where)
		}
		if g.Service != "" {
			if _, ok := s.serviceIndex[g.Service]; !ok {
				invalid("%s: unknown service %q", where, g.Service)
			}
		}
		checkTokens(where+".body", g.Body)

		var buf bytes.Buffer
		if err := md.Convert([]byte(g.Body), &buf); err != nil {
			invalid("%s: markdown: %v", where, err)
		}
		g.HTML = sanitizer.SanitizeArticle(buf.String())
		s.guideIndex[g.Slug] = len(s.guides)
		s.guides = append(s.guides, g)
	}

	for _, kind := range RequiredPages {
		if _, ok := pages[kind]; !ok {
			invalid("pages.%s is required", kind)
		}
	}
	for kind, p := range pages {
		where := "pages." + string(kind)
		if strings.TrimSpace(p.Title) == "" {
			invalid("%s.title is required", where)
		}
		checkTokens(where+".title", p.Title)
		checkTokens(where+".description", p.Description)
		checkTokens(where+".heading", p.Heading)
		checkTokens(where+".intro", p.Intro)
		sections := make([]Section, len(p.Sections))
		for i, sec := range p.Sections {
			checkTokens(fmt.Sprintf("%s.sections[%d]", where, i), sec.Heading+" "+sec.Body)
			sections[i] = Section{Heading: sec.Heading, Body: sanitizer.SanitizeHTML(sec.Body)}
		}
		p.Sections = sections
		s.pages[kind] = p
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

// Site returns the brand settings.
func (s *Store) Site() Site {
	return s.site
}

// Services returns the catalog in file order.
func (s *Store) Services() []Service {
	return slices.Clone(s.services)
}

// Service looks up a catalog entry by slug.
func (s *Store) Service(slug string) (Service, bool) {
	idx, ok := s.serviceIndex[slug]
	if !ok {
		return Service{}, false
	}
	return s.services[idx], true
}

// ServiceSlugs returns every catalog slug in file order. The routing engine
// rewrites exactly these single-segment paths on tenant subdomains.
func (s *Store) ServiceSlugs() []string {
	out := make([]string, len(s.services))
	for i, svc := range s.services {
		out[i] = svc.Slug
	}
	return out
}

// Guides returns every cost guide in file order.
func (s *Store) Guides() []Guide {
	return slices.Clone(s.guides)
}

// Guide looks up a cost guide by slug.
func (s *Store) Guide(slug string) (Guide, bool) {
	idx, ok := s.guideIndex[slug]
	if !ok {
		return Guide{}, false
	}
	return s.guides[idx], true
}

// Page returns the copy template of an archetype.
func (s *Store) Page(kind PageKind) (Page, bool) {
	p, ok := s.pages[kind]
	return p, ok
}

// Bindings builds placeholder values for a location page. zip is the
// location's first displayable zip; svc may be nil outside service pages.
// The location phone overrides the site phone when set.
func (s *Store) Bindings(loc locations.Location, zip string, svc *Service) placeholder.Bindings {
	b := placeholder.Bindings{
		placeholder.Company:     s.site.Company,
		placeholder.CompanyName: s.site.CompanyName,
		placeholder.Phone:       s.site.Phone,
		placeholder.Domain:      s.site.Domain,
	}
	if loc.ID != "" {
		b[placeholder.City] = loc.Name
		b[placeholder.State] = loc.State
		b[placeholder.StateName] = locations.StateName(loc.State)
		if loc.Phone != "" {
			b[placeholder.Phone] = loc.Phone
		}
	}
	if zip != "" {
		b[placeholder.Zip] = zip
	}
	if svc != nil {
		b[placeholder.Service] = svc.Name
	}
	return b
}

// Resolve returns p with every string resolved against b. Section bodies
// are HTML, so they receive escaped values.
func (p Page) Resolve(b placeholder.Bindings) Page {
	esc := b.Escaped()
	out := Page{
		Title:       placeholder.Resolve(p.Title, b),
		Description: placeholder.Resolve(p.Description, b),
		Heading:     placeholder.Resolve(p.Heading, b),
		Intro:       placeholder.Resolve(p.Intro, b),
		Sections:    make([]Section, len(p.Sections)),
	}
	for i, sec := range p.Sections {
		out.Sections[i] = Section{
			Heading: placeholder.Resolve(sec.Heading, b),
			Body:    placeholder.Resolve(sec.Body, esc),
		}
	}
	return out
}

// DefaultArea is the project size used by the cost calculator when none is given.
const DefaultArea = 2000

// Estimate is a low/high price for a project size.
type Estimate struct {
	Unit string
	Area float64
	Low  float64
	High float64
}

// Estimate prices area units of svc, rounded to whole dollars.
// Non-positive areas use DefaultArea.
func (svc Service) Estimate(area float64) Estimate {
	if area <= 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		area = DefaultArea
	}
	return Estimate{
		Unit: svc.Unit,
		Area: area,
		Low:  math.Round(svc.Cost.Low * area),
		High: math.Round(svc.Cost.High * area),
	}
}
