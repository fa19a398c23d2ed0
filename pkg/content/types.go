package content

import "github.com/pagefarm/pagefarm/pkg/locations"

// Site is the brand-wide settings file.
type Site struct {
	CompanyName string `json:"companyName" yaml:"companyName"`
	Company     string `json:"company" yaml:"company"`
	Phone       string `json:"phone" yaml:"phone"`
	Email       string `json:"email" yaml:"email"`
	Domain      string `json:"domain" yaml:"domain"`
	Tagline     string `json:"tagline" yaml:"tagline"`
	About       string `json:"about" yaml:"about"`
	Founded     int    `json:"founded,omitempty" yaml:"founded,omitempty"`
}

// CostRange is a per-unit price band in US dollars.
type CostRange struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Service is one catalog entry; Slug doubles as the subdomain path segment.
type Service struct {
	Slug        string          `json:"slug" yaml:"slug"`
	Name        string          `json:"name" yaml:"name"`
	Summary     string          `json:"summary" yaml:"summary"`
	Description string          `json:"description" yaml:"description"`
	Unit        string          `json:"unit" yaml:"unit"`
	FAQs        []locations.FAQ `json:"faqs,omitempty" yaml:"faqs,omitempty"`
	Cost        CostRange       `json:"cost" yaml:"cost"`
}

// Guide is a long-form cost guide written in Markdown.
type Guide struct {
	Slug    string `json:"slug" yaml:"slug"`
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
	Service string `json:"service,omitempty" yaml:"service,omitempty"`
	Body    string `json:"body" yaml:"body"`

	// HTML is Body rendered and sanitized at load time.
	HTML string `json:"-" yaml:"-"`
}

// PageKind names a page archetype.
type PageKind string

const (
	PageHome       PageKind = "home"
	PageLocation   PageKind = "location"
	PageState      PageKind = "state"
	PageService    PageKind = "service"
	PageServices   PageKind = "services"
	PageAbout      PageKind = "about"
	PageContact    PageKind = "contact"
	PageCalculator PageKind = "calculator"
	PageGuides     PageKind = "guides"
)

// RequiredPages lists the archetypes every site must define.
var RequiredPages = []PageKind{
	PageHome, PageLocation, PageState, PageService, PageServices,
	PageAbout, PageContact, PageCalculator, PageGuides,
}

// Page is the copy template of one archetype. Every string may carry placeholders.
type Page struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Heading     string    `json:"heading" yaml:"heading"`
	Intro       string    `json:"intro" yaml:"intro"`
	Sections    []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Section is a headed block of HTML copy.
type Section struct {
	Heading string `json:"heading" yaml:"heading"`
	Body    string `json:"body" yaml:"body"`
}
