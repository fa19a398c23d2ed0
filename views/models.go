package views

import (
	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/pkg/locations"
)

// Link is an anchor.
type Link struct {
	Label string
	URL   string
}

// Layout is shared by every page.
type Layout struct {
	Site      content.Site
	Title     string
	Desc      string
	Canonical string
	HomeURL   string
	Phone     string
	Nav       []Link
	Crumbs    []Link
}

// PageView is a page with resolved copy and nothing else.
type PageView struct {
	Layout
	Page content.Page
}

// HomeView is the root home page.
type HomeView struct {
	Layout
	Page     content.Page
	Services []ServiceCard
	States   []Link
	Guides   []Link
}

// ServiceCard links a service from an index or home page.
type ServiceCard struct {
	Name    string
	Summary string
	URL     string
	From    string
}

// LocationView is a city home page.
type LocationView struct {
	Layout
	Page         content.Page
	Location     locations.Location
	StateName    string
	StateURL     string
	ZipCodes     []string
	Services     []ServiceCard
	Nearby       []Link
	Blocks       []locations.ServiceBlock
	FAQs         []locations.FAQ
	Testimonials []locations.Testimonial
}

// StateView is a state home page.
type StateView struct {
	Layout
	Page      content.Page
	Code      string
	Name      string
	Zip       string
	Locations []Link
	Services  []ServiceCard
}

// ServiceView is a service page, optionally scoped to a city or state.
type ServiceView struct {
	Layout
	Page          content.Page
	Service       content.Service
	Place         string
	Estimate      content.Estimate
	CalculatorURL string
	GuideURL      string
	QuoteURL      string
	FAQs          []locations.FAQ
	Block         *locations.ServiceBlock
}

// ServicesView is the service index.
type ServicesView struct {
	Layout
	Page     content.Page
	Services []ServiceCard
}

// ContactView is the contact page.
type ContactView struct {
	Layout
	Page   content.Page
	Action string
	Sent   bool
	Form   LeadForm
	Errors map[string]string
}

// LeadForm holds submitted lead fields for redisplay.
type LeadForm struct {
	Name    string
	Phone   string
	Email   string
	Zip     string
	Service string
	Message string
}

// CalculatorView is the cost calculator.
type CalculatorView struct {
	Layout
	Page     content.Page
	Service  content.Service
	Place    string
	Estimate content.Estimate
	Action   string
}

// GuidesView is the cost guide index.
type GuidesView struct {
	Layout
	Page   content.Page
	Guides []GuideCard
}

// GuideCard links a guide from the index.
type GuideCard struct {
	Title   string
	Summary string
	URL     string
}

// GuideView is one cost guide.
type GuideView struct {
	Layout
	Guide      content.Guide
	ServiceURL string
}

// ErrorView is an error page.
type ErrorView struct {
	Layout
	Code    int
	Message string
}
