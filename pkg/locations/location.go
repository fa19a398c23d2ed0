package locations

import (
	"regexp"
	"slices"
)

// Location is one serviced city.
type Location struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	State        string         `json:"state" yaml:"state"`
	FullName     string         `json:"fullName" yaml:"fullName"`
	Phone        string         `json:"phone,omitempty" yaml:"phone,omitempty"`
	Areas        []string       `json:"areas,omitempty" yaml:"areas,omitempty"`
	ZipCodes     []string       `json:"zipCodes,omitempty" yaml:"zipCodes,omitempty"`
	Services     []ServiceBlock `json:"services,omitempty" yaml:"services,omitempty"`
	FAQs         []FAQ          `json:"faqs,omitempty" yaml:"faqs,omitempty"`
	Testimonials []Testimonial  `json:"testimonials,omitempty" yaml:"testimonials,omitempty"`

	// Virtual marks a statewide location synthesized from a state slug.
	Virtual bool `json:"virtual,omitempty" yaml:"-"`
}

// ServiceBlock is a per-location blurb for one catalog service.
type ServiceBlock struct {
	Slug        string `json:"slug" yaml:"slug"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// FAQ is a question and answer pair.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Author string `json:"author" yaml:"author"`
	Quote  string `json:"quote" yaml:"quote"`
	Rating int    `json:"rating,omitempty" yaml:"rating,omitempty"`
}

// StatewideArea is the only area listed on a virtual state location.
const StatewideArea = "Statewide Service"

var (
	idPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	zipPattern = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
)

// placeholderZips are syntactically valid values that content authors use
// for "unknown". They are never displayed.
var placeholderZips = map[string]struct{}{
	"00000": {},
	"11111": {},
	"12345": {},
	"99999": {},
}

// ValidZip reports whether zip is a 5-digit or ZIP+4 code.
func ValidZip(zip string) bool {
	return zipPattern.MatchString(zip)
}

// displayableZip reports whether zip may be shown to visitors.
func displayableZip(zip string) bool {
	if !ValidZip(zip) {
		return false
	}
	_, placeholder := placeholderZips[zip[:5]]
	return !placeholder
}

func filterZips(zips []string) []string {
	out := make([]string, 0, len(zips))
	for _, z := range zips {
		if displayableZip(z) {
			out = append(out, z)
		}
	}
	return out
}

// clone returns a copy whose slices do not alias registry storage.
func (l Location) clone() Location {
	l.Areas = slices.Clone(l.Areas)
	l.ZipCodes = slices.Clone(l.ZipCodes)
	l.Services = slices.Clone(l.Services)
	l.FAQs = slices.Clone(l.FAQs)
	l.Testimonials = slices.Clone(l.Testimonials)
	return l
}
