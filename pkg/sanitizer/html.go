package sanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict  = bluemonday.StrictPolicy()
	blurb   = blurbPolicy()
	article = articlePolicy()
)

// inline is the formatting allowed everywhere content HTML is accepted.
var inline = []string{
	"p", "br",
	"strong", "b", "em", "i",
	"ul", "ol", "li",
	"code", "pre", "blockquote",
}

// blurbPolicy covers short fields: the site blurb, service descriptions and
// page sections.
func blurbPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(inline...)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// articlePolicy covers rendered cost guides, which add headings below the
// page title, rules and price tables.
func articlePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(inline...)
	p.AllowElements("h2", "h3", "h4", "h5", "h6", "hr")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("align").Matching(bluemonday.CellAlign).OnElements("th", "td")
	p.RequireNoFollowOnLinks(true)
	return p
}

// StripHTML removes all markup.
func StripHTML(s string) string {
	return strict.Sanitize(s)
}

// SanitizeHTML keeps basic formatting and links. Scripts, styles, event
// handlers and javascript: URLs are removed. Placeholders such as {CITY}
// pass through untouched.
func SanitizeHTML(s string) string {
	return blurb.Sanitize(s)
}

// SanitizeArticle is SanitizeHTML plus headings, rules and tables.
func SanitizeArticle(s string) string {
	return article.Sanitize(s)
}

// Text strips markup and collapses whitespace runs, for visitor input
// echoed into pages or lead emails.
func Text(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}
