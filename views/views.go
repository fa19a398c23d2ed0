// Package views renders site pages from embedded html/template markup
// exposed as templ components.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"math"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	printer = message.NewPrinter(language.AmericanEnglish)

	pages = template.Must(template.New("views").Funcs(template.FuncMap{
		"money": Money,
		"number": func(v float64) string {
			return printer.Sprintf("%d", int64(math.Round(v)))
		},
		"safe": func(s string) template.HTML {
			// Content HTML is sanitized when the catalog is loaded.
			return template.HTML(s) //nolint:gosec
		},
		"year": func() int { return time.Now().Year() },
		"stars": func(n int) string {
			if n <= 0 || n > 5 {
				return ""
			}
			s := ""
			for range n {
				s += "★"
			}
			return s
		},
	}).ParseFS(templateFS, "templates/*.html"))
)

// Money formats whole US dollars with thousands separators, e.g. "$12,400".
func Money(v float64) string {
	return printer.Sprintf("$%d", int64(math.Round(v)))
}

// render returns a component executing the named template with data.
func render(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// Home renders the root site home page.
func Home(v HomeView) templ.Component { return render("home", v) }

// Location renders a city home page.
func Location(v LocationView) templ.Component { return render("location", v) }

// State renders a state home page.
func State(v StateView) templ.Component { return render("state", v) }

// Service renders a service page on the root site, a city or a state.
func Service(v ServiceView) templ.Component { return render("service", v) }

// Services renders the service index.
func Services(v ServicesView) templ.Component { return render("services", v) }

// About renders the about page.
func About(v PageView) templ.Component { return render("about", v) }

// Contact renders the contact page with the lead form.
func Contact(v ContactView) templ.Component { return render("contact", v) }

// Calculator renders the cost calculator.
func Calculator(v CalculatorView) templ.Component { return render("calculator", v) }

// Guides renders the cost guide index.
func Guides(v GuidesView) templ.Component { return render("guides", v) }

// Guide renders one cost guide.
func Guide(v GuideView) templ.Component { return render("guide", v) }

// Error renders an error page.
func Error(v ErrorView) templ.Component { return render("error", v) }
