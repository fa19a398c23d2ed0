package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagefarm/pagefarm"
	"github.com/pagefarm/pagefarm/data"
	"github.com/pagefarm/pagefarm/handlers"
	"github.com/pagefarm/pagefarm/middlewares"
	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/mailer"
	"github.com/pagefarm/pagefarm/pkg/pagecache"
	"github.com/pagefarm/pagefarm/pkg/siteroute"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.SendParams
	err  error
}

func (s *recordingSender) Send(_ context.Context, p mailer.SendParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, p)
	return nil
}

func (s *recordingSender) messages() []mailer.SendParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailer.SendParams(nil), s.sent...)
}

func newApp(t *testing.T, sender handlers.LeadSender, cache pagecache.Store) *pagefarm.App {
	t.Helper()

	store, err := content.Load(data.Content())
	require.NoError(t, err)
	registry, err := locations.Load(data.Content(), data.LocationsFile)
	require.NoError(t, err)

	engine := siteroute.New(siteroute.Config{
		BaseDomain:   "example.com",
		ServiceSlugs: store.ServiceSlugs(),
	}, registry)

	deps := handlers.Deps{
		Content:       store,
		Locations:     registry,
		Engine:        engine,
		Leads:         sender,
		LeadRecipient: "office@example.com",
		PageCache:     cache,
	}
	errs := handlers.NewErrors(deps)

	return pagefarm.New(
		pagefarm.WithBaseDomain("example.com"),
		pagefarm.WithMiddleware(
			middlewares.Recover(),
			middlewares.SiteRouting(engine),
		),
		pagefarm.WithHandlers(
			handlers.NewPages(deps),
			handlers.NewSitemap(deps),
			handlers.NewAPI(deps),
		),
		pagefarm.WithErrorHandler(errs.Handle),
		pagefarm.WithNotFoundHandler(errs.NotFound),
		pagefarm.WithMethodNotAllowedHandler(errs.MethodNotAllowed),
	)
}

func get(app http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(app http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestPages(t *testing.T) {
	t.Parallel()

	app := newApp(t, &recordingSender{}, nil)

	tests := []struct {
		name     string
		target   string
		code     int
		contains []string
	}{
		{
			name:   "root home",
			target: "http://example.com/",
			code:   http.StatusOK,
			contains: []string{
				"<h1>Roofing you can count on</h1>",
				`href="https://tx.example.com/"`,
				`href="https://example.com/services/roof-repair"`,
				`<link rel="canonical" href="https://example.com/">`,
			},
		},
		{
			name:   "city home",
			target: "http://austin-tx.example.com/",
			code:   http.StatusOK,
			contains: []string{
				"<title>Roofing Contractor in Austin, TX | Summit Roofing</title>",
				"zip code 78701",
				"<li>Round Rock</li>",
				"Maria G.",
				`href="https://dallas-tx.example.com/"`,
				`href="https://austin-tx.example.com/roof-repair"`,
				`<link rel="canonical" href="https://austin-tx.example.com/">`,
			},
		},
		{
			name:     "city by name label is canonicalized",
			target:   "http://austin.example.com/",
			code:     http.StatusOK,
			contains: []string{`<link rel="canonical" href="https://austin-tx.example.com/">`},
		},
		{
			name:   "city service",
			target: "http://austin-tx.example.com/roof-repair",
			code:   http.StatusOK,
			contains: []string{
				"<h1>Roof Repair in Austin</h1>",
				"Hail-season repairs in Austin",
				"$7,000 to $18,000 for 2,000 sq ft",
				`href="https://example.com/austin-tx/roof-repair/cost-calculator"`,
				`href="/contact?service=roof-repair"`,
			},
		},
		{
			name:     "contact form prefilled from a quote link",
			target:   "http://austin-tx.example.com/contact?service=roof-repair&zip=78701",
			code:     http.StatusOK,
			contains: []string{`name="service" value="Roof Repair"`, `name="zip" value="78701"`},
		},
		{
			name:     "contact prefill ignores unknown values",
			target:   "http://example.com/contact?service=solar&zip=abc",
			code:     http.StatusOK,
			contains: []string{`name="service" value=""`, `name="zip" value=""`},
		},
		{
			name:     "location phone overrides site phone",
			target:   "http://houston-tx.example.com/contact",
			code:     http.StatusOK,
			contains: []string{"(555) 010-7070", `action="/contact"`},
		},
		{
			name:   "state home",
			target: "http://tx.example.com/",
			code:   http.StatusOK,
			contains: []string{
				"<h1>Roofing across Texas</h1>",
				`href="https://houston-tx.example.com/"`,
				`href="https://tx.example.com/gutter-installation"`,
			},
		},
		{
			name:     "state service",
			target:   "http://tx.example.com/gutter-installation",
			code:     http.StatusOK,
			contains: []string{"<h1>Gutter Installation in Texas</h1>", "linear ft"},
		},
		{
			name:     "state slug on apex renders the state",
			target:   "http://example.com/locations/iowa",
			code:     http.StatusOK,
			contains: []string{"<h1>Roofing across Iowa</h1>", `<link rel="canonical" href="https://ia.example.com/">`},
		},
		{
			name:     "root service",
			target:   "http://example.com/services/roof-repair",
			code:     http.StatusOK,
			contains: []string{"<h1>Roof Repair in your area</h1>"},
		},
		{
			name:     "calculator with size",
			target:   "http://example.com/austin-tx/roof-repair/cost-calculator?sqft=1000",
			code:     http.StatusOK,
			contains: []string{"$3,500 to $9,000", "Roof Repair cost in Austin"},
		},
		{
			name:     "calculator on tenant host",
			target:   "http://dallas-tx.example.com/roof-replacement/cost-calculator",
			code:     http.StatusOK,
			contains: []string{"$11,000 to $24,000", "Dallas, TX"},
		},
		{
			name:     "cost guide",
			target:   "http://example.com/cost-guides/roof-replacement-cost",
			code:     http.StatusOK,
			contains: []string{"<table>", "Call (555) 010-2030 for a free estimate from Summit Roofing.", `href="https://example.com/services/roof-replacement"`},
		},
		{name: "unknown guide", target: "http://example.com/cost-guides/nope", code: http.StatusNotFound, contains: []string{"guide not found"}},
		{name: "unknown tenant page", target: "http://austin-tx.example.com/nope", code: http.StatusNotFound, contains: []string{"<h1>404</h1>"}},
		{name: "unknown location", target: "http://example.com/locations/nowhere", code: http.StatusNotFound},
		{name: "unknown state", target: "http://example.com/states/zz", code: http.StatusNotFound},
		{name: "unknown calculator service", target: "http://example.com/austin-tx/nope/cost-calculator", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := get(app, tt.target)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			for _, want := range tt.contains {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestErrorsAsJSON(t *testing.T) {
	t.Parallel()

	app := newApp(t, &recordingSender{}, nil)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/cost-guides/nope", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "guide not found", body.Error)
	assert.Equal(t, http.StatusNotFound, body.Status)
}

func TestSitemapAndRobots(t *testing.T) {
	t.Parallel()

	app := newApp(t, &recordingSender{}, nil)

	rec := get(app, "http://example.com/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	for _, loc := range []string{
		"https://example.com/",
		"https://example.com/cost-guides/gutter-cost",
		"https://tx.example.com/",
		"https://austin-tx.example.com/roof-repair",
		"https://des-moines-ia.example.com/contact",
	} {
		assert.Contains(t, body, "<loc>"+loc+"</loc>")
	}

	rec = get(app, "http://austin-tx.example.com/sitemap.xml")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://example.com/sitemap.xml", rec.Header().Get("Location"))

	rec = get(app, "http://example.com/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://example.com/sitemap.xml")

	rec = get(app, "http://austin-tx.example.com/robots.txt")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://example.com/robots.txt", rec.Header().Get("Location"))
}

func TestAPI(t *testing.T) {
	t.Parallel()

	app := newApp(t, &recordingSender{}, nil)

	decode := func(t *testing.T, rec *httptest.ResponseRecorder, v any) {
		t.Helper()
		require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
	}

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		rec := get(app, "http://example.com/api/locations")
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Locations []handlers.LocationJSON `json:"locations"`
			Total     int                     `json:"total"`
		}
		decode(t, rec, &body)
		assert.Equal(t, 5, body.Total)
		assert.Equal(t, "https://austin-tx.example.com/", body.Locations[0].URL)
	})

	t.Run("detail drops placeholder zips", func(t *testing.T) {
		t.Parallel()
		rec := get(app, "http://example.com/api/locations/des-moines-ia")
		require.Equal(t, http.StatusOK, rec.Code)
		var loc handlers.LocationJSON
		decode(t, rec, &loc)
		assert.Equal(t, "Iowa", loc.StateName)
		require.Len(t, loc.ZipCodes, 1)
		assert.NotEqual(t, "00000", loc.ZipCodes[0])
	})

	t.Run("state slug", func(t *testing.T) {
		t.Parallel()
		rec := get(app, "http://example.com/api/locations/iowa")
		require.Equal(t, http.StatusOK, rec.Code)
		var loc handlers.LocationJSON
		decode(t, rec, &loc)
		assert.Equal(t, "https://ia.example.com/", loc.URL)
	})

	t.Run("nearby", func(t *testing.T) {
		t.Parallel()
		rec := get(app, "http://example.com/api/locations/austin-tx/nearby?limit=1")
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Locations []handlers.LocationJSON `json:"locations"`
		}
		decode(t, rec, &body)
		require.Len(t, body.Locations, 1)
		assert.Equal(t, "dallas-tx", body.Locations[0].ID)

		rec = get(app, "http://example.com/api/locations/austin-tx/nearby?limit=0")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("state", func(t *testing.T) {
		t.Parallel()
		rec := get(app, "http://example.com/api/states/tx")
		require.Equal(t, http.StatusOK, rec.Code)
		var st handlers.StateJSON
		decode(t, rec, &st)
		assert.Equal(t, "TX", st.Code)
		assert.Equal(t, "Texas", st.Name)
		assert.Len(t, st.Locations, 3)
	})

	t.Run("route preview", func(t *testing.T) {
		t.Parallel()
		rec := get(app, "http://example.com/api/route?host=austin.example.com&path=/roof-repair")
		require.Equal(t, http.StatusOK, rec.Code)
		var d handlers.RouteJSON
		decode(t, rec, &d)
		assert.Equal(t, "subdomain-service", d.Rule)
		assert.Equal(t, "rewrite", d.Action)
		assert.Equal(t, "/locations/austin-tx/roof-repair", d.Path)
		assert.Equal(t, "austin-tx", d.ID)

		rec = get(app, "http://example.com/api/route")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found is json", func(t *testing.T) {
		t.Parallel()
		rec := get(app, "http://example.com/api/locations/nowhere")
		require.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]any
		decode(t, rec, &body)
		assert.Equal(t, "location not found", body["error"])
	})

	t.Run("cors preflight", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodOptions, "http://example.com/api/locations", nil)
		req.Header.Set("Origin", "https://partner.example.org")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("tenant hosts redirect to apex", func(t *testing.T) {
		t.Parallel()
		rec := get(app, "http://austin-tx.example.com/api/locations")
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "https://example.com/api/locations", rec.Header().Get("Location"))
	})
}

func TestLeads(t *testing.T) {
	t.Parallel()

	valid := url.Values{
		"name":    {"Dana Smith"},
		"phone":   {"(512) 555-0199"},
		"email":   {"dana@example.net"},
		"zip":     {"78701"},
		"service": {"Roof Repair"},
		"message": {"Leak over the <b>kitchen</b>"},
	}

	t.Run("city lead is sent and redirected", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		app := newApp(t, sender, nil)

		rec := postForm(app, "http://austin-tx.example.com/contact", valid)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, "/contact?sent=1", rec.Header().Get("Location"))

		msgs := sender.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "office@example.com", msgs[0].To)
		assert.Equal(t, handlers.LeadTemplate, msgs[0].Template)
		assert.Equal(t, "dana@example.net", msgs[0].ReplyTo)

		lead, ok := msgs[0].Data.(handlers.Lead)
		require.True(t, ok)
		assert.Equal(t, "Austin, TX", lead.Place)
		assert.Equal(t, "https://austin-tx.example.com/contact", lead.Page)
		assert.Equal(t, "Leak over the kitchen", lead.Message)

		rec = get(app, "http://austin-tx.example.com/contact?sent=1")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "We received your request")
	})

	t.Run("state and root forms", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		app := newApp(t, sender, nil)

		rec := postForm(app, "http://tx.example.com/contact", valid)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		rec = postForm(app, "http://example.com/contact", valid)
		require.Equal(t, http.StatusSeeOther, rec.Code)

		msgs := sender.messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, "Texas", msgs[0].Data.(handlers.Lead).Place)
		assert.Empty(t, msgs[1].Data.(handlers.Lead).Place)
	})

	t.Run("invalid input re-renders the form", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		app := newApp(t, sender, nil)

		rec := postForm(app, "http://austin-tx.example.com/contact", url.Values{
			"email": {"not-an-email"},
			"zip":   {"7870"},
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Please tell us your name.")
		assert.Contains(t, body, "Please enter a valid email address.")
		assert.Contains(t, body, "Please enter a 5 digit zip code.")
		assert.Contains(t, body, `value="not-an-email"`)
		assert.Empty(t, sender.messages())
	})

	t.Run("honeypot", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		app := newApp(t, sender, nil)

		form := url.Values{"website": {"http://spam.example"}}
		for k, v := range valid {
			form[k] = v
		}
		rec := postForm(app, "http://example.com/contact", form)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Empty(t, sender.messages())
	})

	t.Run("delivery failure", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, &recordingSender{err: errors.New("provider down")}, nil)

		rec := postForm(app, "http://example.com/contact", valid)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "please call us")
	})
}

func TestPageCache(t *testing.T) {
	t.Parallel()

	store := pagecache.NewMemory(pagecache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = store.Close() })
	app := newApp(t, &recordingSender{}, store)

	first := get(app, "http://austin-tx.example.com/roof-repair")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get(app, "http://austin-tx.example.com/roof-repair")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	other := get(app, "http://austin.example.com/roof-repair")
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"), "host is part of the key")

	sent := get(app, "http://austin-tx.example.com/contact?sent=1")
	assert.Empty(t, sent.Header().Get("X-Cache"))

	missing := get(app, "http://example.com/cost-guides/nope")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, 2, store.Len(), "only the two 200 pages are stored")
}
