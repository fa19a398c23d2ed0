package internal_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagefarm/pagefarm/internal"
)

type ctxKey struct{}

func TestTypedHelpers(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/calc/{area}", func(c internal.Context) error {
			c.Set(ctxKey{}, "stored")
			area := internal.Param[float64](c, "area")
			units := internal.Query[int](c, "units")
			unit := internal.QueryDefault(c, "unit", "sq ft")
			zip := internal.QueryDefault(c, "zip", 0)
			return c.String(http.StatusOK, strings.Join([]string{
				strconv.FormatFloat(area, 'f', -1, 64),
				strconv.Itoa(units),
				unit,
				strconv.Itoa(zip),
				internal.ContextValue[string](c, ctxKey{}),
				strconv.Itoa(internal.ContextValue[int](c, ctxKey{})),
			}, "|"))
		})
	})))

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"all present", "/calc/1250.5?units=3&unit=sq+m&zip=78701", "1250.5|3|sq m|78701|stored|0"},
		{"defaults", "/calc/800", "800|0|sq ft|0|stored|0"},
		{"unparseable falls back", "/calc/abc?units=x&zip=nope", "0|0|sq ft|0|stored|0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(t, app, http.MethodGet, tt.target)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	service := internal.NewExtractor(
		internal.FromForm("service"),
		internal.FromParam("service"),
		internal.FromQuery("service"),
		internal.FromHeader("X-Service"),
	)

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		handler := func(c internal.Context) error {
			v, ok := service.Extract(c)
			if !ok {
				return c.String(http.StatusNotFound, "")
			}
			return c.String(http.StatusOK, v)
		}
		r.POST("/quote", handler)
		r.POST("/quote/{service}", handler)
	})))

	tests := []struct {
		name   string
		header map[string]string
		target string
		body   string
		code   int
		want   string
	}{
		{name: "form wins", target: "/quote/gutters?service=q", body: "service=roof-repair", code: http.StatusOK, want: "roof-repair"},
		{name: "param", target: "/quote/gutters", code: http.StatusOK, want: "gutters"},
		{name: "query", target: "/quote?service=storm-damage", code: http.StatusOK, want: "storm-damage"},
		{name: "header", header: map[string]string{"X-Service": "roof-replacement"}, target: "/quote", code: http.StatusOK, want: "roof-replacement"},
		{name: "blank values skipped", header: map[string]string{"X-Service": "  "}, target: "/quote?service=+", code: http.StatusNotFound},
		{name: "trimmed", target: "/quote?service=+roof-repair+", code: http.StatusOK, want: "roof-repair"},
		{name: "missing", target: "/quote", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.want != "" {
				assert.Equal(t, tt.want, rec.Body.String())
			}
		})
	}
}
