package middlewares_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/pagefarm/pagefarm/internal"
	"github.com/pagefarm/pagefarm/pkg/logger"
)

type testContext struct {
	response *internal.ResponseWriter
	request  *http.Request
	values   map[any]any
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: internal.NewResponseWriter(w),
		request:  r,
		values:   make(map[any]any),
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Param(name string) string      { return "" }

func (c *testContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *testContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *testContext) Form(name string) string      { return c.request.FormValue(name) }
func (c *testContext) Domain() string               { return c.request.Host }
func (c *testContext) Subdomain() string            { return "" }
func (c *testContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }
func (c *testContext) JSON(code int, v any) error {
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}
func (c *testContext) XML(code int, v any) error { c.response.WriteHeader(code); return nil }
func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}
func (c *testContext) Blob(code int, contentType string, b []byte) error {
	c.response.Header().Set("Content-Type", contentType)
	c.response.WriteHeader(code)
	_, err := c.response.Write(b)
	return err
}
func (c *testContext) NoContent(code int) error { c.response.WriteHeader(code); return nil }
func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}
func (c *testContext) Render(code int, component internal.Component) error {
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	err := internal.NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *testContext) Rewrite(path string) {
	u := *c.request.URL
	u.Path = path
	c.request = c.request.Clone(c.request.Context())
	c.request.URL = &u
}

func (c *testContext) OriginalPath() string                     { return c.request.URL.Path }
func (c *testContext) Written() bool                            { return c.response.Written() }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.response }
func (c *testContext) Logger() *slog.Logger                     { return logger.NewNope() }
func (c *testContext) LogDebug(msg string, attrs ...any)        {}
func (c *testContext) LogInfo(msg string, attrs ...any)         {}
func (c *testContext) LogWarn(msg string, attrs ...any)         {}
func (c *testContext) LogError(msg string, attrs ...any)        {}

func (c *testContext) Set(key, value any) {
	c.values[key] = value
	// Also store in request context for context extractors
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Get(key any) any {
	return c.values[key]
}

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

// routes adapts a function to internal.Handler for app level tests.
type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func serve(app *internal.App, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
