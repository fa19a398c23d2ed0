package internal

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pagefarm/pagefarm/pkg/hostrouter"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// originalPathKey stores the request path as it was before the first rewrite.
type originalPathKey struct{}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Domain returns the request host without port, lowercased.
	Domain() string

	// Subdomain returns the label in front of the configured base domain.
	// Returns empty string for the apex, foreign hosts, or when no base domain is set.
	Subdomain() string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as a JSON response.
	JSON(code int, v any) error

	// XML writes v as an XML response with the standard XML header.
	XML(code int, v any) error

	// String writes a plain text response.
	String(code int, s string) error

	// Blob writes raw bytes with the given content type.
	Blob(code int, contentType string, b []byte) error

	// NoContent writes only the status code.
	NoContent(code int) error

	// Redirect sends a redirect response.
	Redirect(code int, url string) error

	// Render renders a component as an HTML response.
	Render(code int, component Component) error

	// Error creates an HTTPError. Return it from a handler to trigger the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Rewrite replaces the request path served by the router.
	// It must be called from middleware registered on the App, before routing happens.
	Rewrite(path string)

	// OriginalPath returns the path the client requested, ignoring rewrites.
	OriginalPath() string

	// Written reports whether the response has been written.
	Written() bool

	// ResponseWriter returns the wrapped response writer.
	ResponseWriter() *ResponseWriter

	// Logger returns the request logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)

	// Get reads a value from the request context.
	Get(key any) any
}

type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	baseDomain     string
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	// Middleware layers share one wrapper so hooks and status survive the chain.
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		baseDomain:     app.baseDomain,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Domain() string {
	return hostrouter.Normalize(c.request.Host)
}

func (c *requestContext) Subdomain() string {
	if c.baseDomain == "" {
		return ""
	}
	return hostrouter.Subdomain(c.request.Host, c.baseDomain)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) XML(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/xml; charset=utf-8")
	c.response.WriteHeader(code)
	if _, err := io.WriteString(c.response, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	return c.Blob(code, "text/plain; charset=utf-8", []byte(s))
}

func (c *requestContext) Blob(code int, contentType string, b []byte) error {
	c.response.Header().Set("Content-Type", contentType)
	c.response.WriteHeader(code)
	_, err := c.response.Write(b)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Render(code int, component Component) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Rewrite(path string) {
	if path == "" || path == c.request.URL.Path {
		return
	}

	ctx := c.request.Context()
	if ctx.Value(originalPathKey{}) == nil {
		ctx = context.WithValue(ctx, originalPathKey{}, c.request.URL.Path)
	}

	u := *c.request.URL
	u.Path = path
	u.RawPath = ""

	r := c.request.WithContext(ctx)
	r.URL = &u
	r.RequestURI = u.RequestURI()
	c.request = r
}

func (c *requestContext) OriginalPath() string {
	if p, ok := c.request.Context().Value(originalPathKey{}).(string); ok {
		return p
	}
	return c.request.URL.Path
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
