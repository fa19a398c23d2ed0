package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/pagefarm/pagefarm"
	"github.com/pagefarm/pagefarm/middlewares"
	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/views"
)

// Errors renders handler errors as HTML pages, or as JSON under /api.
type Errors struct {
	site
}

// NewErrors creates the error renderer.
func NewErrors(deps Deps) *Errors {
	return &Errors{site: site{Deps: deps}}
}

// NotFound is the app's 404 handler.
func (h *Errors) NotFound(pagefarm.Context) error {
	return pagefarm.ErrNotFound("Page not found")
}

// MethodNotAllowed is the app's 405 handler.
func (h *Errors) MethodNotAllowed(pagefarm.Context) error {
	return pagefarm.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
}

// Handle is the app's error handler.
func (h *Errors) Handle(c pagefarm.Context, err error) error {
	code, msg := http.StatusInternalServerError, "Something went wrong"
	switch {
	case middlewares.IsTimeoutError(err):
		code, msg = http.StatusGatewayTimeout, "The request took too long"
	case pagefarm.IsHTTPError(err):
		herr := pagefarm.AsHTTPError(err)
		code, msg = herr.Code, herr.Message
	}

	if code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Int("status", code), slog.Any("error", err))
	}

	if wantsJSON(c) {
		return c.JSON(code, map[string]any{
			"error":  msg,
			"status": code,
		})
	}

	p := h.requestPlace(c)
	l := h.layout(c, p, content.Page{Title: http.StatusText(code)})
	l.Canonical = ""
	return c.Render(code, views.Error(views.ErrorView{
		Layout:  l,
		Code:    code,
		Message: msg,
	}))
}

func wantsJSON(c pagefarm.Context) bool {
	if strings.HasPrefix(c.OriginalPath(), "/api/") {
		return true
	}
	accept := c.Header("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
