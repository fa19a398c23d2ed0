package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns Markdown message templates into HTML wrapped in a layout.
// Everything is parsed up front, so a broken template fails at startup.
type Renderer struct {
	md        goldmark.Markdown
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
}

type parsedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
}

// RenderResult is a rendered message.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	// Text is the executed Markdown before HTML conversion.
	Text string
}

// NewRenderer parses every *.md file at the root of fsys as a message
// template and every layouts/*.html file as a layout.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{
		md:        goldmark.New(goldmark.WithExtensions(extension.Table, extension.Linkify)),
		templates: map[string]*parsedTemplate{},
		layouts:   map[string]*template.Template{},
	}

	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
		}
		tpl, err := ParseTemplate(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		body, err := texttemplate.New(name).Option("missingkey=zero").Parse(tpl.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
		r.templates[name] = &parsedTemplate{metadata: tpl.Metadata, body: body}
	}

	layouts, err := fs.Glob(fsys, "layouts/*.html")
	if err != nil {
		return nil, err
	}
	for _, name := range layouts {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
		}
		base := path.Base(name)
		lt, err := template.New(base).Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
		r.layouts[base] = lt
	}
	return r, nil
}

// Templates lists the parsed template names.
func (r *Renderer) Templates() []string {
	out := make([]string, 0, len(r.templates))
	for name := range r.templates {
		out = append(out, name)
	}
	return out
}

// Render executes the named template with data and wraps it in layout.
// An empty layout returns the bare HTML fragment.
func (r *Renderer) Render(layout, name string, data any) (*RenderResult, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var text bytes.Buffer
	if err := tpl.body.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var fragment bytes.Buffer
	if err := r.md.Convert(text.Bytes(), &fragment); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", ErrRenderFailed, err)
	}

	res := &RenderResult{Metadata: tpl.metadata, Text: strings.TrimSpace(text.String())}
	if layout == "" {
		res.HTML = fragment.String()
		return res, nil
	}

	lt, ok := r.layouts[layout]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, layout)
	}
	var page bytes.Buffer
	err := lt.Execute(&page, map[string]any{
		"Content":  template.HTML(fragment.String()),
		"Metadata": tpl.metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}
	res.HTML = page.String()
	return res, nil
}
