package internal

import "strings"

// ExtractorSource reads one candidate value from a request.
type ExtractorSource = func(Context) (string, bool)

// Extractor returns the first non-blank value among its sources.
type Extractor []ExtractorSource

// NewExtractor tries sources in the given order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor(sources)
}

// Extract reports ("", false) when every source comes up blank.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e {
		if v, ok := src(c); ok {
			return v, true
		}
	}
	return "", false
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return trimmed(func(c Context) string { return c.Header(name) })
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return trimmed(func(c Context) string { return c.Query(name) })
}

// FromParam reads a URL parameter.
func FromParam(name string) ExtractorSource {
	return trimmed(func(c Context) string { return c.Param(name) })
}

// FromForm reads a form field.
func FromForm(name string) ExtractorSource {
	return trimmed(func(c Context) string { return c.Form(name) })
}

func trimmed(read func(Context) string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := strings.TrimSpace(read(c))
		return v, v != ""
	}
}
