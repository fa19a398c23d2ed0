package placeholder

import (
	"html"
	"regexp"
	"slices"
	"strings"
)

// Token is a placeholder name without braces, e.g. "CITY".
type Token string

// Tokens bound by the site. Both {NAME} and {{NAME}} spellings resolve to the same binding.
const (
	City        Token = "CITY"
	State       Token = "STATE"
	StateName   Token = "STATE_NAME"
	Phone       Token = "PHONE"
	Company     Token = "COMPANY"
	CompanyName Token = "COMPANY_NAME"
	Zip         Token = "ZIP"
	Service     Token = "SERVICE"
	Domain      Token = "DOMAIN"
)

var vocabulary = []Token{City, State, StateName, Phone, Company, CompanyName, Zip, Service, Domain}

// Vocabulary returns the tokens the site knows how to bind.
func Vocabulary() []Token {
	return slices.Clone(vocabulary)
}

// Known reports whether t is part of the vocabulary.
func Known(t Token) bool {
	return slices.Contains(vocabulary, t)
}

// Bindings maps tokens to their values.
type Bindings map[Token]string

// Escaped returns a copy of b with every value HTML-escaped, for resolving
// templates that are already HTML.
func (b Bindings) Escaped() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = html.EscapeString(v)
	}
	return out
}

// pattern matches {{NAME}} first so that a double-brace token is never read
// as a single-brace token wrapped in stray braces.
var pattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}|\{([A-Z][A-Z0-9_]*)\}`)

// Resolve replaces every {TOKEN} and {{TOKEN}} in template that has a binding.
// Unbound tokens are left verbatim. Substituted values are not scanned again,
// so a value containing braces is inserted literally.
//
// Example:
//
//	placeholder.Resolve("Roofing in {CITY}, {{STATE}}", placeholder.Bindings{
//	    placeholder.City:  "Austin",
//	    placeholder.State: "TX",
//	})
//	// "Roofing in Austin, TX"
func Resolve(template string, b Bindings) string {
	if template == "" || len(b) == 0 || !strings.Contains(template, "{") {
		return template
	}
	return pattern.ReplaceAllStringFunc(template, func(m string) string {
		if v, ok := b[nameOf(m)]; ok {
			return v
		}
		return m
	})
}

// ResolveTree returns a deep copy of a decoded JSON value with every string resolved.
// Map keys are left as they are.
func ResolveTree(v any, b Bindings) any {
	switch t := v.(type) {
	case string:
		return Resolve(t, b)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = ResolveTree(val, b)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = ResolveTree(val, b)
		}
		return out
	case []string:
		out := make([]string, len(t))
		for i, val := range t {
			out[i] = Resolve(val, b)
		}
		return out
	default:
		return v
	}
}

// Find returns the sorted, de-duplicated token spellings present in s,
// braces included: Find("{CITY} and {{CITY}}, {CITY}") == ["{CITY}", "{{CITY}}"].
func Find(s string) []string {
	matches := pattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	slices.Sort(matches)
	return slices.Compact(matches)
}

// SameTokens reports whether a and b carry the same token inventory.
func SameTokens(a, b string) bool {
	return slices.Equal(Find(a), Find(b))
}

// Unknown returns the token spellings in s whose name is outside the vocabulary.
func Unknown(s string) []string {
	var out []string
	for _, m := range Find(s) {
		if !Known(nameOf(m)) {
			out = append(out, m)
		}
	}
	return out
}

func nameOf(match string) Token {
	return Token(strings.Trim(match, "{}"))
}
