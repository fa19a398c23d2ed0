package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures Make.
type Option func(*config)

type config struct {
	strip     string
	maxLength int
}

// MaxLength limits the slug length in runes. Zero means unlimited.
func MaxLength(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxLength = n
		}
	}
}

// StripChars removes every listed character before processing, so they
// join the words around them instead of separating them.
func StripChars(chars string) Option {
	return func(c *config) {
		c.strip += chars
	}
}

// ligatures are letters that do not decompose under NFD.
var ligatures = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "đ", "d", "Đ", "D", "ł", "l", "Ł", "L",
)

// Make converts s into a lowercase, hyphen separated ASCII slug.
func Make(s string, opts ...Option) string {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.strip != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(cfg.strip, r) {
				return -1
			}
			return r
		}, s)
	}
	s = strings.ToLower(Fold(s))

	var (
		b       strings.Builder
		pending bool
	)
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	out := b.String()
	if cfg.maxLength > 0 && len(out) > cfg.maxLength {
		out = strings.TrimRight(out[:cfg.maxLength], "-")
	}
	return out
}

// Fold maps Latin letters with diacritics to their ASCII base form.
// Characters without an ASCII equivalent are returned unchanged.
func Fold(s string) string {
	s = ligatures.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

var (
	subdomainStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	subdomainSpaces = regexp.MustCompile(`\s+`)
	subdomainDashes = regexp.MustCompile(`-+`)
)

// Subdomain derives a DNS label from a display name: lowercase, drop every
// character outside [a-z0-9], whitespace and "-", turn whitespace runs into
// single hyphens, collapse repeated hyphens and trim them from both ends.
// Subdomain(Subdomain(s)) == Subdomain(s) for every s.
func Subdomain(name string) string {
	s := strings.ToLower(name)
	s = subdomainStrip.ReplaceAllString(s, "")
	s = subdomainSpaces.ReplaceAllString(s, "-")
	s = subdomainDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
