package bulkedit

// DefaultSkipKeys are object keys whose values are identifiers or data, not prose.
var DefaultSkipKeys = []string{
	"id", "slug", "state", "phone", "zipCodes", "url", "href", "image", "icon", "email",
}

// Option configures extraction.
type Option func(*config)

type config struct {
	skip map[string]struct{}
}

func newConfig(opts []Option) *config {
	cfg := &config{skip: make(map[string]struct{}, len(DefaultSkipKeys))}
	for _, k := range DefaultSkipKeys {
		cfg.skip[k] = struct{}{}
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSkipKeys adds object keys whose subtrees are never extracted.
func WithSkipKeys(keys ...string) Option {
	return func(c *config) {
		for _, k := range keys {
			c.skip[k] = struct{}{}
		}
	}
}

// WithOnlySkipKeys replaces the default skip list.
func WithOnlySkipKeys(keys ...string) Option {
	return func(c *config) {
		c.skip = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			c.skip[k] = struct{}{}
		}
	}
}
