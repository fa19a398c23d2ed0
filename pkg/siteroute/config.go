package siteroute

// DefaultServiceSlugs is the roofing and construction catalog used when
// Config.ServiceSlugs is empty. It must match the content catalog.
var DefaultServiceSlugs = []string{
	"roof-repair",
	"roof-replacement",
	"roof-inspection",
	"storm-damage-repair",
	"emergency-roof-repair",
	"metal-roofing",
	"shingle-roofing",
	"flat-roofing",
	"commercial-roofing",
	"gutter-installation",
	"siding-installation",
	"skylight-installation",
}

// Config configures the routing engine.
type Config struct {
	// BaseDomain is the root site host, e.g. "example.com".
	BaseDomain string `env:"BASE_DOMAIN" envDefault:"example.com"`
	// Scheme used in redirect URLs.
	Scheme string `env:"PUBLIC_SCHEME" envDefault:"https"`
	// Port appended to redirect hosts; empty for the scheme default.
	Port string `env:"PUBLIC_PORT"`
	// RootAliases are subdomain labels served as the root site (the brand name).
	RootAliases []string `env:"ROOT_ALIASES" envSeparator:","`

	ServiceSlugs    []string `env:"-"`
	TopLevelPages   []string `env:"-"`
	BlockedSegments []string `env:"-"`
}

func (c Config) withDefaults() Config {
	if c.Scheme == "" {
		c.Scheme = "https"
	}
	if len(c.ServiceSlugs) == 0 {
		c.ServiceSlugs = DefaultServiceSlugs
	}
	if len(c.TopLevelPages) == 0 {
		c.TopLevelPages = []string{"services", "about", "contact"}
	}
	if len(c.BlockedSegments) == 0 {
		c.BlockedSegments = []string{"states", "locations", "api", "robots.txt"}
	}
	return c
}
