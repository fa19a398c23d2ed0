package main

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/pagefarm/pagefarm/data"
	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/pkg/logger"
	"github.com/pagefarm/pagefarm/pkg/mailer"
	"github.com/pagefarm/pagefarm/pkg/mailer/resend"
	"github.com/pagefarm/pagefarm/pkg/redis"
	"github.com/pagefarm/pagefarm/pkg/siteroute"
)

type config struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	ContentDir      string        `env:"CONTENT_DIR"`
	LeadRecipient   string        `env:"LEAD_RECIPIENT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	SitemapTimeout  time.Duration `env:"SITEMAP_TIMEOUT" envDefault:"60s"`
	NearbyLimit     int           `env:"NEARBY_LIMIT" envDefault:"24"`

	PageCache pageCacheConfig
	Log       logger.Config
	Routing   siteroute.Config
	Redis     redis.Config
	Resend    resend.Config
	Mailer    mailer.Config
}

type pageCacheConfig struct {
	TTL        time.Duration `env:"PAGE_CACHE_TTL" envDefault:"1h"`
	MaxEntries int           `env:"PAGE_CACHE_MAX_ENTRIES" envDefault:"10000"`
	Disabled   bool          `env:"PAGE_CACHE_DISABLED"`

	// KeepOnStart leaves Redis entries from the previous deploy in place.
	KeepOnStart bool `env:"PAGE_CACHE_KEEP_ON_START"`
}

func loadConfig() (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// contentFS returns the content directory and the registry file inside it.
// An empty CONTENT_DIR serves the embedded sample site.
func (c config) contentFS() (fs.FS, string, error) {
	if c.ContentDir == "" {
		return data.Content(), data.LocationsFile, nil
	}
	fsys := os.DirFS(c.ContentDir)
	name, err := content.ResolveFile(fsys, "locations")
	if err != nil {
		return nil, "", err
	}
	return fsys, name, nil
}
