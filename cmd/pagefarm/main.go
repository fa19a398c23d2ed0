// Command pagefarm serves the location site: the root domain, one subdomain
// per city, and one per state.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/pagefarm/pagefarm"
	"github.com/pagefarm/pagefarm/data"
	"github.com/pagefarm/pagefarm/handlers"
	"github.com/pagefarm/pagefarm/middlewares"
	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/logger"
	"github.com/pagefarm/pagefarm/pkg/mailer"
	"github.com/pagefarm/pagefarm/pkg/mailer/resend"
	"github.com/pagefarm/pagefarm/pkg/pagecache"
	"github.com/pagefarm/pagefarm/pkg/redis"
	"github.com/pagefarm/pagefarm/pkg/siteroute"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "pagefarm:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, flush, err := logger.New(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	defer flush(2 * time.Second)

	contentFS, locationsFile, err := cfg.contentFS()
	if err != nil {
		return err
	}
	store, err := content.Load(contentFS)
	if err != nil {
		return err
	}
	registry, err := locations.Load(contentFS, locationsFile)
	if err != nil {
		return err
	}

	routing := cfg.Routing
	routing.ServiceSlugs = store.ServiceSlugs()
	engine := siteroute.New(routing, registry)

	var (
		healthOpts = []pagefarm.HealthOption{
			pagefarm.WithReadinessInfo(func() map[string]string {
				return map[string]string{
					"locations": strconv.Itoa(registry.Len()),
					"services":  strconv.Itoa(len(store.Services())),
				}
			}),
		}
		runOpts = []pagefarm.RunOption{
			pagefarm.Logger(log),
			pagefarm.ShutdownTimeout(cfg.ShutdownTimeout),
		}
		pages pagecache.Store
	)

	if !cfg.PageCache.Disabled {
		if cfg.Redis.Enabled() {
			client, err := redis.Open(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			pages = pagecache.NewRedis(client, pagecache.WithRedisDefaultTTL(cfg.PageCache.TTL))
			healthOpts = append(healthOpts, pagefarm.WithReadinessCheck("redis", redis.Healthcheck(client)))
			runOpts = append(runOpts, pagefarm.ShutdownHook(redis.Shutdown(client)))
			if !cfg.PageCache.KeepOnStart {
				// Pages cached by the previous deploy may render stale content.
				runOpts = append(runOpts, pagefarm.StartupHook(pages.Purge))
			}
			log.Info("page cache on redis")
		} else {
			mem := pagecache.NewMemory(
				pagecache.WithDefaultTTL(cfg.PageCache.TTL),
				pagecache.WithMaxEntries(cfg.PageCache.MaxEntries),
			)
			runOpts = append(runOpts, pagefarm.ShutdownHook(func(context.Context) error { return mem.Close() }))
			pages = mem
			log.Info("page cache in memory", slog.Int("max_entries", cfg.PageCache.MaxEntries))
		}
	}

	leads, err := newLeadMailer(cfg, log)
	if err != nil {
		return err
	}

	deps := handlers.Deps{
		Content:       store,
		Locations:     registry,
		Engine:        engine,
		Leads:         leads,
		LeadRecipient: cfg.LeadRecipient,
		PageCache:     pages,
		CacheTTL:      cfg.PageCache.TTL,
		NearbyLimit:   cfg.NearbyLimit,
	}
	errs := handlers.NewErrors(deps)

	app := pagefarm.New(
		pagefarm.WithCustomLogger(log),
		pagefarm.WithLogger("site", middlewares.RequestIDExtractor(), middlewares.RouteExtractor()),
		pagefarm.WithBaseDomain(routing.BaseDomain),
		pagefarm.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.SiteRouting(engine),
			middlewares.Timeout(cfg.RequestTimeout, middlewares.WithPathTimeout("/sitemap.xml", cfg.SitemapTimeout)),
		),
		pagefarm.WithHandlers(
			handlers.NewPages(deps),
			handlers.NewSitemap(deps),
			handlers.NewAPI(deps),
		),
		pagefarm.WithStaticFiles("/static/", data.Static(), "."),
		pagefarm.WithErrorHandler(errs.Handle),
		pagefarm.WithNotFoundHandler(errs.NotFound),
		pagefarm.WithMethodNotAllowedHandler(errs.MethodNotAllowed),
		pagefarm.WithHealthChecks(healthOpts...),
	)

	log.Info("site loaded",
		slog.String("base_domain", routing.BaseDomain),
		slog.Int("locations", registry.Len()),
		slog.Int("states", len(registry.States())),
		slog.Int("services", len(store.Services())),
	)

	return app.Run(cfg.Address, runOpts...)
}

// newLeadMailer sends lead notifications through Resend when an API key is
// set and logs them otherwise.
func newLeadMailer(cfg config, log *slog.Logger) (*mailer.Mailer, error) {
	renderer, err := mailer.NewRenderer(data.Emails())
	if err != nil {
		return nil, err
	}

	var sender mailer.Sender = mailer.NewLogSender(log.With("component", "mailer"))
	if cfg.Resend.Enabled() {
		rs, err := resend.New(cfg.Resend)
		if err != nil {
			return nil, err
		}
		sender = rs
	}
	if cfg.LeadRecipient == "" {
		log.Warn("LEAD_RECIPIENT is empty, contact forms will answer 503")
	}
	return mailer.New(sender, renderer, cfg.Mailer), nil
}
