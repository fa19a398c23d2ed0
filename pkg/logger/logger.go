package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config selects the level, encoding and optional Sentry forwarding.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// SentryConfig enables Sentry when DSN is set.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// Warnings are stored as Sentry logs unless MinLevel is error; errors always become issues.
	MinLevel string `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logger: invalid level %q", s)
	}
	return l, nil
}

// New builds a logger writing to w in the configured format, wrapped with
// the context extractors. The returned flush waits for queued Sentry events
// and is a no-op when Sentry is off.
func New(cfg Config, w io.Writer, extractors ...ContextExtractor) (*slog.Logger, func(time.Duration), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var out slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		out = slog.NewJSONHandler(w, opts)
	case "text":
		out = slog.NewTextHandler(w, opts)
	default:
		return nil, nil, fmt.Errorf("logger: invalid format %q", cfg.Format)
	}

	flush := func(time.Duration) {}
	if cfg.Sentry.DSN == "" {
		return slog.New(NewLogHandlerDecorator(out, extractors...)), flush, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		EnableLogs:  true,
	}); err != nil {
		// Fall back to local output only.
		slog.New(out).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(out, extractors...)), flush, nil
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if floor, err := ParseLevel(cfg.Sentry.MinLevel); err == nil && floor >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	flush = func(d time.Duration) { sentry.Flush(d) }
	return slog.New(NewLogHandlerDecorator(newMultiHandler(out, sentryHandler), extractors...)), flush, nil
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
