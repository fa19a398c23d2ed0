package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagefarm/pagefarm/pkg/logger"
)

type ctxKey struct{}

func ruleExtractor(ctx context.Context) (slog.Attr, bool) {
	rule, ok := ctx.Value(ctxKey{}).(string)
	return slog.String("rule", rule), ok
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json with extractor", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log, flush, err := logger.New(logger.Config{Level: "info", Format: "json"}, &buf, ruleExtractor, nil)
		require.NoError(t, err)
		defer flush(0)

		ctx := context.WithValue(context.Background(), ctxKey{}, "subdomain-home")
		log.DebugContext(ctx, "hidden")
		log.InfoContext(ctx, "routed", slog.String("host", "austin.example.com"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "routed", rec["msg"])
		assert.Equal(t, "subdomain-home", rec["rule"])
		assert.Equal(t, "austin.example.com", rec["host"])
	})

	t.Run("text at debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log, _, err := logger.New(logger.Config{Level: "DEBUG", Format: "text"}, &buf)
		require.NoError(t, err)

		log.With("component", "engine").WithGroup("req").Debug("decide", "path", "/")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "component=engine")
		assert.Contains(t, buf.String(), "req.path=/")
	})

	t.Run("invalid settings", func(t *testing.T) {
		t.Parallel()
		_, _, err := logger.New(logger.Config{Level: "loud"}, &bytes.Buffer{})
		require.Error(t, err)
		_, _, err = logger.New(logger.Config{Level: "info", Format: "xml"}, &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := logger.ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}
