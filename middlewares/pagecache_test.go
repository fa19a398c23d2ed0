package middlewares_test

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagefarm/pagefarm/internal"
	"github.com/pagefarm/pagefarm/middlewares"
	"github.com/pagefarm/pagefarm/pkg/pagecache"
)

func TestPageCache(t *testing.T) {
	t.Parallel()

	store := pagecache.NewMemory(pagecache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = store.Close() })

	var renders atomic.Int32
	cache := middlewares.PageCache(store,
		middlewares.WithPageCacheTTL(time.Minute),
		middlewares.WithPageCacheSkip(middlewares.SkipQuery("sent")),
	)

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/page", func(c internal.Context) error {
			n := renders.Add(1)
			return c.Blob(http.StatusOK, "text/html; charset=utf-8", []byte("render "+string(rune('0'+n))))
		}, cache)
		r.GET("/missing", func(c internal.Context) error {
			renders.Add(1)
			return c.String(http.StatusNotFound, "gone")
		}, cache)
		r.POST("/page", func(c internal.Context) error {
			return c.NoContent(http.StatusNoContent)
		}, cache)
	})))

	rec := serve(app, http.MethodGet, "http://austin-tx.example.com/page")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "render 1", rec.Body.String())

	rec = serve(app, http.MethodGet, "http://austin-tx.example.com/page")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, "render 1", rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	t.Run("host is part of the key", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "http://boise-id.example.com/page")
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
		assert.Equal(t, "render 2", rec.Body.String())
	})

	t.Run("skip bypasses cache", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "http://austin-tx.example.com/page?sent=1")
		assert.Empty(t, rec.Header().Get("X-Cache"))
		assert.Equal(t, "render 3", rec.Body.String())
	})

	t.Run("errors are not stored", func(t *testing.T) {
		before := renders.Load()
		serve(app, http.MethodGet, "http://example.com/missing")
		rec := serve(app, http.MethodGet, "http://example.com/missing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, before+2, renders.Load())
	})

	t.Run("non GET passes", func(t *testing.T) {
		rec := serve(app, http.MethodPost, "http://example.com/page")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	})
}
