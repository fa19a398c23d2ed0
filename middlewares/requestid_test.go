package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagefarm/pagefarm/internal"
	"github.com/pagefarm/pagefarm/middlewares"
)

func runRequestID(t *testing.T, headers map[string]string, opts ...middlewares.RequestIDOption) (*httptest.ResponseRecorder, *testContext, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, req)

	var seen string
	err := middlewares.RequestID(opts...)(func(c internal.Context) error {
		seen = middlewares.GetRequestID(c)
		return nil
	})(ctx)
	require.NoError(t, err)
	return rec, ctx, seen
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a v7 uuid", func(t *testing.T) {
		t.Parallel()

		rec, _, seen := runRequestID(t, nil)
		id, err := uuid.Parse(rec.Header().Get(middlewares.RequestIDHeader))
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.Equal(t, id.String(), seen)
	})

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "reuses X-Request-ID", headers: map[string]string{"X-Request-ID": "edge-123"}, want: "edge-123"},
		{name: "reuses Cloudflare ray", headers: map[string]string{"Cf-Ray": "8a1b2c3d4e5f-DFW"}, want: "8a1b2c3d4e5f-DFW"},
		{
			name:    "header order decides",
			headers: map[string]string{"X-Correlation-ID": "from-lb", "Cf-Ray": "from-cdn"},
			want:    "from-lb",
		},
		{name: "rejects spaces", headers: map[string]string{"X-Request-ID": "a b"}},
		{name: "rejects oversized ids", headers: map[string]string{"X-Request-ID": strings.Repeat("x", 200)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, _, seen := runRequestID(t, tt.headers)
			got := rec.Header().Get(middlewares.RequestIDHeader)
			if tt.want == "" {
				_, err := uuid.Parse(got)
				require.NoError(t, err, "a fresh id replaces %q", got)
			} else {
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, got, seen)
		})
	}

	t.Run("custom headers and generator", func(t *testing.T) {
		t.Parallel()

		opts := []middlewares.RequestIDOption{
			middlewares.WithRequestIDHeaders("X-Trace"),
			middlewares.WithRequestIDGenerator(func() string { return "generated" }),
		}
		rec, _, _ := runRequestID(t, map[string]string{"X-Request-ID": "ignored"}, opts...)
		assert.Equal(t, "generated", rec.Header().Get(middlewares.RequestIDHeader))

		rec, _, _ = runRequestID(t, map[string]string{"X-Trace": "from-edge"}, opts...)
		assert.Equal(t, "from-edge", rec.Header().Get(middlewares.RequestIDHeader))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	_, ctx, seen := runRequestID(t, nil)
	attr, ok := middlewares.RequestIDExtractor()(ctx.Context())
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, seen, attr.Value.String())

	_, ok = middlewares.RequestIDExtractor()(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
