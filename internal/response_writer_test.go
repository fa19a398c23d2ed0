package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		write  func(rw *ResponseWriter)
		status int
	}{
		{name: "implicit ok", write: func(rw *ResponseWriter) { _, _ = rw.Write([]byte("<html>")) }, status: http.StatusOK},
		{name: "explicit", write: func(rw *ResponseWriter) { rw.WriteHeader(http.StatusNotFound) }, status: http.StatusNotFound},
		{
			name: "first header wins",
			write: func(rw *ResponseWriter) {
				rw.WriteHeader(http.StatusMovedPermanently)
				rw.WriteHeader(http.StatusOK)
			},
			status: http.StatusMovedPermanently,
		},
		{
			name: "write after header keeps status",
			write: func(rw *ResponseWriter) {
				rw.WriteHeader(http.StatusGone)
				_, _ = rw.Write([]byte("gone"))
			},
			status: http.StatusGone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			rw := NewResponseWriter(rec)
			assert.False(t, rw.Written())

			tt.write(rw)
			assert.True(t, rw.Written())
			assert.Equal(t, tt.status, rw.Status())
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestResponseWriter_OnBeforeWrite(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	var order []int
	rw.OnBeforeWrite(func() {
		order = append(order, 1)
		rw.Header().Set("X-Cache", "MISS")
	})
	rw.OnBeforeWrite(func() { order = append(order, 2) })

	_, _ = rw.Write([]byte("a"))
	_, _ = rw.Write([]byte("b"))
	rw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"), "hooks run before the header is sent")
	assert.Equal(t, "ab", rec.Body.String())
}

func TestResponseWriter_Capture(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	_, _ = rw.Write([]byte("<!doctype html>"))
	stop := rw.Capture()
	_, _ = rw.Write([]byte("<h1>Roof Repair</h1>"))
	_, _ = rw.Write([]byte("<p>Austin</p>"))
	body := stop()
	_, _ = rw.Write([]byte("<footer>"))

	assert.Equal(t, "<h1>Roof Repair</h1><p>Austin</p>", string(body))
	assert.Equal(t, "<!doctype html><h1>Roof Repair</h1><p>Austin</p><footer>", rec.Body.String())
}

func TestResponseWriter_Passthrough(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	rw.Header().Set("Content-Type", "application/xml")
	rw.Flush()

	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.True(t, rec.Flushed)
	assert.Same(t, rec, rw.Unwrap())
}
