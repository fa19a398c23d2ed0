package internal

import (
	"bytes"
	"net/http"
	"sync"
)

// ResponseWriter records the status of a response, runs hooks just before
// the header is sent and can capture the body, which is how rendered pages
// reach the page cache.
type ResponseWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	hooks   []func()
	capture *bytes.Buffer
	status  int
	written bool
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// OnBeforeWrite registers fn to run once, before the header goes out.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hooks = append(w.hooks, fn)
}

// Capture copies body writes into a buffer until stop is called. stop
// returns everything written in between.
func (w *ResponseWriter) Capture() (stop func() []byte) {
	buf := new(bytes.Buffer)
	w.mu.Lock()
	w.capture = buf
	w.mu.Unlock()

	return func() []byte {
		w.mu.Lock()
		if w.capture == buf {
			w.capture = nil
		}
		w.mu.Unlock()
		return buf.Bytes()
	}
}

// WriteHeader sends the header once; later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	w.commit(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.commit(0)

	w.mu.Lock()
	capture := w.capture
	w.mu.Unlock()

	n, err := w.ResponseWriter.Write(b)
	if capture != nil && n > 0 {
		capture.Write(b[:n])
	}
	return n, err
}

// commit sends the header on first use. Zero keeps the current status.
func (w *ResponseWriter) commit(code int) {
	w.mu.Lock()
	if w.written {
		w.mu.Unlock()
		return
	}
	w.written = true
	if code != 0 {
		w.status = code
	}
	hooks, status := w.hooks, w.status
	w.hooks = nil
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	w.ResponseWriter.WriteHeader(status)
}

// Status returns the status sent, or 200 before anything was written.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush lets long sitemap responses stream.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
