package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler answers 200 while the process is serving.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks on every request and answers 503 if any
// fails. Site facts from WithInfo ride along in the JSON body.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)
	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)
		status := http.StatusOK
		if resp.Err() != nil {
			status = http.StatusServiceUnavailable
		}
		respond(w, r, status, resp)
	}
}

// respond writes resp as JSON when asked via ?format=json or Accept, and
// as the bare status text otherwise, which is what load balancers probe.
func respond(w http.ResponseWriter, r *http.Request, status int, resp *Response) {
	h := w.Header()
	h.Set("Cache-Control", "no-store")

	asJSON := r.URL.Query().Get("format") == "json" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
	if !asJSON {
		h.Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		text := http.StatusText(status)
		if status == http.StatusOK {
			text = "OK"
		}
		_, _ = w.Write([]byte(text))
		return
	}

	h.Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
