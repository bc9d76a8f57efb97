package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler answers 200 while the process can serve HTTP at all.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, &Response{Status: StatusHealthy}, "OK")
	}
}

// ReadinessHandler runs checks on every request. It answers 503 naming the
// failed checks, or a JSON report with ?format=json or Accept: application/json.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)
		if resp.Status == StatusHealthy {
			respond(w, r, http.StatusOK, resp, "OK")
			return
		}
		respond(w, r, http.StatusServiceUnavailable, resp, "unavailable: "+strings.Join(resp.Failing(), ", "))
	}
}

func respond(w http.ResponseWriter, r *http.Request, status int, resp *Response, text string) {
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}
