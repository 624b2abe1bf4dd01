package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler answers OK unconditionally: the process is up and
// serving requests. Wire it to the liveness probe.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, &Response{Status: StatusHealthy})
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ReadinessHandler evaluates checks on every request and answers 503
// while any dependency is down. Wire it to the readiness probe.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)

		code := http.StatusOK
		body := "OK"
		if resp.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
			body = "Service Unavailable"
		}

		if wantsJSON(r) {
			writeJSON(w, code, resp)
			return
		}
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

// wantsJSON honors an explicit format=json query (handy with curl) or
// an Accept header asking for JSON.
func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
