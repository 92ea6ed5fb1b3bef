package middleware

import (
	"net/http"
	"strings"
	"time"

	"wachat/pkg/metrics"
)

// HTTPMetrics records request counts and latencies. A path is labelled with
// the route it equals, or with the longest route ending in "/" that prefixes
// it (the root route only matches itself). Anything else is "other".
func HTTPMetrics(m *metrics.Metrics, routes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			m.ObserveHTTP(r.Method, routeLabel(r.URL.Path, routes), wrapped.statusCode, time.Since(start))
		})
	}
}

func routeLabel(path string, routes []string) string {
	best := ""
	for _, route := range routes {
		if path == route {
			return route
		}
		if len(route) > 1 && strings.HasSuffix(route, "/") && strings.HasPrefix(path, route) && len(route) > len(best) {
			best = route
		}
	}
	if best == "" {
		return "other"
	}
	return best
}
