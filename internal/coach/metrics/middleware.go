package metrics

import (
	"net/http"
	"time"

	"github.com/harbourfit/coachd/pkg/httpx"
)

// HTTPMiddleware instruments every request with a counter and a latency
// observation. The route label uses the matched ServeMux pattern so path
// parameters don't explode cardinality.
func HTTPMiddleware(c *Collector, mux *http.ServeMux) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, route := mux.Handler(r)
			if route == "" {
				route = "unmatched"
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			c.RecordRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
