package middleware

import (
	"net/http"
	"strconv"
	"time"
)

type httpRecorder interface {
	ObserveRequest(route, method, code string, elapsed time.Duration)
}

// Metrics returns middleware that records request count and latency under a
// fixed route label, so raw paths never become label values.
func Metrics(rec httpRecorder, route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			rec.ObserveRequest(route, r.Method, strconv.Itoa(sw.status), time.Since(start))
		})
	}
}
