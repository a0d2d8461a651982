package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout returns middleware that gives the request context a deadline, so
// store work stops once d has elapsed even if the client is still connected.
// It returns nil for a non-positive d.
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return nil
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
