package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/dante-lexicon/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateRelayToken(token string) (string, error)
}

// RelayAuth returns middleware that requires a valid bearer token and stores
// the relay name in the context. Requests without one get 401.
func RelayAuth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="lexicon"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			relay, err := validator.ValidateRelayToken(token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="lexicon", error="invalid_token"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithRelay(r.Context(), relay)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
