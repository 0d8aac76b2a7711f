package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey struct{}

// ClaimsFromContext returns the verified identity of the request, if
// the auth middleware admitted it.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// Verifier validates a bearer token.
type Verifier interface {
	VerifyToken(token string) (*Claims, error)
}

// Middleware rejects requests without a valid bearer token. When
// disabled it passes everything through, which keeps local development
// and tests free of token plumbing.
func Middleware(verifier Verifier, disabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if disabled {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	return strings.TrimSpace(header[len(prefix):]), true
}
