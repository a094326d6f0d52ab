package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-auth-api/internal/domain"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionResolver resolves a bearer token to its session and owning account.
type SessionResolver interface {
	Current(ctx context.Context, token string) (*domain.Session, error)
}

// Auth returns middleware that resolves the opaque Bearer token against the
// session store and injects the session (with account loaded) into context.
func Auth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			sess, err := resolver.Current(r.Context(), token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the authenticated session from the request context.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*domain.Session)
	return s, ok
}
