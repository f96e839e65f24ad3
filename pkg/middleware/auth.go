package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtutil "github.com/Dias221467/Wellness_Tracker/pkg/jwt"
	"github.com/sirupsen/logrus"
)

type contextKey string

// UserContextKey holds the *jwtutil.Claims of an authenticated request.
const UserContextKey contextKey = "user"

// AuthMiddleware rejects requests without a valid "Bearer <jwt>" Authorization
// header and stores the token claims in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="wellness"`)
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			claims, err := jwtutil.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
			if err != nil {
				logrus.WithError(err).WithField("path", r.URL.Path).Warn("Rejected bearer token")
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user's claims, or nil.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, ok := ctx.Value(UserContextKey).(*jwtutil.Claims)
	if !ok {
		return nil
	}
	return claims
}

// WithUser returns a copy of ctx carrying claims. Used by tests and internal callers.
func WithUser(ctx context.Context, claims *jwtutil.Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}
