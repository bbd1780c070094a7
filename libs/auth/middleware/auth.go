package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/promiseroad/backend/libs/auth/identity"
	"github.com/promiseroad/backend/libs/handlers"
)

const notAuthorizedMessage = "Not authorized to access this route"

// TokenValidator decodes a bearer token into the caller's identity
type TokenValidator interface {
	ValidateToken(token string) (identity.Identity, error)
}

// Protect validates the bearer token and stores the caller's identity in the request context.
// Requests without a valid token are rejected with 401.
func Protect(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				handlers.WriteError(w, http.StatusUnauthorized, notAuthorizedMessage)
				return
			}

			id, err := tokens.ValidateToken(token)
			if err != nil {
				handlers.WriteError(w, http.StatusUnauthorized, notAuthorizedMessage)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth decodes the bearer token when present but never rejects the request
func OptionalAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if id, err := tokens.ValidateToken(token); err == nil {
					r = r.WithContext(identity.WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity retrieves the caller's identity from context
func GetIdentity(ctx context.Context) (identity.Identity, bool) {
	return identity.FromContext(ctx)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
