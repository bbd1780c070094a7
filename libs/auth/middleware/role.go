package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/promiseroad/backend/libs/auth/identity"
	"github.com/promiseroad/backend/libs/handlers"
)

// Authorize allows the request through only when the caller's role is in roles.
// It must run after Protect; without an identity in context it responds 401.
func Authorize(roles ...identity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identity.FromContext(r.Context())
			if !ok {
				handlers.WriteError(w, http.StatusUnauthorized, notAuthorizedMessage)
				return
			}

			if !slices.Contains(roles, id.Role) {
				handlers.WriteError(w, http.StatusForbidden,
					fmt.Sprintf("User role %s is not authorized to access this route", id.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
