package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/promiseroad/backend/libs/handlers"
)

// APIKeyMiddleware validates API key from X-API-Key header
// It compares the header value with the configured API key.
// An empty configured key disables the guarded routes entirely.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get("X-API-Key")

			if apiKey == "" || providedKey == "" ||
				subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				handlers.WriteError(w, http.StatusUnauthorized, "invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
