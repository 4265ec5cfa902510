package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKey rejects requests whose header does not carry the expected key.
// An empty key rejects every request.
func APIKey(header, key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(header)
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
