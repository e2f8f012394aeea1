package middleware

import (
	"crypto/subtle"
	"net/http"
)

// WebhookSecret gates the ingestion endpoint on a shared secret
// header. An empty configured secret disables the check, for local
// development and emulator runs.
func WebhookSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				presented := r.Header.Get("X-Webhook-Secret")
				if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
					http.Error(w, "invalid webhook secret", http.StatusUnauthorized)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
