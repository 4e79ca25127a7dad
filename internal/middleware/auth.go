package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/config"
)

// APIKeyHeader carries the client's API key
const APIKeyHeader = "api_key"

// APIKeyAuth rejects requests without a configured API key:
// 401 when the header is missing, 403 when the key is unknown.
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	keys := make([][]byte, 0, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		keys = append(keys, []byte(k))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(APIKeyHeader)
			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			if !knownKey(keys, []byte(apiKey)) {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// knownKey compares against every key in constant time
func knownKey(keys [][]byte, candidate []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, candidate)
	}
	return found == 1
}
