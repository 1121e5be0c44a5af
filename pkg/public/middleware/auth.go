package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hooklinehq/hookline/pkg/jwt"
)

// TokenAuth guards operator endpoints with personal API tokens. The inbound
// webhook trigger endpoint is public and never wrapped with this.
func TokenAuth(signer *jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				respondError(w, http.StatusUnauthorized, "Missing API token")
				return
			}

			if _, err := signer.Validate(token); err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid API token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// respondError writes the same JSON error shape the handlers use, so
// middleware rejections parse like every other error.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
