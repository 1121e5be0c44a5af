package middleware

import "net/http"

const allowedHeaders = "Authorization, Content-Type, X-Requested-With, X-Webhook-Signature, X-Webhook-Event"

// CORS answers preflight requests and marks every response as
// cross-origin-accessible. Webhook senders and the dashboard both live on
// other origins.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
