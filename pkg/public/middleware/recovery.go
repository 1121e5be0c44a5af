package middleware

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// Recovery converts handler panics into 500 responses and reports them to
// Sentry when it is configured.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, recovered)
				log.Error(err)
				sentry.CaptureException(err)
				respondError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
