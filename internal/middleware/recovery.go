package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/auth"
	"github.com/ikrystian/kluska/internal/telemetry/metrics"
)

// PanicRecovery turns a handler panic into a 500 internal_error problem response.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				log.WithFields(log.Fields{
					"route":   routeTemplate(req),
					"athlete": auth.AthleteID(req.Context()),
				}).Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				apperr.WriteHTTP(respWriter, fmt.Errorf("panic: %v", r))
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
