package middleware

import (
	"io"
	"net/http"
)

// MaxRequestBodyBytes caps JSON payloads (sessions with many sets stay well below it).
const MaxRequestBodyBytes = 1 << 20

// DrainAndCloseRequest caps the request body size and drains and closes it once
// the handler is done, so the connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
