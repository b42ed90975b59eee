// Package middleware provides the gateway's HTTP middleware: request logging,
// token-bucket rate limiting, and panic recovery. Middlewares compose in the
// usual onion order; the server wires them once at startup.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"library-gateway/requestid"
)

// Logging emits one structured line per request with the correlation
// identifier, so gateway and backend logs join on request_id.
func Logging(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", requestid.FromContext(r.Context())).
				Msg("request")
		})
	}
}
