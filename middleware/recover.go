package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"library-gateway/apierr"
	"library-gateway/requestid"
)

// Recover is the last-resort handler for faults in request handling: a panic
// anywhere downstream is logged with its stack and rendered as an
// internal/500 envelope. The caller never sees a raw stack trace.
func Recover(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error().
						Any("panic", rec).
						Bytes("stack", debug.Stack()).
						Str("request_id", requestid.FromContext(r.Context())).
						Msg("panic in request handling")
					apierr.Write(w, r, apierr.New(apierr.Internal, ""))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
