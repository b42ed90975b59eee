package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"library-gateway/apierr"
)

// RateLimit applies a token-bucket limiter across all requests it wraps.
// Rejections render as the standard envelope rather than a bare status, so
// clients handle them like any other gateway failure.
func RateLimit(r float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				apierr.WriteCode(w, req, http.StatusTooManyRequests,
					"RATE_LIMIT_EXCEEDED", "Rate limit exceeded, please try again later")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
