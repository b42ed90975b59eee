// Package requestid attaches a correlation identifier to every inbound request.
//
// The identifier travels three ways: in the request context (for downstream
// handlers and the RPC client), in the X-Request-ID response header (so callers
// can correlate), and in outgoing gRPC metadata (attached by the client).
// An inbound X-Request-ID is honored unchanged; otherwise a UUID is generated.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the HTTP header used to carry the correlation identifier.
// Header lookup via net/http is case-insensitive.
const Header = "X-Request-ID"

type ctxKey struct{}

// With returns a copy of ctx carrying the correlation identifier.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation identifier attached to ctx,
// or "" if none was attached.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware ensures every request carries a correlation identifier.
// Generation never fails: uuid.NewString panics only on a broken entropy
// source, which the standard library treats as unrecoverable anyway.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := With(r.Context(), id)
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
