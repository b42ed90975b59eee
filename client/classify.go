package client

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"library-gateway/apierr"
)

// metadataErrorCode is the trailer key the backend uses to attach a
// machine-readable vendor error code alongside the gRPC status.
const metadataErrorCode = "x-error-code"

// grpcCategory maps backend status codes onto the gateway taxonomy.
// Anything absent from this table — Unknown, DeadlineExceeded, Canceled,
// ResourceExhausted and the rest — classifies as internal.
var grpcCategory = map[codes.Code]apierr.Category{
	codes.InvalidArgument:  apierr.InvalidInput,
	codes.NotFound:         apierr.NotFound,
	codes.AlreadyExists:    apierr.AlreadyExists,
	codes.PermissionDenied: apierr.PermissionDenied,
	codes.Unauthenticated:  apierr.Unauthenticated,
	codes.Unavailable:      apierr.Unavailable,
}

// Classify converts a failed RPC into a *apierr.Error: category from the
// status code, detail message from the status message, machine code from the
// x-error-code trailer when the backend attached one. status.FromError folds
// non-gRPC errors into codes.Unknown, so every input classifies.
func Classify(err error, trailer metadata.MD) *apierr.Error {
	st, isStatus := status.FromError(err)

	cat, ok := grpcCategory[st.Code()]
	if !ok {
		cat = apierr.Internal
	}

	msg := st.Message()
	if !isStatus {
		// Not a backend-supplied detail; let the translator pick the
		// category default instead of leaking transport internals.
		msg = ""
	}

	fail := &apierr.Error{Category: cat, Message: msg}
	if vals := trailer.Get(metadataErrorCode); len(vals) > 0 && vals[0] != "" {
		fail.MachineCode = vals[0]
	}
	return fail
}
