package apierr

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"library-gateway/requestid"
)

// UnavailableMessage always overrides the backend detail for the unavailable
// category, regardless of what the backend said.
const UnavailableMessage = "Service unavailable, please try again later"

var fastjson = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the uniform JSON error body returned on every failure.
type Envelope struct {
	Error Detail `json:"error"`
}

// Detail carries the failure fields. Details is reserved for future
// structured diagnostics and is always present as an empty object.
type Detail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	RequestID string         `json:"requestId"`
	Details   map[string]any `json:"details"`
}

type mapping struct {
	status     int
	code       string
	defaultMsg string
}

// Category → (HTTP status, default code, default message). The unavailable
// row keeps INTERNAL_ERROR as its default code: the backend's machine code
// (when present) still wins, and the message is always the fixed override.
var table = map[Category]mapping{
	InvalidInput:     {http.StatusBadRequest, "INVALID_ARGUMENT", "Invalid request"},
	NotFound:         {http.StatusNotFound, "NOT_FOUND", "Resource not found"},
	AlreadyExists:    {http.StatusConflict, "ALREADY_EXISTS", "Resource already exists"},
	PermissionDenied: {http.StatusForbidden, "PERMISSION_DENIED", "Permission denied"},
	Unauthenticated:  {http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required"},
	Unavailable:      {http.StatusServiceUnavailable, "INTERNAL_ERROR", UnavailableMessage},
	Internal:         {http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
}

// Translate converts any failure into an HTTP status and envelope.
// Errors that are not *Error (dispatch bugs, decode faults) classify as
// internal. An empty requestID renders as the literal "unknown".
func Translate(err error, requestID string) (int, Envelope) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = &Error{Category: Internal}
	}

	m, ok := table[ae.Category]
	if !ok {
		m = table[Internal]
	}

	code := m.code
	if ae.MachineCode != "" {
		code = ae.MachineCode
	}

	msg := ae.Message
	if msg == "" {
		msg = m.defaultMsg
	}
	if ae.Category == Unavailable {
		msg = UnavailableMessage
	}

	if requestID == "" {
		requestID = "unknown"
	}

	return m.status, Envelope{Error: Detail{
		Code:      code,
		Message:   msg,
		RequestID: requestID,
		Details:   map[string]any{},
	}}
}

// Write renders err as the envelope on w, resolving the correlation
// identifier from the request context. It is the terminal handler for every
// failure path in the gateway.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	status, env := Translate(err, requestid.FromContext(r.Context()))
	writeEnvelope(w, status, env)
}

// WriteCode renders an envelope with an explicit status and code, for
// failures that sit outside the backend taxonomy (e.g. rate limiting).
func WriteCode(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	id := requestid.FromContext(r.Context())
	if id == "" {
		id = "unknown"
	}
	writeEnvelope(w, status, Envelope{Error: Detail{
		Code:      code,
		Message:   message,
		RequestID: id,
		Details:   map[string]any{},
	}})
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding a plain struct cannot fail; the only write error left is a
	// gone client, which has no useful handler at this point.
	_ = fastjson.NewEncoder(w).Encode(env)
}
