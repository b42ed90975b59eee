// Package apierr defines the gateway's failure taxonomy and its translation
// into HTTP responses.
//
// Every failure in request handling — backend RPC faults, local validation,
// panics — ends up as exactly one Error value and is rendered as the uniform
// envelope {"error":{"code","message","requestId","details"}}. The category
// set is closed; translation is a fixed table. Codes are a public contract:
// clients program against them, do not rename existing ones.
package apierr

// Category classifies a failure. The set is closed.
type Category string

const (
	InvalidInput     Category = "invalid-input"
	NotFound         Category = "not-found"
	AlreadyExists    Category = "already-exists"
	PermissionDenied Category = "permission-denied"
	Unauthenticated  Category = "unauthenticated"
	Unavailable      Category = "unavailable"
	Internal         Category = "internal"
)

// Error is a classified gateway failure. MachineCode, when non-empty, is a
// vendor error code the backend supplied via trailer metadata; it replaces
// the category's default code in the envelope.
type Error struct {
	Category    Category
	Message     string
	MachineCode string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return string(e.Category) + ": " + e.Message
	}
	return string(e.Category)
}

// New returns an Error with the given category and detail message.
func New(cat Category, msg string) *Error {
	return &Error{Category: cat, Message: msg}
}

// Invalid returns an invalid-input Error. It is the only failure the dispatch
// layer originates itself (presence checks on create operations).
func Invalid(msg string) *Error {
	return &Error{Category: InvalidInput, Message: msg}
}
