package apierr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-gateway/requestid"
)

func TestTranslateTable(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"invalid input", New(InvalidInput, "missing isbn"), 400, "INVALID_ARGUMENT", "missing isbn"},
		{"not found", New(NotFound, "book missing"), 404, "NOT_FOUND", "book missing"},
		{"already exists", New(AlreadyExists, "duplicate isbn"), 409, "ALREADY_EXISTS", "duplicate isbn"},
		{"permission denied", New(PermissionDenied, "nope"), 403, "PERMISSION_DENIED", "nope"},
		{"unauthenticated", New(Unauthenticated, ""), 401, "UNAUTHENTICATED", "Authentication required"},
		{"unavailable overrides message", New(Unavailable, "anything"), 503, "INTERNAL_ERROR", UnavailableMessage},
		{"internal", New(Internal, ""), 500, "INTERNAL_ERROR", "An unexpected error occurred"},
		{"unclassified error", errors.New("boom"), 500, "INTERNAL_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := Translate(tt.err, "abc")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantMsg, env.Error.Message)
			assert.Equal(t, "abc", env.Error.RequestID)
			require.NotNil(t, env.Error.Details)
			assert.Empty(t, env.Error.Details)
		})
	}
}

func TestTranslateNotFoundFixture(t *testing.T) {
	status, env := Translate(New(NotFound, "book missing"), "abc")
	assert.Equal(t, 404, status)
	assert.Equal(t, Envelope{Error: Detail{
		Code:      "NOT_FOUND",
		Message:   "book missing",
		RequestID: "abc",
		Details:   map[string]any{},
	}}, env)
}

func TestTranslateMachineCodeWins(t *testing.T) {
	err := &Error{Category: NotFound, Message: "gone", MachineCode: "BOOK_NOT_FOUND"}
	status, env := Translate(err, "abc")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "BOOK_NOT_FOUND", env.Error.Code)
}

func TestTranslateUnknownRequestID(t *testing.T) {
	_, env := Translate(New(Internal, ""), "")
	assert.Equal(t, "unknown", env.Error.RequestID)
}

func TestTranslateWrappedError(t *testing.T) {
	var wrapped error = &Error{Category: AlreadyExists, Message: "duplicate"}
	status, env := Translate(wrapped, "r1")
	assert.Equal(t, 409, status)
	assert.Equal(t, "ALREADY_EXISTS", env.Error.Code)
	assert.Equal(t, "duplicate", env.Error.Message)
}

func TestWriteUsesContextRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req = req.WithContext(requestid.With(req.Context(), "ctx-id"))
	rec := httptest.NewRecorder()

	Write(rec, req, New(NotFound, "book missing"))

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, fastjson.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "ctx-id", env.Error.RequestID)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestWriteWithoutContextID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	rec := httptest.NewRecorder()

	Write(rec, req, errors.New("untyped"))

	var env Envelope
	require.NoError(t, fastjson.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "unknown", env.Error.RequestID)
	assert.Equal(t, 500, rec.Code)
}

func TestWriteCode(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req = req.WithContext(requestid.With(req.Context(), "r9"))
	rec := httptest.NewRecorder()

	WriteCode(rec, req, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded, please try again later")

	assert.Equal(t, 429, rec.Code)
	var env Envelope
	require.NoError(t, fastjson.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", env.Error.Code)
	assert.Equal(t, "r9", env.Error.RequestID)
}
