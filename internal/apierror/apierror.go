// Package apierror defines the error taxonomy shared by the whole service and
// the standardized JSON envelopes returned to clients. Internal details (stack
// traces, transport errors, spreadsheet row contents) never leak through it.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for propagation and HTTP mapping.
type Kind int

const (
	KindInternal Kind = iota
	// KindFetch: transport or parse failure against the remote sheet services.
	// Recoverable — the client may keep rendering a partial catalog.
	KindFetch
	// KindUnauthenticated: missing, invalid or expired session token.
	KindUnauthenticated
	// KindForbidden: valid session, insufficient role.
	KindForbidden
	// KindValidation: malformed input (e.g. candidate identity without brand).
	KindValidation
	// KindConflict: informational — the resolver found matches but the caller
	// chose to register a new vehicle anyway.
	KindConflict
)

// Error is the typed error every core component returns across its boundary.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func Fetch(msg string, cause error) *Error {
	return &Error{Kind: KindFetch, Message: msg, Cause: cause}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// KindOf extracts the Kind from an error chain; unknown errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the status its envelope is written with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindFetch:
		return http.StatusBadGateway
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
