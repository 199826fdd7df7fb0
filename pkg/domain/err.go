package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind names a class of client facing error. The kind is rendered in the
// response body so that clients can branch on it.
type Kind string

// The closed set of client facing error kinds.
const (
	KindBadRequest       Kind = "BadRequestError"
	KindValidation       Kind = "ValidationError"
	KindUnauthorized     Kind = "UnauthorizedError"
	KindForbidden        Kind = "ForbiddenError"
	KindNotFound         Kind = "NotFoundError"
	KindMethodNotAllowed Kind = "MethodNotAllowedError"
	KindBadGateway       Kind = "BadGatewayError"
)

// Error is a business level failure that is rendered as a normal HTTP
// response. Any error that is not, or does not wrap, an *Error is treated
// as an unexpected fault and escalated to the platform.
type Error struct {
	// Kind identifies the class of failure.
	Kind Kind
	// Status is the HTTP status code sent to the client.
	Status int
	// Message is a human readable description of the failure.
	Message string
	// Details carries structured information such as a list of
	// validation violations. It is omitted from the body when nil.
	Details interface{}
	// Err is an optional underlying cause. It is never sent to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Body is the client visible rendering of the error.
func (e *Error) Body() ErrorBody {
	return ErrorBody{
		Error:   string(e.Kind),
		Message: e.Message,
		Details: e.Details,
	}
}

// ErrorBody is the JSON shape of a client facing error.
type ErrorBody struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Violation describes a single schema failure.
type Violation struct {
	Field string      `json:"field"`
	Rule  string      `json:"rule"`
	Param string      `json:"param,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// AsPassthrough unwraps err looking for a client facing *Error.
func AsPassthrough(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// NewBadRequest is used for malformed request bodies.
func NewBadRequest(message string, cause error) *Error {
	return &Error{Kind: KindBadRequest, Status: http.StatusBadRequest, Message: message, Err: cause}
}

// NewValidation is used when request data violates a schema.
func NewValidation(message string, violations []Violation) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Details: violations}
}

// NewUnauthorized is used when a credential is missing or invalid.
func NewUnauthorized(message string, cause error) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: message, Err: cause}
}

// NewForbidden is used when a credential lacks the required privilege.
func NewForbidden(message string, cause error) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: message, Err: cause}
}

// NewNotFound represents a failed lookup for a resource.
func NewNotFound(id string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: fmt.Sprintf("resource (%s) not found", id)}
}

// NewMethodNotAllowed is used when a verb is not supported for the
// addressed resource.
func NewMethodNotAllowed(method string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: fmt.Sprintf("method (%s) not allowed", method)}
}

// NewBadGateway is used when a proxied or downstream request failed.
func NewBadGateway(message string, cause error) *Error {
	return &Error{Kind: KindBadGateway, Status: http.StatusBadGateway, Message: message, Err: cause}
}
