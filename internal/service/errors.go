package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingCredential is returned when the caller sent no API key.
	ErrMissingCredential = errors.New("missing credential")
	// ErrMalformedRequest is returned when the request body has no usable messages.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrUpstreamRejected is returned when the upstream answered with a non-2xx status.
	ErrUpstreamRejected = errors.New("upstream rejected request")
	// ErrInternalFault is returned for any other failure while relaying.
	ErrInternalFault = errors.New("internal fault")
)

// Client-facing messages for the fixed error kinds.
const (
	MissingCredentialMessage = "API key required. Users must provide their own API key via x-api-key header. Server does not provide keys."
	MalformedRequestMessage  = "Invalid request: messages array required"
)

// ErrorKind classifies a relay failure.
type ErrorKind int

const (
	KindMissingCredential ErrorKind = iota + 1
	KindMalformedRequest
	KindUpstreamRejected
	KindInternalFault
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindMalformedRequest:
		return "malformed_request"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindInternalFault:
		return "internal_fault"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMissingCredential:
		return ErrMissingCredential
	case KindMalformedRequest:
		return ErrMalformedRequest
	case KindUpstreamRejected:
		return ErrUpstreamRejected
	default:
		return ErrInternalFault
	}
}

// RelayError is a failure that is reported to the caller.
// Message is the exact text placed in the response's error field.
type RelayError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *RelayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

// Is matches the sentinel error for the error's kind.
func (e *RelayError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *RelayError) Unwrap() error {
	return e.Cause
}

// MissingCredential builds the error for a request without an API key.
func MissingCredential() *RelayError {
	return &RelayError{
		Kind:    KindMissingCredential,
		Status:  http.StatusUnauthorized,
		Message: MissingCredentialMessage,
	}
}

// MalformedRequest builds the error for a request without a messages array.
func MalformedRequest(cause error) *RelayError {
	return &RelayError{
		Kind:    KindMalformedRequest,
		Status:  http.StatusBadRequest,
		Message: MalformedRequestMessage,
		Cause:   cause,
	}
}

// UpstreamRejected builds the error for a non-2xx upstream reply.
// The upstream status is kept as is.
func UpstreamRejected(status int, message string) *RelayError {
	return &RelayError{
		Kind:    KindUpstreamRejected,
		Status:  status,
		Message: message,
	}
}

// InternalFault builds the catch-all error. The cause is described to the caller.
func InternalFault(cause error) *RelayError {
	return &RelayError{
		Kind:    KindInternalFault,
		Status:  http.StatusInternalServerError,
		Message: "Server error: " + cause.Error(),
		Cause:   cause,
	}
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
