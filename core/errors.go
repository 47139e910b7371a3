package core

import (
	"errors"
	"fmt"
	"strings"
)

// APIError represents an error response from the service with full
// context.
type APIError struct {
	// StatusCode is the application error code from the service's
	// error envelope. For responses whose body could not be decoded it
	// holds the transport HTTP status instead.
	StatusCode int
	// Message is the human-readable error description.
	Message string
	// Err is the classification sentinel.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("capybaradb: %s (status=%d)", e.Message, e.StatusCode)
}

// Unwrap returns the classification sentinel for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrClientRequest  = errors.New("client request rejected")
	ErrServer         = errors.New("server error")
	ErrDecode         = errors.New("decode error")
	ErrNetwork        = errors.New("network error")
)

// ValidationError reports a media object field that violated a
// construction or deserialization invariant. Check for it with
// errors.As.
type ValidationError struct {
	// Field is the offending field, named as it appears on the wire.
	Field string
	// Message describes the violation.
	Message string
	// Allowed holds the fixed allow-list when a membership check
	// failed, empty otherwise.
	Allowed []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("invalid %s: %s. Supported values are: %s",
			e.Field, e.Message, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
