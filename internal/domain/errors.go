package domain

import "fmt"

// ErrorKind enumerates the failure categories the service produces. The kind
// is decided where the error originates; downstream stages dispatch on it and
// never inspect field presence.
type ErrorKind int

const (
	// ErrValidation marks malformed or missing input. Always a 400.
	ErrValidation ErrorKind = iota
	// ErrNotFound marks an absent resource. Always a 404.
	ErrNotFound
	// ErrConflict marks a uniqueness violation detected by a pre-check. 409.
	ErrConflict
	// ErrStorage marks a driver, network, or constraint failure. The Code
	// field carries the SQLSTATE when the driver reported one.
	ErrStorage
	// ErrMalformedRequest marks a request body that could not be parsed.
	ErrMalformedRequest
	// ErrInternal marks everything else, including recovered panics.
	ErrInternal
)

// Error is the single error variant propagated between layers.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError constructs an input validation failure.
func NewValidationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// NewNotFoundError constructs an absent-resource failure.
func NewNotFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// NewConflictError constructs a uniqueness conflict.
func NewConflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// NewStorageError wraps a storage layer failure, preserving the driver code.
func NewStorageError(code, message string, err error) error {
	return &Error{Kind: ErrStorage, Code: code, Message: message, Err: err}
}

// NewMalformedRequestError constructs a body parse failure.
func NewMalformedRequestError(err error) error {
	return &Error{Kind: ErrMalformedRequest, Message: "Invalid JSON format", Err: err}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) error {
	return &Error{Kind: ErrInternal, Message: "Internal server error", Err: err}
}
