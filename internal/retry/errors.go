package retry

import (
	"errors"
	"fmt"
)

// Error kinds, matched with errors.Is against the error returned by Execute.
var (
	// ErrRetriesExhausted is returned when every allowed attempt failed with a
	// retryable error.
	ErrRetriesExhausted = errors.New("request failed after all retry attempts")

	// ErrTerminalStatus is returned when the server answered with a status
	// that is not worth retrying.
	ErrTerminalStatus = errors.New("request failed with non-retryable status")

	// ErrCanceled is returned when the caller's context ended before a
	// terminal outcome was reached.
	ErrCanceled = errors.New("request canceled")

	// ErrInvalidRequest is returned when the request cannot be constructed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidPolicy is returned when a Policy violates its invariants.
	ErrInvalidPolicy = errors.New("invalid retry policy")
)

// Error is the failure outcome of Execute. It records how many attempts were
// made and the last underlying error.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Attempts is the number of attempts actually made.
	Attempts int
	// StatusCode is the last HTTP status seen, or 0 if none was received.
	StatusCode int
	// Err is the error from the last attempt.
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v (attempts: %d)", e.Kind, e.Attempts)
	}
	return fmt.Sprintf("%v (attempts: %d): %v", e.Kind, e.Attempts, e.Err)
}

// Unwrap exposes both the kind and the last attempt's error to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	StatusCode int
	// Body holds at most maxErrorBodyBytes of the response body.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status %d", e.StatusCode)
}

// TransportError reports a failure to obtain a response at all: connection
// errors, per-attempt timeouts, or a body that could not be read.
type TransportError struct {
	// Op is the HTTP method or read stage that failed.
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
