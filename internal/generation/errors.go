package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrEmptyInput is returned when the trimmed input is empty
	ErrEmptyInput = errors.New("input cannot be empty")

	// ErrUnknownMode is returned for a generation mode outside the supported set
	ErrUnknownMode = errors.New("unknown generation mode")

	// ErrMalformedResponse is returned when the API response body cannot be decoded
	// or lacks the expected content parts
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrNoCandidate is returned when the API response decodes but carries no candidates
	ErrNoCandidate = errors.New("no candidate in language model response")

	// ErrSuperseded is returned by Coordinator.Run when a newer run replaced this one
	ErrSuperseded = errors.New("generation superseded by a newer request")

	// ErrInvalidConfig is returned when the workflow configuration is invalid
	ErrInvalidConfig = errors.New("invalid generation configuration")
)
