package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/session"
)

// ErrInvalidID is returned when a path parameter is not a valid UUID.
var ErrInvalidID = errors.New("invalid id")

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, generation.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, generation.ErrUnknownMode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, session.ErrNotFound):
		return "Session not found"
	case errors.Is(err, generation.ErrSuperseded):
		return "Superseded by a newer request"
	case errors.Is(err, ErrInvalidID):
		return "Invalid id"
	case errors.Is(err, generation.ErrUnknownMode):
		return generation.MessageUnknownMode
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message that
// names the offending field.
//
// Example input: "Key: 'GenerateRequest.Mode' Error:Field validation for 'Mode' failed on the 'oneof' tag"
func SanitizeValidationError(err error) string {
	errMsg := err.Error()
	if !strings.Contains(errMsg, "Field validation") {
		return "Validation error"
	}

	parts := strings.Split(errMsg, "Error:")
	if len(parts) < 2 {
		return "Validation error"
	}
	fieldParts := strings.Split(parts[1], "'")
	if len(fieldParts) < 3 {
		return "Validation error"
	}

	field := fieldParts[1]
	if len(fieldParts) >= 5 {
		return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fieldParts[3]))
	}
	return fmt.Sprintf("Invalid %s", field)
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid format"
	default:
		return "validation failed"
	}
}
