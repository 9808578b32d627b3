package retry

import (
	"errors"
	"net/http"
)

// Classifier reports whether a failed attempt should be retried.
type Classifier func(err error) bool

// IsRetryableStatus reports whether an HTTP status indicates a condition that
// may clear on its own: request timeout, rate limiting, or any 5xx.
func IsRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

// DefaultClassifier retries transport errors and retryable statuses. Every
// other 4xx, and anything it does not recognise, is terminal.
func DefaultClassifier(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableStatus(statusErr.StatusCode)
	}

	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
