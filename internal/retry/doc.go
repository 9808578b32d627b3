// Package retry implements the resilient HTTP request executor used for every
// call to the generative language API.
//
// An Executor performs one logical request as a bounded sequence of attempts.
// Each attempt runs under its own timeout; failures are classified as
// retryable (transport errors, 408, 429, 5xx) or terminal (other non-2xx
// statuses, a cancelled caller context). Retryable failures are followed by a
// cancellable backoff wait that grows by Policy.BackoffMultiplier after each
// retry. The executor never inspects a successful response body.
package retry
