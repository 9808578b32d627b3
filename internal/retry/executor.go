package retry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/phrazzld/spark-api/internal/redact"
)

const (
	// maxBodyBytes caps how much of a successful response is read.
	maxBodyBytes = 4 << 20

	// maxErrorBodyBytes caps how much of a failed response is kept.
	maxErrorBodyBytes = 1 << 10
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SleepFunc waits for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Request describes the HTTP call to perform. It is replayed unchanged on
// every attempt.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the success outcome of Execute.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Attempts is the number of attempts it took, including the successful one.
	Attempts int
}

// Executor performs requests with bounded exponential-backoff retry.
type Executor struct {
	client   Doer
	policy   Policy
	logger   *slog.Logger
	sleep    SleepFunc
	classify Classifier
}

// Option customizes an Executor.
type Option func(*Executor)

// WithSleep replaces the backoff wait, typically with a recording fake in tests.
func WithSleep(sleep SleepFunc) Option {
	return func(e *Executor) {
		e.sleep = sleep
	}
}

// WithClassifier replaces DefaultClassifier.
func WithClassifier(classify Classifier) Option {
	return func(e *Executor) {
		e.classify = classify
	}
}

// NewExecutor creates an Executor with the given HTTP client and policy.
//
// Parameters:
//   - client: The HTTP client used for every attempt
//   - policy: Retry policy; it is validated here and never changes afterwards
//   - logger: A structured logger for attempt-level logging
//   - opts: Optional overrides for the sleep function and classifier
//
// Returns:
//   - A ready Executor, or an error if a dependency is missing or the policy is invalid
func NewExecutor(client Doer, policy Policy, logger *slog.Logger, opts ...Option) (*Executor, error) {
	if client == nil {
		return nil, errors.New("http client cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	e := &Executor{
		client:   client,
		policy:   policy,
		logger:   logger,
		sleep:    sleepContext,
		classify: DefaultClassifier,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Policy returns the executor's retry policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// Execute performs req, retrying retryable failures according to the policy.
//
// It returns the first 2xx response, or an *Error whose Kind is
// ErrRetriesExhausted, ErrTerminalStatus, ErrCanceled or ErrInvalidRequest.
// Cancelling ctx stops the loop between attempts and during backoff waits.
func (e *Executor) Execute(ctx context.Context, req Request) (*Response, error) {
	maxAttempts := e.policy.MaxRetries + 1
	delay := e.policy.InitialDelay

	var lastErr error
	lastStatus := 0

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, e.canceled(ctx, attempt-1, lastStatus, err)
		}

		e.logger.DebugContext(ctx, "sending request",
			"attempt", attempt,
			"max_attempts", maxAttempts)

		start := time.Now()
		resp, err := e.attempt(ctx, req)
		if err == nil {
			resp.Attempts = attempt
			e.logger.InfoContext(ctx, "request succeeded",
				"attempt", attempt,
				"status_code", resp.StatusCode,
				"duration_ms", time.Since(start).Milliseconds())
			return resp, nil
		}

		lastErr = err
		lastStatus = statusCodeOf(err)

		// The caller gave up; this is not the remote's fault.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, e.canceled(ctx, attempt, lastStatus, ctxErr)
		}

		if errors.Is(err, ErrInvalidRequest) {
			return nil, &Error{Kind: ErrInvalidRequest, Attempts: attempt, Err: err}
		}

		if !e.classify(err) {
			e.logger.WarnContext(ctx, "request failed with non-retryable error",
				"attempt", attempt,
				"status_code", lastStatus,
				"error", redact.Error(err))
			return nil, &Error{Kind: ErrTerminalStatus, Attempts: attempt, StatusCode: lastStatus, Err: err}
		}

		if attempt == maxAttempts {
			break
		}

		e.logger.WarnContext(ctx, "request failed, retrying after delay",
			"attempt", attempt,
			"status_code", lastStatus,
			"delay_ms", delay.Milliseconds(),
			"error", redact.Error(err))

		if err := e.sleep(ctx, delay); err != nil {
			return nil, e.canceled(ctx, attempt, lastStatus, err)
		}
		delay = e.policy.next(delay)
	}

	e.logger.ErrorContext(ctx, "maximum retry attempts reached",
		"attempts", maxAttempts,
		"status_code", lastStatus,
		"error", redact.Error(lastErr))

	return nil, &Error{Kind: ErrRetriesExhausted, Attempts: maxAttempts, StatusCode: lastStatus, Err: lastErr}
}

// attempt performs one HTTP round trip under the per-attempt timeout.
func (e *Executor) attempt(ctx context.Context, req Request) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.policy.AttemptTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, stripURL(err))
	}
	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: req.Method, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: "read body", Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (e *Executor) canceled(ctx context.Context, attempts, status int, err error) error {
	e.logger.InfoContext(ctx, "request canceled",
		"attempts", attempts,
		"ctx_err", err)
	return &Error{Kind: ErrCanceled, Attempts: attempts, StatusCode: status, Err: err}
}

// stripURL drops the request URL from *url.Error values so that the API key
// carried in the query string never travels further up the stack.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func statusCodeOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
