package retry

import (
	"fmt"
	"time"

	"github.com/phrazzld/spark-api/internal/config"
)

// Policy is the fixed retry configuration for an Executor.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration
	// BackoffMultiplier scales the delay after every retry. Must be > 1.
	BackoffMultiplier float64
	// AttemptTimeout bounds each individual attempt.
	AttemptTimeout time.Duration
}

// DefaultPolicy returns 3 retries starting at 1s and doubling each time
// (waits of 1s, 2s, 4s), with a 30s per-attempt timeout.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:        3,
		InitialDelay:      time.Second,
		BackoffMultiplier: 2,
		AttemptTimeout:    30 * time.Second,
	}
}

// PolicyFromConfig converts the retry section of the application config.
func PolicyFromConfig(cfg config.RetryConfig) Policy {
	return Policy{
		MaxRetries:        cfg.MaxRetries,
		InitialDelay:      cfg.InitialDelay(),
		BackoffMultiplier: cfg.BackoffMultiplier,
		AttemptTimeout:    cfg.AttemptTimeout(),
	}
}

// Validate checks the policy invariants.
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must be >= 0, got %d", ErrInvalidPolicy, p.MaxRetries)
	}
	if p.InitialDelay <= 0 {
		return fmt.Errorf("%w: initial delay must be > 0, got %s", ErrInvalidPolicy, p.InitialDelay)
	}
	if p.BackoffMultiplier <= 1 {
		return fmt.Errorf("%w: backoff multiplier must be > 1, got %g", ErrInvalidPolicy, p.BackoffMultiplier)
	}
	if p.AttemptTimeout <= 0 {
		return fmt.Errorf("%w: attempt timeout must be > 0, got %s", ErrInvalidPolicy, p.AttemptTimeout)
	}
	return nil
}

// Delays returns the wait inserted before each retry, in order.
func (p Policy) Delays() []time.Duration {
	delays := make([]time.Duration, 0, p.MaxRetries)
	delay := p.InitialDelay
	for i := 0; i < p.MaxRetries; i++ {
		delays = append(delays, delay)
		delay = p.next(delay)
	}
	return delays
}

// MaxElapsed is the worst-case wall-clock time of one Execute call: every
// attempt timing out plus every backoff wait.
func (p Policy) MaxElapsed() time.Duration {
	total := time.Duration(p.MaxRetries+1) * p.AttemptTimeout
	for _, d := range p.Delays() {
		total += d
	}
	return total
}

func (p Policy) next(delay time.Duration) time.Duration {
	return time.Duration(float64(delay) * p.BackoffMultiplier)
}
