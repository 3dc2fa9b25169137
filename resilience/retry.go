package resilience

import (
	"context"
	"errors"
	"math"
	"time"
)

const (
	DefaultBackoff    = 100 * time.Millisecond
	DefaultMaxBackoff = 10 * time.Second
	DefaultFactor     = 2.0
)

// Policy configures retries. Attempts counts the first try; values below 1
// mean a single attempt.
type Policy struct {
	Attempts   int           `yaml:"attempts" mapstructure:"attempts" validate:"gte=0"`
	Backoff    time.Duration `yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff" validate:"gte=0"`
	Factor     float64       `yaml:"factor" mapstructure:"factor" validate:"gte=0"`
}

func (p Policy) normalized() Policy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Backoff <= 0 {
		p.Backoff = DefaultBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = DefaultMaxBackoff
	}
	if p.Factor <= 0 {
		p.Factor = DefaultFactor
	}
	return p
}

// MaxAttempts returns the effective number of attempts.
func (p Policy) MaxAttempts() int { return p.normalized().Attempts }

// Delay returns the wait after the given failed attempt (1-based):
// Backoff * Factor^(attempt-1), capped at MaxBackoff.
func (p Policy) Delay(attempt int) time.Duration {
	p = p.normalized()
	d := float64(p.Backoff) * math.Pow(p.Factor, float64(attempt-1))
	if d > float64(p.MaxBackoff) || math.IsInf(d, 0) {
		return p.MaxBackoff
	}
	return time.Duration(d)
}

// Option customizes one Do call.
type Option func(*retry)

type retry struct {
	retryIf func(error) bool
	onRetry func(attempt int, err error, delay time.Duration)
}

// RetryIf limits retries to errors accepted by fn.
func RetryIf(fn func(error) bool) Option {
	return func(r *retry) { r.retryIf = fn }
}

// OnRetry is called after a failed attempt, before waiting.
func OnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(r *retry) { r.onRetry = fn }
}

// Transient accepts every error except context cancellation and deadline.
func Transient(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Do calls fn until it succeeds, the policy is exhausted, the error is not
// retryable or ctx is done. It returns the last error of fn, or the context
// error when ctx ends during a wait.
func Do(ctx context.Context, p Policy, fn func(attempt int) error, opts ...Option) error {
	r := retry{retryIf: Transient}
	for _, opt := range opts {
		opt(&r)
	}
	attempts := p.MaxAttempts()

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = fn(attempt); err == nil {
			return nil
		}
		if attempt == attempts || !r.retryIf(err) {
			return err
		}

		delay := p.Delay(attempt)
		if r.onRetry != nil {
			r.onRetry(attempt, err, delay)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
