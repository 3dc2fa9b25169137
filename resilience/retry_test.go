package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTemporary = errors.New("temporary error")

func TestDo(t *testing.T) {
	fast := Policy{Attempts: 3, Backoff: time.Millisecond}
	tests := []struct {
		name      string
		policy    Policy
		failUntil int
		retryIf   func(error) bool
		wantCalls int
		wantErr   bool
	}{
		{"succeeds first", fast, 0, nil, 1, false},
		{"succeeds after retry", fast, 2, nil, 3, false},
		{"exhausted", fast, 10, nil, 3, true},
		{"zero policy tries once", Policy{}, 10, nil, 1, true},
		{"not retryable", fast, 10, func(error) bool { return false }, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			var opts []Option
			if tt.retryIf != nil {
				opts = append(opts, RetryIf(tt.retryIf))
			}
			err := Do(context.Background(), tt.policy, func(attempt int) error {
				calls++
				if attempt != calls {
					t.Errorf("attempt = %d, want %d", attempt, calls)
				}
				if calls <= tt.failUntil {
					return errTemporary
				}
				return nil
			}, opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Do() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errTemporary) {
				t.Errorf("Do() error = %v, want the last attempt error", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestDo_OnRetry(t *testing.T) {
	var attempts []int
	var delays []time.Duration
	p := Policy{Attempts: 3, Backoff: time.Millisecond, Factor: 2}
	_ = Do(context.Background(), p, func(int) error { return errTemporary },
		OnRetry(func(attempt int, err error, delay time.Duration) {
			attempts = append(attempts, attempt)
			delays = append(delays, delay)
		}))
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Fatalf("retries = %v, want [1 2]", attempts)
	}
	if delays[0] != time.Millisecond || delays[1] != 2*time.Millisecond {
		t.Errorf("delays = %v", delays)
	}
}

func TestDo_Context(t *testing.T) {
	t.Run("canceled before first attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		err := Do(ctx, Policy{Attempts: 3}, func(int) error { calls++; return nil })
		if !errors.Is(err, context.Canceled) || calls != 0 {
			t.Errorf("err = %v, calls = %d", err, calls)
		}
	})
	t.Run("canceled during wait", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := Do(ctx, Policy{Attempts: 3, Backoff: time.Hour}, func(int) error { return errTemporary })
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want deadline exceeded", err)
		}
	})
	t.Run("context errors are not transient", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), Policy{Attempts: 3, Backoff: time.Millisecond}, func(int) error {
			calls++
			return context.Canceled
		})
		if !errors.Is(err, context.Canceled) || calls != 1 {
			t.Errorf("err = %v, calls = %d", err, calls)
		}
	})
}

func TestPolicy_Delay(t *testing.T) {
	p := Policy{Backoff: 100 * time.Millisecond, MaxBackoff: time.Second, Factor: 2}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second},
		{500, time.Second},
	}
	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
	if got := (Policy{}).Delay(1); got != DefaultBackoff {
		t.Errorf("zero policy Delay(1) = %v, want %v", got, DefaultBackoff)
	}
	if got := (Policy{}).MaxAttempts(); got != 1 {
		t.Errorf("zero policy MaxAttempts() = %d, want 1", got)
	}
}
