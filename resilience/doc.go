// Package resilience retries failing operations with exponential backoff.
//
// A Policy is plain configuration and decodes from a scenario file:
//
//	retry:
//	  attempts: 3
//	  backoff: 200ms
//
//	err := resilience.Do(ctx, policy, func(attempt int) error {
//	    return runOnce(ctx)
//	}, resilience.OnRetry(logRetry))
//
// The zero Policy makes exactly one attempt.
package resilience
