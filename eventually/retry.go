// Package eventually implements a bounded retry primitive for conditions
// that become true asynchronously. Given an operation that may fail
// transiently, it repeatedly invokes the operation until it succeeds, the
// policy deadline elapses, or a non-retryable failure occurs. It is the
// execution engine behind "eventually succeeds" style assertions in test
// code.
//
// Two execution strategies are available with equivalent observable
// behavior: Do/DoValue run the loop on the calling goroutine, blocking
// between attempts; DoAsync drives a chain of deferred continuations and
// never blocks the caller.
//
// Basic usage:
//
//	err := eventually.Do(eventually.Policy{Timeout: 5 * time.Second, Interval: 100 * time.Millisecond},
//	    func() error {
//	        return store.HasKey("ready")
//	    })
//
// For operations that return values:
//
//	user, err := eventually.DoValue(policy, func() (User, error) {
//	    return repo.FindUser(id)
//	})
//
// Failures are classified per attempt: errors marked with Abort and
// context cancellation errors stop the loop immediately, errors carrying
// the ErrPending marker propagate verbatim without retrying, and anything
// else (including recovered panics) is retried until the deadline. When
// the deadline is exceeded, the terminal *TimeoutError reports the attempt
// count, elapsed time, last cause, configured timeout, and call site.
package eventually

import (
	"time"
)

// Do executes f with retry until it returns nil, the policy deadline
// elapses, or a non-retryable failure occurs. It blocks the calling
// goroutine for the whole retry lifetime, including backoff waits.
func Do(policy Policy, f func() error, opts ...Option) error {
	_, err := DoValue(policy, func() (struct{}, error) {
		return struct{}{}, f()
	}, opts...)

	return err
}

// DoValue executes f with retry, returning the first successful value.
// Semantics match Do. On deadline exceeded it returns the zero value of T
// and a *TimeoutError carrying the last attempt's failure.
func DoValue[T any](policy Policy, f func() (T, error), opts ...Option) (T, error) { //nolint:ireturn
	var zero T

	if err := policy.Validate(); err != nil {
		return zero, err
	}

	intOpts := newOptions(policy, opts)

	// start is captured once and never reset; every deadline check
	// measures against it.
	start := intOpts.clock.Now()

	for attempt := 1; ; attempt++ {
		attemptsTotal.WithLabelValues(modeSync).Inc()

		result := observe(f)

		switch result.kind {
		case outcomeSuccess:
			successesTotal.WithLabelValues(modeSync).Inc()

			return result.value, nil

		case outcomePending, outcomeFatal:
			return zero, terminal(result.cause)

		case outcomeRetryable:
			// Fall through to the deadline check below.
		}

		elapsed := intOpts.clock.Since(start)
		if elapsed >= policy.Timeout {
			timeoutsTotal.WithLabelValues(modeSync).Inc()

			return zero, &TimeoutError{
				Attempts: attempt,
				Elapsed:  elapsed,
				Timeout:  policy.Timeout,
				Cause:    result.cause,
				Location: intOpts.location,
			}
		}

		wait(intOpts, elapsed)
	}
}

// wait blocks the calling goroutine for the backoff delay computed from
// the elapsed time.
func wait(o *options, elapsed time.Duration) {
	delay := o.backoff.Delay(elapsed)
	if delay <= 0 {
		return
	}

	timer := o.clock.NewTimer(delay)
	defer timer.Stop()

	<-timer.C
}
