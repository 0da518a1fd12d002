package eventually

import (
	"github.com/amp-labs/amp-eventually/future"
	"github.com/amp-labs/amp-eventually/try"
)

// DoAsync executes an operation that produces a deferred result, retrying
// with the same classification and deadline semantics as Do, but without
// ever blocking the caller: the outer future is returned immediately and
// settled by a chain of continuations.
//
// Each attempt invokes f, attaches a continuation to the future it
// returns, and on a retryable failure schedules the next attempt onto the
// worker pool after the backoff delay. Attempts are strictly sequential;
// the outer future settles exactly once with the success value, the
// verbatim Pending/Fatal failure, or a *TimeoutError once the deadline is
// exceeded.
func DoAsync[T any](policy Policy, f func() *future.Future[T], opts ...Option) *future.Future[T] {
	if err := policy.Validate(); err != nil {
		return future.NewError[T](err)
	}

	intOpts := newOptions(policy, opts)

	outer, promise := future.New[T]()
	start := intOpts.clock.Now()

	var attemptNext func(attempt int)

	attemptNext = func(attempt int) {
		attemptsTotal.WithLabelValues(modeAsync).Inc()

		// f itself may panic before producing a future; that is the same
		// once-per-attempt boundary the synchronous path has.
		invoked := try.Catch(func() (*future.Future[T], error) {
			return f(), nil
		})

		attemptFut := invoked.Value
		if invoked.IsFailure() {
			attemptFut = future.NewError[T](invoked.Error)
		} else if attemptFut == nil {
			attemptFut = future.NewError[T](future.ErrNilFuture)
		}

		attemptFut.OnResult(func(result try.Try[T]) {
			switch classify(result.Error) {
			case outcomeSuccess:
				successesTotal.WithLabelValues(modeAsync).Inc()
				promise.Success(result.Value)

			case outcomePending, outcomeFatal:
				promise.Failure(terminal(result.Error))

			case outcomeRetryable:
				elapsed := intOpts.clock.Since(start)
				if elapsed >= policy.Timeout {
					timeoutsTotal.WithLabelValues(modeAsync).Inc()
					promise.Failure(&TimeoutError{
						Attempts: attempt,
						Elapsed:  elapsed,
						Timeout:  policy.Timeout,
						Cause:    result.Error,
						Location: intOpts.location,
					})

					return
				}

				// Schedule the next attempt after the backoff delay. Both
				// the timer callback and the pool task return immediately;
				// no goroutine blocks waiting for the chain to finish.
				intOpts.clock.AfterFunc(intOpts.backoff.Delay(elapsed), func() {
					if err := intOpts.workerPool().Go(func() {
						attemptNext(attempt + 1)
					}); err != nil {
						// A stopped pool rejects the submission; the outer
						// future is the only remaining channel for the
						// failure.
						promise.Failure(err)
					}
				})
			}
		})
	}

	attemptNext(1)

	return outer
}
