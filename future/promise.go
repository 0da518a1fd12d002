package future

import (
	"github.com/amp-labs/amp-eventually/try"
)

// Promise represents the write-only side of an asynchronous computation.
//
// A promise is used to complete a future with either a successful value or
// an error. Key guarantees:
//   - A promise can only be fulfilled once (enforced by sync.Once in the future)
//   - Multiple calls to Success/Failure/Complete are safe (later calls are ignored)
//   - Fulfillment is thread-safe and can happen from any goroutine
//   - Fulfilling a promise unblocks all goroutines waiting on the associated future
type Promise[T any] struct {
	future *Future[T]
}

// fulfill completes the promise: it stores the result in the future, closes
// the resultReady channel to broadcast completion, and invokes registered
// callbacks. Only the first call takes effect.
//
// The mutex is held while closing the channel so that callback registration
// and settlement are atomic with respect to each other: a callback is either
// collected here or sees the closed channel and runs immediately.
func (p *Promise[T]) fulfill(result try.Try[T]) {
	p.future.once.Do(func() {
		p.future.result = result

		p.future.mu.Lock()

		close(p.future.resultReady)

		resultCallbacks := p.future.resultCallbacks
		successCallbacks := p.future.successCallbacks
		errorCallbacks := p.future.errorCallbacks

		// Ensure callbacks only ever get called once, and let the GC
		// reclaim them afterwards.
		p.future.resultCallbacks = nil
		p.future.successCallbacks = nil
		p.future.errorCallbacks = nil

		p.future.mu.Unlock()

		for _, callback := range resultCallbacks {
			invokeCallback("OnResult", callback, result)
		}

		if result.IsSuccess() {
			for _, callback := range successCallbacks {
				invokeCallback("OnSuccess", callback, result.Value)
			}
		} else {
			for _, callback := range errorCallbacks {
				invokeCallback("OnError", callback, result.Error)
			}
		}
	})
}

// Success fulfills the promise with a successful value. If called more than
// once, only the first call takes effect.
func (p *Promise[T]) Success(value T) {
	p.fulfill(try.Success(value))
}

// Failure fulfills the promise with an error. If called more than once,
// only the first call takes effect.
func (p *Promise[T]) Failure(err error) {
	p.fulfill(try.Failure[T](err))
}

// Complete fulfills the promise with a (value, error) pair, matching Go's
// standard return shape: a non-nil error settles the future as a failure,
// otherwise the value settles it as a success.
func (p *Promise[T]) Complete(value T, err error) {
	if err != nil {
		p.Failure(err)
	} else {
		p.Success(value)
	}
}
