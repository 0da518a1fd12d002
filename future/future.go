// Package future provides a single-assignment deferred result: a
// Future[T]/Promise[T] pair. The future is the read side, which callers
// await or attach continuation callbacks to. The promise is the write side,
// which settles the future exactly once with a value or an error.
package future

import (
	"context"
	"errors"
	"sync"

	"github.com/amp-labs/amp-eventually/try"
)

var (
	// ErrNilFuture is returned by combinators handed a nil future.
	ErrNilFuture = errors.New("nil future")

	// ErrNilFunction is returned by combinators handed a nil function.
	ErrNilFunction = errors.New("nil function")
)

// Future represents the read-only side of an asynchronous computation.
//
// A future is settled at most once by its associated promise. Settlement is
// broadcast by closing resultReady, so any number of goroutines may await
// the same future; reads after settlement are idempotent.
type Future[T any] struct {
	once        sync.Once
	mu          sync.Mutex
	resultReady chan struct{}
	result      try.Try[T]

	resultCallbacks  []func(try.Try[T])
	successCallbacks []func(T)
	errorCallbacks   []func(error)
}

// New creates an unsettled future together with the promise that settles it.
// The promise holds a reference to the future, not the other way around, so
// futures can be handed out without exposing the ability to complete them.
func New[T any]() (*Future[T], *Promise[T]) {
	fut := &Future[T]{
		resultReady: make(chan struct{}),
	}

	return fut, &Promise[T]{future: fut}
}

// NewError creates a future that is already settled with the given error.
func NewError[T any](err error) *Future[T] {
	fut, promise := New[T]()
	promise.Failure(err)

	return fut
}

// Go runs f in a new goroutine and returns a future for its result.
// Panics in f are recovered and surface as a failed future.
func Go[T any](f func() (T, error)) *Future[T] {
	fut, promise := New[T]()

	go func() {
		promise.fulfill(try.Catch(f))
	}()

	return fut
}

// Await blocks until the future is settled and returns its result.
// Safe to call from multiple goroutines and safe to call repeatedly.
func (f *Future[T]) Await() (T, error) { //nolint:ireturn
	<-f.resultReady

	return f.result.Get()
}

// AwaitContext blocks until the future is settled or the context is done,
// whichever happens first. A context error does not settle the future;
// a later Await can still observe the eventual result.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) { //nolint:ireturn
	select {
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	case <-f.resultReady:
		return f.result.Get()
	}
}

// Done returns a channel that is closed once the future is settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.resultReady
}

// OnResult registers a callback invoked with the settled result, whether
// success or failure. If the future is already settled, the callback is
// invoked immediately. Callbacks run in their own goroutines and never
// block settlement.
func (f *Future[T]) OnResult(callback func(try.Try[T])) {
	f.mu.Lock()

	select {
	case <-f.resultReady:
		result := f.result
		f.mu.Unlock()

		invokeCallback("OnResult", callback, result)
	default:
		f.resultCallbacks = append(f.resultCallbacks, callback)
		f.mu.Unlock()
	}
}

// OnSuccess registers a callback invoked only when the future settles with
// a value. Registration semantics match OnResult.
func (f *Future[T]) OnSuccess(callback func(T)) {
	f.mu.Lock()

	select {
	case <-f.resultReady:
		result := f.result
		f.mu.Unlock()

		if result.IsSuccess() {
			invokeCallback("OnSuccess", callback, result.Value)
		}
	default:
		f.successCallbacks = append(f.successCallbacks, callback)
		f.mu.Unlock()
	}
}

// OnError registers a callback invoked only when the future settles with
// an error. Registration semantics match OnResult.
func (f *Future[T]) OnError(callback func(error)) {
	f.mu.Lock()

	select {
	case <-f.resultReady:
		result := f.result
		f.mu.Unlock()

		if result.IsFailure() {
			invokeCallback("OnError", callback, result.Error)
		}
	default:
		f.errorCallbacks = append(f.errorCallbacks, callback)
		f.mu.Unlock()
	}
}

// Map returns a future holding f applied to fut's eventual value.
// Errors from fut pass through untransformed; panics in f surface as a
// failed future.
func Map[A, B any](fut *Future[A], f func(A) (B, error)) *Future[B] {
	out, promise := New[B]()

	if fut == nil {
		promise.Failure(ErrNilFuture)

		return out
	}

	if f == nil {
		promise.Failure(ErrNilFunction)

		return out
	}

	fut.OnResult(func(result try.Try[A]) {
		if result.IsFailure() {
			promise.Failure(result.Error)

			return
		}

		promise.fulfill(try.Catch(func() (B, error) {
			return f(result.Value)
		}))
	})

	return out
}
