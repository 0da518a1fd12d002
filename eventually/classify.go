package eventually

import (
	"context"
	"errors"

	"github.com/amp-labs/amp-eventually/try"
)

// ErrPending marks a failure meaning "intentionally not yet decidable".
// Operations return it (or an error wrapping it via MarkPending) to signal
// that the condition under test is deliberately incomplete rather than
// broken. Pending failures propagate immediately and are never retried.
var ErrPending = errors.New("pending")

// Error is an interface for errors that can indicate whether they are
// temporary (retryable) or not. Operations can return errors implementing
// this interface to stop the retry loop immediately.
type Error interface {
	// Temporary returns true if the error is temporary and the operation
	// should be retried. Returns false if retries should stop.
	Temporary() bool
	error
}

// permanentError wraps an error to mark it as fatal (non-retryable).
// This is used internally by the Abort function.
type permanentError struct {
	error
}

// Temporary returns false to indicate this error should not be retried.
func (e *permanentError) Temporary() bool { return false }

// Unwrap returns the underlying error for error chain unwrapping.
func (e *permanentError) Unwrap() error {
	return e.error
}

// Abort wraps an error to mark it as fatal, causing the retry loop to stop
// immediately and propagate the original error unmodified. Use this when an
// attempt has established that no amount of further polling can help.
//
// Example:
//
//	eventually.Do(policy, func() error {
//	    if err := validateFixture(data); err != nil {
//	        return eventually.Abort(err) // broken fixture, don't keep polling
//	    }
//	    return checkCondition(data)
//	})
func Abort(err error) Error {
	return &permanentError{err}
}

// pendingError wraps an error to mark it as pending. Unlike Abort, the
// wrapper itself propagates: the marking is the signal.
type pendingError struct {
	error
}

func (e *pendingError) Unwrap() error {
	return e.error
}

func (e *pendingError) Is(target error) bool {
	return target == ErrPending
}

// MarkPending wraps an error to mark the operation as intentionally not yet
// decidable. A nil err yields ErrPending itself.
func MarkPending(err error) error {
	if err == nil {
		return ErrPending
	}

	return &pendingError{err}
}

// IsPending reports whether err carries the pending marker.
func IsPending(err error) bool {
	return errors.Is(err, ErrPending)
}

// outcomeKind is the executor's decision about one attempt's result.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeRetryable
	outcomeFatal
	outcomePending
)

// outcome is the classified result of a single attempt. It is consumed
// immediately by the executor loop and never persisted.
type outcome[T any] struct {
	kind  outcomeKind
	value T
	cause error
}

// observe invokes the operation through the panic boundary and classifies
// whatever comes back.
func observe[T any](f func() (T, error)) outcome[T] {
	result := try.Catch(f)

	return outcome[T]{
		kind:  classify(result.Error),
		value: result.Value,
		cause: result.Error,
	}
}

// classify is a pure function over the error's identity. Pending beats
// fatal: an explicitly marked pending failure is a deliberate signal, not
// an abort condition.
func classify(err error) outcomeKind {
	if err == nil {
		return outcomeSuccess
	}

	if IsPending(err) {
		return outcomePending
	}

	var retryErr Error
	if errors.As(err, &retryErr) && !retryErr.Temporary() {
		return outcomeFatal
	}

	// Context cancellation means the caller is shutting down; stop polling.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return outcomeFatal
	}

	return outcomeRetryable
}

// terminal strips the Abort wrapper so fatal failures propagate in their
// original form. All other errors pass through untouched.
func terminal(err error) error {
	var p *permanentError
	if errors.As(err, &p) {
		return p.error
	}

	return err
}
