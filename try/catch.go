package try

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrPanicRecovery wraps values recovered from a panic so that callers can
// detect them with errors.Is.
var ErrPanicRecovery = errors.New("recovered from panic")

// Catch invokes f and packs its result into a Try. If f panics, the panic
// is recovered and converted into a failed Try via PanicRecoveryError, with
// the goroutine stack captured at the point of recovery. This is the single
// boundary where a panicking operation is turned back into an error value.
func Catch[A any](f func() (A, error)) (result Try[A]) {
	defer func() {
		if r := recover(); r != nil {
			result = Failure[A](PanicRecoveryError(r, debug.Stack()))
		}
	}()

	return Of(f())
}

// PanicRecoveryError converts a recovered panic value and optional stack trace
// into a standard error. If the panic value is nil, it returns nil.
// If the panic value is an error, it wraps it with ErrPanicRecovery so the
// original error stays reachable through the unwrap chain.
func PanicRecoveryError(value any, stack []byte) error {
	if value == nil {
		return nil
	}

	valueErr, ok := value.(error)
	if ok {
		if stack != nil {
			return fmt.Errorf("%w: %w\nstack trace:\n%s", ErrPanicRecovery, valueErr, string(stack))
		}

		return fmt.Errorf("%w: %w", ErrPanicRecovery, valueErr)
	} else {
		if stack != nil {
			return fmt.Errorf("%w: %v\nstack trace:\n%s", ErrPanicRecovery, value, string(stack))
		}

		return fmt.Errorf("%w: %v", ErrPanicRecovery, value)
	}
}
