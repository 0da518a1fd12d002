// Package try provides a small success-or-failure container for carrying
// the result of an operation as a value.
package try

type Try[A any] struct {
	Value A
	Error error
}

// Success returns a Try holding a successful value.
func Success[A any](value A) Try[A] {
	return Try[A]{Value: value}
}

// Failure returns a Try holding an error.
func Failure[A any](err error) Try[A] {
	return Try[A]{Error: err}
}

// Of packs a (value, error) pair into a Try.
func Of[A any](value A, err error) Try[A] {
	return Try[A]{Value: value, Error: err}
}

func (t Try[A]) IsSuccess() bool {
	return t.Error == nil
}

func (t Try[A]) IsFailure() bool {
	return t.Error != nil
}

func (t Try[A]) Get() (A, error) { //nolint:ireturn
	if t.IsFailure() {
		var zero A

		return zero, t.Error
	} else {
		return t.Value, nil
	}
}

func (t Try[A]) GetOrElse(defaultValue A) A { //nolint:ireturn
	if t.IsSuccess() {
		return t.Value
	} else {
		return defaultValue
	}
}

func Map[A, B any](t Try[A], f func(A) (B, error)) Try[B] {
	if t.IsSuccess() {
		val, err := f(t.Value)

		return Try[B]{Value: val, Error: err}
	} else {
		return Try[B]{Error: t.Error}
	}
}
