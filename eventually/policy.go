package eventually

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy is returned when a policy carries a negative duration.
var ErrInvalidPolicy = errors.New("invalid policy")

// Policy holds the time budget for one retry invocation.
//
// Timeout is the total budget across all attempts; Interval is the
// steady-state spacing between attempts. A Policy is constructed once per
// call and never mutated.
type Policy struct {
	// Timeout is the total time budget for all attempts.
	Timeout time.Duration
	// Interval is the steady-state wait between attempts.
	Interval time.Duration
}

// Validate checks the policy invariants: both durations must be non-negative.
func (p Policy) Validate() error {
	if p.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be non-negative, got %v", ErrInvalidPolicy, p.Timeout)
	}

	if p.Interval < 0 {
		return fmt.Errorf("%w: interval must be non-negative, got %v", ErrInvalidPolicy, p.Interval)
	}

	return nil
}
