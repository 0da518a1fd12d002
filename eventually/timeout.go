package eventually

import (
	"fmt"
	"strings"
	"time"
)

// TimeoutError is the terminal error produced when retryable failures
// persist past the policy deadline. It reports how hard the executor tried:
// the attempt count, the time actually spent, the configured budget, the
// last underlying cause, and the call site when one was attached.
type TimeoutError struct {
	// Attempts is the number of attempts performed, including the last one.
	Attempts int
	// Elapsed is the time spent between the first attempt and the final
	// deadline check.
	Elapsed time.Duration
	// Timeout is the configured total budget.
	Timeout time.Duration
	// Cause is the failure from the last attempt. It is always stored;
	// causes with an empty message are only elided from Error's output.
	Cause error
	// Location is the call site token attached via WithLocation, if any.
	Location Location
}

func (e *TimeoutError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "did not succeed within %v: %d attempts over %v", e.Timeout, e.Attempts, e.Elapsed)

	if e.Cause != nil && e.Cause.Error() != "" {
		fmt.Fprintf(&sb, ", last failure: %v", e.Cause)
	}

	if !e.Location.IsZero() {
		fmt.Fprintf(&sb, " (%s)", e.Location)
	}

	return sb.String()
}

// Unwrap exposes the last attempt's failure to errors.Is and errors.As.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
