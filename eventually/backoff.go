package eventually

import "time"

// initialIntervalDivisor fixes the front-loaded polling rate at a tenth of
// the configured interval.
const initialIntervalDivisor = 10

// Backoff is an interface for calculating the wait before the next attempt,
// given the time elapsed since the retry began.
type Backoff interface {
	// Delay calculates the duration to wait before the next attempt.
	Delay(elapsed time.Duration) time.Duration
}

// TieredBackoff implements the two-tier fixed backoff used for polling
// assertions: while less than one full interval has elapsed, attempts are
// spaced a tenth of the interval apart so fast-resolving conditions are
// noticed quickly; after that, attempts settle into the full interval to
// avoid busy-polling. There is no jitter and no cap beyond the deadline
// check performed by the executor.
//
// Example, with Interval = 50ms:
//
//	// Delays: 5ms, 5ms, ... (while elapsed < 50ms), then 50ms, 50ms, ...
type TieredBackoff struct {
	// Interval is the steady-state spacing between attempts.
	Interval time.Duration
}

// Delay returns a tenth of the interval during the first interval window,
// and the full interval afterwards.
func (b TieredBackoff) Delay(elapsed time.Duration) time.Duration {
	if elapsed < b.Interval {
		return b.Interval / initialIntervalDivisor
	}

	return b.Interval
}
