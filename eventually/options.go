package eventually

import (
	"github.com/alitto/pond/v2"
	"github.com/coder/quartz"
)

// Option is a function that configures a single retry invocation.
// Options follow the functional options pattern for flexible configuration.
type Option func(*options)

// options holds the internal configuration for one retry invocation.
type options struct {
	clock    quartz.Clock // Time source for elapsed checks and waits
	pool     pond.Pool    // Worker pool driving deferred continuations
	backoff  Backoff      // Wait calculation between attempts
	location Location     // Call site token for the terminal error
}

func newOptions(policy Policy, opts []Option) *options {
	intOpts := &options{
		clock:   quartz.NewReal(),
		backoff: TieredBackoff{Interval: policy.Interval},
	}

	for _, option := range opts {
		option(intOpts)
	}

	return intOpts
}

// workerPool resolves the pool for deferred continuations, falling back to
// the shared package pool.
func (o *options) workerPool() pond.Pool { //nolint:ireturn
	if o.pool != nil {
		return o.pool
	}

	return defaultPool()
}

// WithClock injects the time source used for elapsed-time checks and
// backoff waits. Defaults to the real clock; tests can pass a quartz mock.
func WithClock(clock quartz.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithPool injects the worker pool that runs deferred retry continuations
// for DoAsync. Defaults to a shared package-level pool.
func WithPool(pool pond.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

// WithBackoff overrides the wait calculation between attempts. Defaults to
// TieredBackoff over the policy interval.
func WithBackoff(b Backoff) Option {
	return func(o *options) {
		o.backoff = b
	}
}

// WithLocation attaches a call site token to the terminal timeout error.
// The executors never inspect it.
func WithLocation(loc Location) Option {
	return func(o *options) {
		o.location = loc
	}
}
