package eventually

import (
	"log/slog"
	"sync"

	"github.com/alitto/pond/v2"
)

const defaultWorkerCount = 8

var (
	poolOnce   sync.Once //nolint:gochecknoglobals
	sharedPool pond.Pool //nolint:gochecknoglobals
)

// defaultPool returns the package-wide worker pool that drives deferred
// retry continuations, creating it on first use. The pool lives for the
// process lifetime; individual retries never own worker goroutines.
func defaultPool() pond.Pool { //nolint:ireturn
	poolOnce.Do(func() {
		slog.Debug("Initializing eventually worker pool", "count", defaultWorkerCount)

		sharedPool = pond.NewPool(defaultWorkerCount)
	})

	return sharedPool
}
