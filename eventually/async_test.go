package eventually

import (
	"errors"
	"testing"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-eventually/future"
	"github.com/amp-labs/amp-eventually/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestDoAsync_ImmediateSuccess(t *testing.T) {
	t.Parallel()

	callCount := atomic.NewInt64(0)

	fut := DoAsync(fastPolicy(), func() *future.Future[int] {
		callCount.Inc()

		return future.Go(func() (int, error) {
			return 42, nil
		})
	})

	result, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, int64(1), callCount.Load())
}

func TestDoAsync_NonBlocking(t *testing.T) {
	t.Parallel()

	settled := make(chan struct{})
	start := time.Now()

	fut := DoAsync(fastPolicy(), func() *future.Future[string] {
		inner, promise := future.New[string]()

		go func() {
			time.Sleep(100 * time.Millisecond)
			promise.Success("late")
			close(settled)
		}()

		return inner
	})

	returned := time.Since(start)

	// The caller regains control before the first attempt settles.
	assert.Less(t, returned, 50*time.Millisecond, "DoAsync must not block the caller")

	select {
	case <-settled:
		t.Fatal("first attempt should not have settled yet")
	default:
	}

	result, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, "late", result)
}

func TestDoAsync_EventualSuccess(t *testing.T) {
	t.Parallel()

	callCount := atomic.NewInt64(0)

	fut := DoAsync(fastPolicy(), func() *future.Future[int] {
		return future.Go(func() (int, error) {
			if callCount.Inc() < 4 {
				return 0, errFlaky
			}

			return 7, nil
		})
	})

	ctx := tests.GetUniqueContext(t)

	result, err := fut.AwaitContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, result)
	assert.Equal(t, int64(4), callCount.Load())
}

func TestDoAsync_DeadlineExceeded(t *testing.T) {
	t.Parallel()

	policy := Policy{Timeout: 80 * time.Millisecond, Interval: 20 * time.Millisecond}
	callCount := atomic.NewInt64(0)

	fut := DoAsync(policy, func() *future.Future[int] {
		return future.Go(func() (int, error) {
			callCount.Inc()

			return 0, errFlaky
		})
	})

	_, err := fut.Await()
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, callCount.Load(), int64(timeoutErr.Attempts))
	assert.GreaterOrEqual(t, timeoutErr.Elapsed, policy.Timeout)
	assert.Equal(t, policy.Timeout, timeoutErr.Timeout)
	assert.ErrorIs(t, err, errFlaky)
}

func TestDoAsync_PendingShortCircuit(t *testing.T) {
	t.Parallel()

	callCount := atomic.NewInt64(0)
	inner := errors.New("resource not provisioned yet") //nolint:err113 // Test error

	fut := DoAsync(fastPolicy(), func() *future.Future[int] {
		callCount.Inc()

		return future.NewError[int](MarkPending(inner))
	})

	_, err := fut.Await()
	require.Error(t, err)
	assert.True(t, IsPending(err))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, int64(1), callCount.Load())
}

func TestDoAsync_FatalShortCircuit(t *testing.T) {
	t.Parallel()

	callCount := atomic.NewInt64(0)
	originalErr := errors.New("unrecoverable") //nolint:err113 // Test error

	fut := DoAsync(fastPolicy(), func() *future.Future[int] {
		callCount.Inc()

		return future.NewError[int](Abort(originalErr))
	})

	_, err := fut.Await()
	require.Equal(t, originalErr, err)
	assert.Equal(t, int64(1), callCount.Load())
}

func TestDoAsync_InvalidPolicy(t *testing.T) {
	t.Parallel()

	fut := DoAsync(Policy{Timeout: time.Second, Interval: -time.Millisecond},
		func() *future.Future[int] {
			t.Error("operation should not run with an invalid policy")

			return nil
		})

	_, err := fut.Await()
	require.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestDoAsync_NilFutureFromOperation(t *testing.T) {
	t.Parallel()

	fut := DoAsync(Policy{Timeout: 0, Interval: 10 * time.Millisecond},
		func() *future.Future[int] {
			return nil
		})

	_, err := fut.Await()
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.ErrorIs(t, err, future.ErrNilFuture)
}

func TestDoAsync_OperationPanics(t *testing.T) {
	t.Parallel()

	callCount := atomic.NewInt64(0)

	fut := DoAsync(fastPolicy(), func() *future.Future[int] {
		if callCount.Inc() < 3 {
			panic("flaky setup")
		}

		return future.Go(func() (int, error) {
			return 1, nil
		})
	})

	result, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, 1, result)
	assert.Equal(t, int64(3), callCount.Load())
}

func TestDoAsync_WithPool(t *testing.T) {
	t.Parallel()

	pool := pond.NewPool(2)
	defer pool.StopAndWait()

	callCount := atomic.NewInt64(0)

	fut := DoAsync(fastPolicy(), func() *future.Future[int] {
		return future.Go(func() (int, error) {
			if callCount.Inc() < 3 {
				return 0, errFlaky
			}

			return 9, nil
		})
	}, WithPool(pool))

	result, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, 9, result)
}

func TestDoAsync_StoppedPoolFailsTheFuture(t *testing.T) {
	t.Parallel()

	pool := pond.NewPool(2)
	pool.StopAndWait()

	callCount := atomic.NewInt64(0)

	// The first attempt runs inline; scheduling the second attempt onto
	// the stopped pool must settle the outer future with the rejection.
	fut := DoAsync(fastPolicy(), func() *future.Future[int] {
		callCount.Inc()

		return future.NewError[int](errFlaky)
	}, WithPool(pool))

	_, err := fut.Await()
	require.Error(t, err)

	var timeoutErr *TimeoutError
	assert.False(t, errors.As(err, &timeoutErr), "pool rejection is not a deadline failure")
	assert.Equal(t, int64(1), callCount.Load())
}

func TestDoAsync_WithLocation(t *testing.T) {
	t.Parallel()

	loc := Caller(0)

	fut := DoAsync(Policy{Timeout: 10 * time.Millisecond, Interval: 5 * time.Millisecond},
		func() *future.Future[int] {
			return future.NewError[int](errFlaky)
		}, WithLocation(loc))

	_, err := fut.Await()

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, loc, timeoutErr.Location)
}
