package try_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/amp-labs/amp-eventually/try"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestSuccess(t *testing.T) {
	t.Parallel()

	result := try.Success(42)

	assert.True(t, result.IsSuccess())
	assert.False(t, result.IsFailure())

	val, err := result.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestFailure(t *testing.T) {
	t.Parallel()

	result := try.Failure[int](errBoom)

	assert.True(t, result.IsFailure())

	val, err := result.Get()
	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, val)
}

func TestOf(t *testing.T) {
	t.Parallel()

	assert.True(t, try.Of("ok", nil).IsSuccess())
	assert.True(t, try.Of("", errBoom).IsFailure())
}

func TestGetOrElse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, try.Success(7).GetOrElse(99))
	assert.Equal(t, 99, try.Failure[int](errBoom).GetOrElse(99))
}

func TestMap(t *testing.T) {
	t.Parallel()

	mapped := try.Map(try.Success(42), func(v int) (string, error) {
		return strconv.Itoa(v), nil
	})

	val, err := mapped.Get()
	require.NoError(t, err)
	assert.Equal(t, "42", val)
}

func TestMap_PropagatesError(t *testing.T) {
	t.Parallel()

	called := false
	mapped := try.Map(try.Failure[int](errBoom), func(v int) (string, error) {
		called = true

		return "", nil
	})

	assert.True(t, mapped.IsFailure())
	assert.False(t, called, "mapper should not run on a failed Try")
	assert.ErrorIs(t, mapped.Error, errBoom)
}
