// Package tests provides utilities for managing test context with unique
// identifiers and test metadata. It allows tests to carry test-specific
// information (test name, unique ID) through context.Context, making it
// easier to correlate polling assertions with the test that issued them.
//
// Example usage:
//
//	func TestMyFeature(t *testing.T) {
//	    ctx := tests.GetUniqueContext(t)
//	    // ctx now contains unique test ID and test name
//
//	    info, ok := tests.GetTestInfo(ctx)
//	    if ok {
//	        fmt.Printf("Running test: %s with ID: %s\n", info.Name, info.Id)
//	    }
//	}
package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// contextKey is a private type used for storing test metadata in
// context.Context. Using a custom type instead of string prevents
// collisions with other packages that might use the same key names.
type contextKey string

const (
	// testIdKey is the context key for storing the unique test identifier.
	// The test ID is a UUID prefixed with "test-".
	testIdKey contextKey = "testId"

	// testNameKey is the context key for storing the test name, as returned
	// by testing.T.Name() including the full subtest path.
	testNameKey contextKey = "testName"

	// testTestKey is the context key for storing the testing.T instance,
	// so helpers reached through the context can call t.Helper(), t.Log()
	// and friends.
	testTestKey contextKey = "testTest"
)

// GetUniqueContext creates a new context derived from t.Context() that
// carries a unique test identifier (UUID with "test-" prefix), the test
// name, and the testing.T instance itself.
func GetUniqueContext(t *testing.T) context.Context {
	t.Helper()

	ctx := context.WithValue(t.Context(), testTestKey, t)
	ctx = context.WithValue(ctx, testIdKey, "test-"+uuid.New().String())

	return context.WithValue(ctx, testNameKey, t.Name())
}

// GetTestName retrieves the test name from the context. The second return
// value reports whether a name was present.
func GetTestName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(testNameKey).(string)

	return name, ok
}

// GetTestId retrieves the unique test identifier from the context.
func GetTestId(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(testIdKey).(string)

	return id, ok
}

// GetTest retrieves the testing.T instance from the context.
func GetTest(ctx context.Context) (*testing.T, bool) {
	t, ok := ctx.Value(testTestKey).(*testing.T)

	return t, ok
}

// Info represents test metadata containing the unique identifier and test
// name. The struct is JSON-serializable for logging or external reporting.
type Info struct {
	Test *testing.T `json:"-"`
	Id   string     `json:"id"`   // Unique test identifier (UUID with "test-" prefix)
	Name string     `json:"name"` // Full test name including subtest path
}

// GetTestInfo retrieves the test ID, name, and testing.T from the context
// as a single Info struct. It returns false only if none of them are
// present.
func GetTestInfo(ctx context.Context) (Info, bool) {
	name, nameOk := GetTestName(ctx)
	id, idOk := GetTestId(ctx)
	t, tOk := GetTest(ctx)

	if !nameOk && !idOk && !tOk {
		return Info{}, false
	}

	return Info{
		Test: t,
		Id:   id,
		Name: name,
	}, true
}
