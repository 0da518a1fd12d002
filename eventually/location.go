package eventually

import (
	"fmt"
	"runtime"
)

// Location identifies the call site on whose behalf a retry runs. The
// executors never inspect it; it is only attached to the terminal timeout
// error for diagnostics.
type Location struct {
	File string
	Line int
}

// Caller captures the location skip frames above the caller of Caller
// itself. skip = 0 is the immediate caller.
func Caller(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}

	return Location{File: file, Line: line}
}

// IsZero reports whether no location was captured.
func (l Location) IsZero() bool {
	return l == Location{}
}

func (l Location) String() string {
	if l.IsZero() {
		return ""
	}

	return fmt.Sprintf("%s:%d", l.File, l.Line)
}
