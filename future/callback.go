package future

import (
	"log/slog"
	"runtime/debug"

	"github.com/amp-labs/amp-eventually/try"
)

// invokeCallback invokes a callback in a separate goroutine with panic
// recovery. Nil callbacks are ignored. A panicking callback is recovered
// and logged with its stack trace rather than crashing the process; the
// goroutine also keeps callbacks from blocking promise fulfillment.
func invokeCallback[T any](kind string, callback func(T), value T) {
	if callback == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if err := try.PanicRecoveryError(r, debug.Stack()); err != nil {
					slog.Error("panic encountered in future."+kind+" callback", "error", err)
				}
			}
		}()

		callback(value)
	}()
}
