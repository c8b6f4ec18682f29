package failure

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
)

// EnvTrace is the environment variable that opts in to stack-trace capture.
// Capturing frames has a cost on the failure path, so it is off by default.
const EnvTrace = "LAMBDA_RUNTIME_TRACE"

const maxFrames = 32

var captureEnabled atomic.Bool

func init() {
	if v, err := strconv.ParseBool(os.Getenv(EnvTrace)); err == nil {
		captureEnabled.Store(v)
	}
}

// CaptureEnabled reports whether failure descriptions include stack traces.
func CaptureEnabled() bool {
	return captureEnabled.Load()
}

// EnableCapture overrides the environment opt-in at runtime.
func EnableCapture(enabled bool) {
	captureEnabled.Store(enabled)
}

// Capture records the current call stack, skipping the given number of
// leading frames on top of Capture itself. Frames inside the Go runtime
// (panic plumbing, goroutine bootstrap) are filtered out.
func Capture(skip int) []*StackFrame {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	var trace []*StackFrame
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !isRuntimeFrame(frame.Function) {
			trace = append(trace, &StackFrame{
				Path:  frame.File,
				Line:  int32(frame.Line),
				Label: frame.Function,
			})
		}
		if !more {
			break
		}
	}
	return trace
}

func isRuntimeFrame(fn string) bool {
	return strings.HasPrefix(fn, "runtime.")
}
