// Package failure builds the error reports posted back to the runtime API.
//
// Every failed invocation, whatever its origin (bad input, handler error,
// handler panic, bad output), is reduced to a single ErrorDescription whose
// JSON form matches the runtime API error schema:
//
//	{"errorMessage": "...", "errorType": "...", "stackTrace": [...]}
package failure

import (
	"fmt"
	"reflect"
	"strings"
)

// StackFrame describes one call-stack entry of a captured trace.
type StackFrame struct {
	Path  string `json:"path"`
	Line  int32  `json:"line"`
	Label string `json:"label"`
}

// ErrorDescription is the failure-report payload for one invocation.
// StackTrace is empty unless capture is enabled (see Capture).
type ErrorDescription struct {
	ErrorMessage string        `json:"errorMessage"`
	ErrorType    string        `json:"errorType"`
	StackTrace   []*StackFrame `json:"stackTrace,omitempty"`
}

// Error implements the error interface so a description can travel through
// ordinary error returns (e.g. the invoker client surfaces remote failures
// as *ErrorDescription values).
func (d *ErrorDescription) Error() string {
	if d.ErrorType == "" {
		return d.ErrorMessage
	}
	return d.ErrorType + ": " + d.ErrorMessage
}

// ErrorTyper lets an error override the classification string reported as
// errorType. Errors without it are classified by their Go type name.
type ErrorTyper interface {
	ErrorType() string
}

// StackTracer lets an error carry its own trace, bypassing capture.
type StackTracer interface {
	StackTrace() []*StackFrame
}

// Traceless marks errors that must never carry a stack trace, even when
// capture is enabled. Decode and encode failures are data-shape problems,
// not runtime faults, and are reported without frames.
type Traceless interface {
	Traceless()
}

// Describe converts an explicit error return into an ErrorDescription.
func Describe(err error) *ErrorDescription {
	if err == nil {
		return nil
	}
	if d, ok := err.(*ErrorDescription); ok {
		return d
	}

	d := &ErrorDescription{
		ErrorMessage: err.Error(),
		ErrorType:    errorType(err),
	}

	if st, ok := err.(StackTracer); ok {
		d.StackTrace = st.StackTrace()
		return d
	}
	if _, ok := err.(Traceless); ok {
		return d
	}
	if CaptureEnabled() {
		// Skip Capture, Describe and the dispatch boundary frame.
		d.StackTrace = Capture(3)
	}
	return d
}

// DescribePanic converts a recovered panic value into an ErrorDescription.
// The trace, when capture is enabled, must be taken inside the deferred
// recover so the panicking frames are still on the stack; callers pass it in.
func DescribePanic(v interface{}, trace []*StackFrame) *ErrorDescription {
	d := &ErrorDescription{
		ErrorMessage: fmt.Sprintf("%v", v),
		ErrorType:    errorType(v),
	}
	if CaptureEnabled() {
		d.StackTrace = trace
	}
	return d
}

// errorType derives the errorType classification from a value. Explicit
// ErrorTyper implementations win; otherwise the concrete Go type name is
// used, matching what operators see from other runtimes.
func errorType(v interface{}) string {
	if et, ok := v.(ErrorTyper); ok {
		if t := et.ErrorType(); t != "" {
			return t
		}
	}

	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return strings.TrimPrefix(t.String(), "*")
}
