// Package dispatch adapts a typed user handler to the raw-bytes invocation
// protocol and fences handler execution behind a fault boundary.
//
// Failures fall into distinct categories so operators can tell bad input
// data, handler bugs and bad output shapes apart in logs:
//
//	InvalidInput   the invocation body did not decode into the input type
//	InvalidOutput  the handler's result did not encode to bytes
//	handler error  explicit error return, described as-is
//	handler fault  panic during execution, caught and described
package dispatch

import (
	"context"

	"github.com/aura-studio/lambda-runtime/failure"
)

// Handler is the raw protocol-side contract: one invocation payload in,
// one result payload or error out.
type Handler interface {
	Invoke(ctx context.Context, payload []byte) ([]byte, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, payload []byte) ([]byte, error)

func (f HandlerFunc) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	return f(ctx, payload)
}

// Result is the outcome of dispatching one invocation: exactly one of
// Payload (success bytes) or Failure is meaningful.
type Result struct {
	Payload []byte
	Failure *failure.ErrorDescription
}

// OK reports whether the dispatch succeeded.
func (r *Result) OK() bool { return r.Failure == nil }

// Dispatch runs one invocation through the handler inside the fault
// boundary. It always produces exactly one Result; a panicking handler is
// converted into a Failure here so a single faulty invocation never
// terminates the process.
func Dispatch(ctx context.Context, h Handler, payload []byte) (res *Result) {
	defer func() {
		if v := recover(); v != nil {
			// Capture inside the recover so the faulting frames are
			// still on the stack.
			var trace []*failure.StackFrame
			if failure.CaptureEnabled() {
				trace = failure.Capture(2)
			}
			res = &Result{Failure: failure.DescribePanic(v, trace)}
		}
	}()

	out, err := h.Invoke(ctx, payload)
	if err != nil {
		return &Result{Failure: failure.Describe(err)}
	}
	return &Result{Payload: out}
}
