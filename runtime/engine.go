// Package runtime drives the invocation loop: poll the next invocation,
// install its context, dispatch it to the handler, report the result, and
// loop until the transport fails.
package runtime

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/aura-studio/lambda-runtime/dispatch"
	"github.com/aura-studio/lambda-runtime/failure"
	"github.com/aura-studio/lambda-runtime/invocation"
	"github.com/aura-studio/lambda-runtime/transport"
)

// envTraceID mirrors the invocation's trace id into the environment, where
// tracing SDKs expect to find it.
const envTraceID = "_X_AMZN_TRACE_ID"

// Engine owns the runtime loop. Exactly one invocation is in flight at a
// time: the next poll is never issued before the current report completes,
// so the invocation context needs no locking by construction.
type Engine struct {
	*Options
	client  *transport.Client
	handler dispatch.Handler
	running atomic.Int32
}

// NewEngine builds an engine around the given handler.
func NewEngine(handler dispatch.Handler, runtimeOpts []Option, transportOpts []transport.Option) (*Engine, error) {
	if handler == nil {
		return nil, fmt.Errorf("runtime: nil handler")
	}

	client, err := transport.NewClient(transportOpts...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Options: NewOptions(runtimeOpts...),
		client:  client,
		handler: handler,
	}
	if e.StackTrace != nil {
		failure.EnableCapture(*e.StackTrace)
	}
	e.running.Store(1)
	return e, nil
}

// Start allows the engine to accept invocations again after Stop.
func (e *Engine) Start() {
	e.running.Store(1)
}

// Stop makes the loop return after the in-flight invocation is reported.
func (e *Engine) Stop() {
	e.running.Store(0)
}

// IsRunning returns true if the engine is currently running.
func (e *Engine) IsRunning() bool {
	return e.running.Load() == 1
}

// Run executes the invocation loop. It returns nil only after Stop; any
// transport error (poll or report) is terminal and returned immediately,
// since retry semantics belong to the environment, not this client.
func (e *Engine) Run(ctx context.Context) error {
	for e.IsRunning() {
		inv, err := e.client.PollNext(ctx)
		if err != nil {
			return fmt.Errorf("runtime: %w", err)
		}

		res := e.dispatch(ctx, inv)

		if res.OK() {
			err = e.client.ReportSuccess(ctx, inv.RequestID, res.Payload)
		} else {
			if e.DebugMode {
				log.Printf("[Runtime] Invocation failed: id=%s type=%s message=%s",
					inv.RequestID, res.Failure.ErrorType, res.Failure.ErrorMessage)
			}
			err = e.client.ReportFailure(ctx, inv.RequestID, res.Failure)
		}
		if err != nil {
			return fmt.Errorf("runtime: report result for %s: %w", inv.RequestID, err)
		}
	}
	return nil
}

// dispatch installs the per-invocation context, runs the handler behind the
// fault boundary, and clears the context before the next poll.
func (e *Engine) dispatch(ctx context.Context, inv *invocation.Invocation) *dispatch.Result {
	ic := inv.Context()

	invocation.SetCurrent(ic)
	defer invocation.ClearCurrent()

	if inv.TraceID != "" {
		os.Setenv(envTraceID, inv.TraceID)
	}

	hctx := invocation.NewContext(ctx, ic)
	if !inv.Deadline.IsZero() {
		// The handler sees the deadline and can self-cancel; the loop
		// itself never preempts an overrunning handler.
		var cancel context.CancelFunc
		hctx, cancel = context.WithDeadline(hctx, inv.Deadline)
		defer cancel()
	}

	if e.DebugMode {
		log.Printf("[Runtime] Dispatch: id=%s payload=%s", inv.RequestID, inv.Payload)
	}

	return dispatch.Dispatch(hctx, e.handler, inv.Payload)
}
