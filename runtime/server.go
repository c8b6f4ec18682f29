package runtime

import (
	"context"
	"log"

	"github.com/aura-studio/lambda-runtime/dispatch"
)

// engine is the global engine for the package-level Serve/Start entry points.
var engine *Engine

// Serve runs the invocation loop with the given handler and returns its
// terminal error. Most programs use Start instead; Serve is for callers
// that manage their own process lifecycle or context.
func Serve(ctx context.Context, handler dispatch.Handler, opts ...ServeOption) error {
	bag := &serveOptionBag{}
	bag.apply(opts...)

	var err error
	engine, err = NewEngine(handler, bag.runtime, bag.transport)
	if err != nil {
		return err
	}
	return engine.Run(ctx)
}

// Start registers the handler and runs the loop until a terminal transport
// failure, then exits with a non-zero status so the hosting environment can
// recycle the instance. It never returns.
func Start(handler dispatch.Handler, opts ...ServeOption) {
	if err := Serve(context.Background(), handler, opts...); err != nil {
		log.Fatalf("[Runtime] Terminated: %v", err)
	}
}

// StartFunc is Start for a typed handler function.
func StartFunc[In, Out any](fn func(context.Context, In) (Out, error), opts ...ServeOption) {
	Start(dispatch.NewHandler(fn), opts...)
}

// Close stops the global engine after the in-flight invocation completes.
func Close() {
	if engine != nil {
		engine.Stop()
	}
}
