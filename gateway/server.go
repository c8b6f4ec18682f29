package gateway

import (
	"context"

	"github.com/aura-studio/lambda-runtime/runtime"
)

// Serve runs the invocation loop with a gateway handler and returns its
// terminal error.
func Serve(ctx context.Context, fn HandlerFunc, opts ...runtime.ServeOption) error {
	return runtime.Serve(ctx, NewHandler(fn), opts...)
}

// Start runs the invocation loop with a gateway handler and exits with a
// non-zero status on terminal transport failure. It never returns.
func Start(fn HandlerFunc, opts ...runtime.ServeOption) {
	runtime.Start(NewHandler(fn), opts...)
}

// Close stops the loop after the in-flight invocation completes.
func Close() {
	runtime.Close()
}
