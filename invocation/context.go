package invocation

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Context is the read-only per-invocation view exposed to handlers.
// It is owned by the current loop iteration; handlers must not retain it
// past their return, since the next iteration supersedes it.
type Context struct {
	RequestID          string
	Deadline           time.Time
	InvokedFunctionARN string
	TraceID            string
	ClientContext      *ClientContext
	Identity           *CognitoIdentity
}

type contextKey struct{}

// NewContext returns a context.Context carrying the invocation view.
// This is the preferred way for handlers to reach invocation metadata.
func NewContext(parent context.Context, ic *Context) context.Context {
	return context.WithValue(parent, contextKey{}, ic)
}

// FromContext extracts the invocation view installed by the runtime driver.
func FromContext(ctx context.Context) (*Context, bool) {
	ic, ok := ctx.Value(contextKey{}).(*Context)
	return ic, ok
}

// ErrNoActiveInvocation is returned by Current outside an active dispatch.
var ErrNoActiveInvocation = errors.New("invocation: no active invocation")

// current is process-wide state with a single writer (the runtime driver)
// and read-only access for everyone else. The single-in-flight execution
// model guarantees it is never mutated concurrently with a dispatch.
var current atomic.Pointer[Context]

// SetCurrent installs the ambient invocation view. Called by the runtime
// driver immediately after a successful poll; not for handler use.
func SetCurrent(ic *Context) {
	current.Store(ic)
}

// ClearCurrent removes the ambient view before the next poll.
func ClearCurrent() {
	current.Store(nil)
}

// Current returns the ambient invocation view, for code that cannot take a
// context.Context parameter. It fails explicitly rather than returning
// stale data when no invocation is active.
func Current() (*Context, error) {
	ic := current.Load()
	if ic == nil {
		return nil, ErrNoActiveInvocation
	}
	return ic, nil
}
