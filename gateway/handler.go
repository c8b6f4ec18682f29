package gateway

import (
	"context"

	"github.com/aura-studio/lambda-runtime/dispatch"
)

// HandlerFunc is the user-facing contract for proxied HTTP invocations.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

type proxyHandler struct {
	fn HandlerFunc
}

func (h *proxyHandler) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := DecodeRequest(payload)
	if err != nil {
		return nil, &dispatch.InvalidInputError{Err: err}
	}

	resp, err := h.fn(ctx, req)
	if err != nil {
		return nil, err
	}

	encoded, err := EncodeResponse(resp)
	if err != nil {
		return nil, &dispatch.InvalidOutputError{Err: err}
	}
	return encoded, nil
}

// NewHandler adapts a gateway handler function to the dispatch contract,
// with decode failures classified as InvalidInput and encode failures as
// InvalidOutput like any other typed handler.
func NewHandler(fn HandlerFunc) dispatch.Handler {
	if fn == nil {
		panic("gateway: nil handler function")
	}
	return &proxyHandler{fn: fn}
}
