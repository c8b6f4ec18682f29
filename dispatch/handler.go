package dispatch

import "context"

// InvalidInputError wraps a decode failure of the invocation body.
// It is reported without a stack trace: a data-shape problem, not a fault.
type InvalidInputError struct {
	Err error
}

func (e *InvalidInputError) Error() string     { return "decode invocation body: " + e.Err.Error() }
func (e *InvalidInputError) Unwrap() error     { return e.Err }
func (e *InvalidInputError) ErrorType() string { return "InvalidInput" }
func (e *InvalidInputError) Traceless()        {}

// InvalidOutputError wraps an encode failure of the handler's result.
type InvalidOutputError struct {
	Err error
}

func (e *InvalidOutputError) Error() string     { return "encode handler output: " + e.Err.Error() }
func (e *InvalidOutputError) Unwrap() error     { return e.Err }
func (e *InvalidOutputError) ErrorType() string { return "InvalidOutput" }
func (e *InvalidOutputError) Traceless()        {}

type typedHandler[In, Out any] struct {
	fn    func(context.Context, In) (Out, error)
	codec Codec
}

func (h *typedHandler[In, Out]) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	var in In
	if err := h.codec.Decode(payload, &in); err != nil {
		return nil, &InvalidInputError{Err: err}
	}

	out, err := h.fn(ctx, in)
	if err != nil {
		return nil, err
	}

	encoded, err := h.codec.Encode(out)
	if err != nil {
		return nil, &InvalidOutputError{Err: err}
	}
	return encoded, nil
}

// NewHandler adapts a typed function to the raw protocol contract using the
// JSON codec. New event shapes plug in through the type parameters alone.
func NewHandler[In, Out any](fn func(context.Context, In) (Out, error)) Handler {
	return NewHandlerWithCodec(fn, JSONCodec{})
}

// NewHandlerWithCodec is NewHandler with an explicit byte codec.
func NewHandlerWithCodec[In, Out any](fn func(context.Context, In) (Out, error), codec Codec) Handler {
	if fn == nil {
		panic("dispatch: nil handler function")
	}
	if codec == nil {
		codec = JSONCodec{}
	}
	return &typedHandler[In, Out]{fn: fn, codec: codec}
}
