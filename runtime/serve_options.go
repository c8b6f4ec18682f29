package runtime

import "github.com/aura-studio/lambda-runtime/transport"

type ServeOption interface {
	apply(*serveOptionBag)
}

type serveOptionBag struct {
	runtime   []Option
	transport []transport.Option
}

func (b *serveOptionBag) apply(opts ...ServeOption) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(b)
		}
	}
}

type runtimeServeOption struct{ opt Option }

func (o runtimeServeOption) apply(b *serveOptionBag) {
	if o.opt != nil {
		b.runtime = append(b.runtime, o.opt)
	}
}

type transportServeOption struct{ opt transport.Option }

func (o transportServeOption) apply(b *serveOptionBag) {
	if o.opt != nil {
		b.transport = append(b.transport, o.opt)
	}
}

// RT wraps a runtime option for Serve/Start.
func RT(opt Option) ServeOption { return runtimeServeOption{opt: opt} }

// TP wraps a transport option for Serve/Start.
func TP(opt transport.Option) ServeOption { return transportServeOption{opt: opt} }
