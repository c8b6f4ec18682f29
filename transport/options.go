package transport

import "github.com/mohae/deepcopy"

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	// Endpoint is the host[:port] of the runtime API. When empty, it is
	// resolved from the AWS_LAMBDA_RUNTIME_API environment variable.
	Endpoint  string
	DebugMode bool
}

var defaultOptions = &Options{
	Endpoint:  "",
	DebugMode: false,
}

func NewOptions(opts ...Option) *Options {
	options := deepcopy.Copy(defaultOptions).(*Options)
	options.init(opts...)
	return options
}

func (o *Options) init(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
}

// WithEndpoint overrides the runtime API endpoint (host[:port]).
func WithEndpoint(endpoint string) Option {
	return OptionFunc(func(o *Options) {
		o.Endpoint = endpoint
	})
}

// WithDebugMode enables or disables debug logging.
func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}
