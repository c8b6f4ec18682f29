package runtime

import "github.com/mohae/deepcopy"

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	DebugMode bool
	// StackTrace, when non-nil, overrides the LAMBDA_RUNTIME_TRACE
	// environment opt-in for stack-trace capture.
	StackTrace *bool
}

var defaultOptions = &Options{
	DebugMode:  false,
	StackTrace: nil,
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

// WithDebugMode enables or disables debug logging.
func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}

// WithStackTrace forces stack-trace capture on or off, overriding the
// environment opt-in.
func WithStackTrace(enabled bool) Option {
	return OptionFunc(func(o *Options) {
		o.StackTrace = &enabled
	})
}
