package emulator

import (
	"time"

	"github.com/mohae/deepcopy"
)

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	Address         string
	FunctionName    string
	FunctionTimeout time.Duration
	DebugMode       bool
}

var defaultOptions = &Options{
	Address:         ":9001",
	FunctionName:    "function",
	FunctionTimeout: 30 * time.Second,
	DebugMode:       false,
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

// WithAddress sets the listen address.
func WithAddress(address string) Option {
	return OptionFunc(func(o *Options) {
		o.Address = address
	})
}

// WithFunctionName sets the function name used in invocation ARNs.
func WithFunctionName(name string) Option {
	return OptionFunc(func(o *Options) {
		o.FunctionName = name
	})
}

// WithFunctionTimeout sets the per-invocation deadline window.
func WithFunctionTimeout(d time.Duration) Option {
	return OptionFunc(func(o *Options) {
		o.FunctionTimeout = d
	})
}

// WithDebugMode enables or disables debug logging.
func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}
