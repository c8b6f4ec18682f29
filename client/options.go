package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/mohae/deepcopy"
)

// LambdaAPI is the slice of the Lambda service client the invoker uses.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	Region    string
	Qualifier string
	DebugMode bool

	// API overrides the constructed Lambda service client; used by tests.
	API LambdaAPI
}

var defaultOptions = &Options{
	Region:    "",
	Qualifier: "",
	DebugMode: false,
	API:       nil,
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

// WithRegion sets the region the Lambda client is built for.
func WithRegion(region string) Option {
	return OptionFunc(func(o *Options) {
		o.Region = region
	})
}

// WithQualifier pins invocations to a function version or alias.
func WithQualifier(qualifier string) Option {
	return OptionFunc(func(o *Options) {
		o.Qualifier = qualifier
	})
}

// WithDebugMode enables or disables debug logging.
func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}

// WithLambdaAPI injects a prebuilt Lambda service client.
func WithLambdaAPI(api LambdaAPI) Option {
	return OptionFunc(func(o *Options) {
		o.API = api
	})
}
