// Package client invokes deployed functions synchronously and surfaces
// remote failures as the same error descriptions the runtime reports, so
// callers on both sides of the wire work with one failure shape.
package client

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/tidwall/gjson"

	"github.com/aura-studio/lambda-runtime/failure"
)

type Client struct {
	*Options
	api LambdaAPI
}

// NewClient builds an invoker. Without an injected API it loads the
// default AWS configuration, honoring WithRegion when set.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	options := NewOptions(opts...)

	api := options.API
	if api == nil {
		var loadOpts []func(*config.LoadOptions) error
		if options.Region != "" {
			loadOpts = append(loadOpts, config.WithRegion(options.Region))
		}
		cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("client: load AWS config: %w", err)
		}
		api = lambda.NewFromConfig(cfg)
	}

	return &Client{Options: options, api: api}, nil
}

// Call invokes the named function with the given payload and returns the
// success payload. A function-level failure comes back as a
// *failure.ErrorDescription error decoded from the remote report.
func (c *Client) Call(ctx context.Context, function string, payload []byte) ([]byte, error) {
	input := &lambda.InvokeInput{
		FunctionName: aws.String(function),
		Payload:      payload,
	}
	if c.Qualifier != "" {
		input.Qualifier = aws.String(c.Qualifier)
	}

	out, err := c.api.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("client: invoke %s: %w", function, err)
	}

	if out.FunctionError != nil {
		if c.DebugMode {
			log.Printf("[Client] Function error: function=%s kind=%s", function, *out.FunctionError)
		}
		return nil, decodeFailure(out.Payload)
	}

	return out.Payload, nil
}

// decodeFailure reconstructs an ErrorDescription from the error envelope a
// failed invocation returns.
func decodeFailure(payload []byte) *failure.ErrorDescription {
	desc := &failure.ErrorDescription{
		ErrorMessage: gjson.GetBytes(payload, "errorMessage").String(),
		ErrorType:    gjson.GetBytes(payload, "errorType").String(),
	}
	if desc.ErrorMessage == "" {
		desc.ErrorMessage = string(payload)
	}

	for _, frame := range gjson.GetBytes(payload, "stackTrace").Array() {
		desc.StackTrace = append(desc.StackTrace, &failure.StackFrame{
			Path:  frame.Get("path").String(),
			Line:  int32(frame.Get("line").Int()),
			Label: frame.Get("label").String(),
		})
	}
	return desc
}
