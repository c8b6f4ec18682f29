// Package transport implements the client side of the runtime API: a
// blocking poll for the next invocation and the success/failure report
// calls. There are no local retries; a transport error is propagated
// immediately, since the hosting environment recycles the whole process on
// persistent transport failure.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aura-studio/lambda-runtime/failure"
	"github.com/aura-studio/lambda-runtime/invocation"
)

// EnvEndpoint is the environment variable carrying the runtime API
// host[:port], set by the execution environment before the process starts.
const EnvEndpoint = "AWS_LAMBDA_RUNTIME_API"

const apiVersion = "2018-06-01"

const (
	headerRequestID       = "Lambda-Runtime-Aws-Request-Id"
	headerDeadlineMS      = "Lambda-Runtime-Deadline-Ms"
	headerFunctionARN     = "Lambda-Runtime-Invoked-Function-Arn"
	headerTraceID         = "Lambda-Runtime-Trace-Id"
	headerClientContext   = "Lambda-Runtime-Client-Context"
	headerCognitoIdentity = "Lambda-Runtime-Cognito-Identity"
	headerErrorType       = "Lambda-Runtime-Function-Error-Type"
)

const contentTypeJSON = "application/json"

// Client speaks the runtime API over plain HTTP against a fixed local
// endpoint. The zero http.Client timeout is deliberate: the next-invocation
// poll blocks for as long as the environment keeps the connection open.
type Client struct {
	*Options
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a runtime API client from options, falling back to the
// AWS_LAMBDA_RUNTIME_API environment variable for the endpoint.
func NewClient(opts ...Option) (*Client, error) {
	options := NewOptions(opts...)

	endpoint := options.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv(EnvEndpoint)
	}
	if endpoint == "" {
		return nil, fmt.Errorf("transport: runtime API endpoint is not set (%s)", EnvEndpoint)
	}

	return &Client{
		Options:    options,
		baseURL:    fmt.Sprintf("http://%s/%s/runtime", endpoint, apiVersion),
		httpClient: &http.Client{},
	}, nil
}

// PollNext blocks until the environment delivers the next invocation or the
// underlying connection fails. There is no timeout on this call by design;
// the environment manages inter-invocation idle time.
func (c *Client) PollNext(ctx context.Context) (*invocation.Invocation, error) {
	url := c.baseURL + "/invocation/next"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: build poll request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: poll next invocation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read invocation body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transport: poll next invocation: unexpected status %d: %s", resp.StatusCode, body)
	}

	inv, err := parseInvocation(resp.Header, body)
	if err != nil {
		return nil, err
	}

	if c.DebugMode {
		log.Printf("[Transport] Invocation: id=%s deadline=%s", inv.RequestID, inv.Deadline)
	}
	return inv, nil
}

// parseInvocation assembles an Invocation from poll response headers and
// body. Header lookup goes through http.Header and is case-insensitive.
func parseInvocation(header http.Header, body []byte) (*invocation.Invocation, error) {
	requestID := header.Get(headerRequestID)
	if requestID == "" {
		return nil, fmt.Errorf("transport: poll response missing %s header", headerRequestID)
	}

	inv := &invocation.Invocation{
		RequestID:          requestID,
		InvokedFunctionARN: header.Get(headerFunctionARN),
		TraceID:            header.Get(headerTraceID),
		Payload:            body,
	}

	if ms := header.Get(headerDeadlineMS); ms != "" {
		deadline, err := strconv.ParseInt(ms, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("transport: invalid %s header %q: %w", headerDeadlineMS, ms, err)
		}
		inv.Deadline = time.UnixMilli(deadline)
	}

	if cc := header.Get(headerClientContext); cc != "" {
		inv.ClientContext = &invocation.ClientContext{}
		if err := json.Unmarshal([]byte(cc), inv.ClientContext); err != nil {
			return nil, fmt.Errorf("transport: invalid %s header: %w", headerClientContext, err)
		}
	}

	if ci := header.Get(headerCognitoIdentity); ci != "" {
		inv.Identity = &invocation.CognitoIdentity{}
		if err := json.Unmarshal([]byte(ci), inv.Identity); err != nil {
			return nil, fmt.Errorf("transport: invalid %s header: %w", headerCognitoIdentity, err)
		}
	}

	return inv, nil
}

// ReportSuccess posts the success payload for the given invocation.
func (c *Client) ReportSuccess(ctx context.Context, requestID string, payload []byte) error {
	url := fmt.Sprintf("%s/invocation/%s/response", c.baseURL, requestID)
	if c.DebugMode {
		log.Printf("[Transport] Report success: id=%s bytes=%d", requestID, len(payload))
	}
	return c.post(ctx, url, payload, "")
}

// ReportFailure posts the failure report for the given invocation.
func (c *Client) ReportFailure(ctx context.Context, requestID string, desc *failure.ErrorDescription) error {
	url := fmt.Sprintf("%s/invocation/%s/error", c.baseURL, requestID)
	body, err := json.Marshal(desc)
	if err != nil {
		return fmt.Errorf("transport: marshal error description: %w", err)
	}
	if c.DebugMode {
		log.Printf("[Transport] Report failure: id=%s type=%s", requestID, desc.ErrorType)
	}
	return c.post(ctx, url, body, desc.ErrorType)
}

// ReportInitError reports a failure that happened before the first poll,
// e.g. handler registration problems.
func (c *Client) ReportInitError(ctx context.Context, desc *failure.ErrorDescription) error {
	url := c.baseURL + "/init/error"
	body, err := json.Marshal(desc)
	if err != nil {
		return fmt.Errorf("transport: marshal error description: %w", err)
	}
	return c.post(ctx, url, body, desc.ErrorType)
}

// post sends a report call. Any non-2xx answer (including an unknown or
// mismatched request id) is a protocol violation and therefore fatal to the
// caller; the body is included for diagnosis.
func (c *Client) post(ctx context.Context, url string, payload []byte, errorType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("transport: build report request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	if errorType != "" {
		req.Header.Set(headerErrorType, errorType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("transport: report call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("transport: report call rejected: status %d: %s", resp.StatusCode, body)
	}
	// Drain so the connection can be reused for the next poll.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
