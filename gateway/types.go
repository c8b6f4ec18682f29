// Package gateway adapts the environment's HTTP-proxy invocation shape to a
// generic request/response abstraction, so handlers work with ordinary
// methods, headers and byte bodies instead of the proxy wire format.
package gateway

import (
	"net/http"
	"net/url"
)

// Request is the generic view of one proxied HTTP request.
// Body holds the decoded bytes: when the wire event was base64-encoded the
// decoding has already happened, and IsBase64Encoded records that fact.
type Request struct {
	Method          string
	Path            string
	PathParameters  map[string]string
	QueryParameters url.Values
	Headers         http.Header
	Body            []byte
	IsBase64Encoded bool
}

// Header returns the first value for the named header, case-insensitively.
func (r *Request) Header(name string) string {
	return r.Headers.Get(name)
}

// Query returns the first value for the named query parameter.
func (r *Request) Query(name string) string {
	return r.QueryParameters.Get(name)
}

// Response is the generic view of the handler's HTTP answer. Setting
// IsBase64Encoded forces binary encoding on the wire even for textual
// bodies; otherwise the adapter decides based on the body content.
type Response struct {
	StatusCode      int
	Headers         http.Header
	Body            []byte
	IsBase64Encoded bool
}

// proxyRequest is the upstream wire shape. The upstream format is
// inconsistent about fields documented as always-present: any of them may
// arrive as null or "". Plain Go strings and maps absorb both without a
// decode error, with the zero value uniformly meaning "absent".
type proxyRequest struct {
	Resource                        string              `json:"resource"`
	Path                            string              `json:"path"`
	HTTPMethod                      string              `json:"httpMethod"`
	Headers                         map[string]string   `json:"headers"`
	MultiValueHeaders               map[string][]string `json:"multiValueHeaders"`
	QueryStringParameters           map[string]string   `json:"queryStringParameters"`
	MultiValueQueryStringParameters map[string][]string `json:"multiValueQueryStringParameters"`
	PathParameters                  map[string]string   `json:"pathParameters"`
	Body                            string              `json:"body"`
	IsBase64Encoded                 bool                `json:"isBase64Encoded"`
}

// proxyResponse is the wire shape reported back to the environment. Both
// header maps are emitted; gateways that understand multi-value headers
// prefer MultiValueHeaders.
type proxyResponse struct {
	StatusCode        int                 `json:"statusCode"`
	Headers           map[string]string   `json:"headers,omitempty"`
	MultiValueHeaders map[string][]string `json:"multiValueHeaders,omitempty"`
	Body              string              `json:"body"`
	IsBase64Encoded   bool                `json:"isBase64Encoded"`
}
