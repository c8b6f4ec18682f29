package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ResponseBuilder assembles a Response fluently:
//
//	resp, err := gateway.NewResponse().
//		Status(http.StatusCreated).
//		Header("Location", "/orders/42").
//		JSON(order).
//		Build()
type ResponseBuilder struct {
	resp Response
	err  error
}

// NewResponse starts a builder with status 200 and empty headers.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		resp: Response{
			StatusCode: http.StatusOK,
			Headers:    http.Header{},
		},
	}
}

// Status sets the HTTP status code.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.resp.StatusCode = code
	return b
}

// Header adds a header value; repeated calls for the same name accumulate
// into a multi-value header.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.resp.Headers.Add(name, value)
	return b
}

// Text sets a plain-text body.
func (b *ResponseBuilder) Text(body string) *ResponseBuilder {
	b.resp.Body = []byte(body)
	b.resp.IsBase64Encoded = false
	return b
}

// JSON marshals v as the body and sets the content type.
func (b *ResponseBuilder) JSON(v interface{}) *ResponseBuilder {
	body, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("gateway: marshal JSON body: %w", err)
		return b
	}
	b.resp.Body = body
	b.resp.IsBase64Encoded = false
	b.resp.Headers.Set("Content-Type", "application/json")
	return b
}

// Binary sets a byte body that must be base64-encoded on the wire,
// regardless of whether it happens to be valid UTF-8.
func (b *ResponseBuilder) Binary(body []byte) *ResponseBuilder {
	b.resp.Body = body
	b.resp.IsBase64Encoded = true
	return b
}

// Build returns the assembled response, or the first error recorded by a
// builder step.
func (b *ResponseBuilder) Build() (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &b.resp, nil
}
