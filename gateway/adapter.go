package gateway

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"unicode/utf8"
)

// DecodeRequest parses a proxy invocation body into the generic Request.
//
// Header and query collections are reconciled from the wire format's two
// maps: the multi-value form wins, the single-value form only fills names
// the multi-value map does not carry.
func DecodeRequest(raw []byte) (*Request, error) {
	var wire proxyRequest
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("gateway: decode proxy request: %w", err)
	}

	req := &Request{
		Method:          wire.HTTPMethod,
		Path:            wire.Path,
		PathParameters:  wire.PathParameters,
		QueryParameters: mergeQuery(wire.MultiValueQueryStringParameters, wire.QueryStringParameters),
		Headers:         mergeHeaders(wire.MultiValueHeaders, wire.Headers),
		IsBase64Encoded: wire.IsBase64Encoded,
	}
	if req.PathParameters == nil {
		req.PathParameters = map[string]string{}
	}

	if wire.Body != "" {
		if wire.IsBase64Encoded {
			body, err := base64.StdEncoding.DecodeString(wire.Body)
			if err != nil {
				return nil, fmt.Errorf("gateway: decode base64 body: %w", err)
			}
			req.Body = body
		} else {
			req.Body = []byte(wire.Body)
		}
	}

	return req, nil
}

// mergeHeaders reconciles the wire format's two header maps, preferring the
// multi-value form. Names go through http.Header so lookups stay
// case-insensitive regardless of which map supplied them.
func mergeHeaders(multi map[string][]string, single map[string]string) http.Header {
	merged := http.Header{}
	for name, values := range multi {
		for _, v := range values {
			merged.Add(name, v)
		}
	}
	for name, value := range single {
		if len(merged.Values(name)) == 0 {
			merged.Add(name, value)
		}
	}
	return merged
}

// mergeQuery reconciles the two query-parameter maps the same way, but
// keeps names verbatim: query parameters are case-sensitive.
func mergeQuery(multi map[string][]string, single map[string]string) url.Values {
	merged := url.Values{}
	for name, values := range multi {
		merged[name] = append([]string(nil), values...)
	}
	for name, value := range single {
		if _, ok := merged[name]; !ok {
			merged.Set(name, value)
		}
	}
	return merged
}

// EncodeResponse serializes the generic Response into the proxy wire shape.
//
// Body policy: a body that is valid UTF-8 is emitted as plain text unless
// the handler explicitly requested binary encoding; anything else is
// base64-encoded with the flag set, so arbitrary byte content round-trips
// without corruption.
func EncodeResponse(resp *Response) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("gateway: nil response")
	}

	wire := proxyResponse{
		StatusCode: resp.StatusCode,
	}
	if wire.StatusCode == 0 {
		wire.StatusCode = http.StatusOK
	}

	if len(resp.Headers) > 0 {
		wire.Headers = make(map[string]string, len(resp.Headers))
		wire.MultiValueHeaders = make(map[string][]string, len(resp.Headers))
		for name, values := range resp.Headers {
			if len(values) == 0 {
				continue
			}
			wire.Headers[name] = values[0]
			wire.MultiValueHeaders[name] = values
		}
	}

	if resp.IsBase64Encoded || !utf8.Valid(resp.Body) {
		wire.Body = base64.StdEncoding.EncodeToString(resp.Body)
		wire.IsBase64Encoded = true
	} else {
		wire.Body = string(resp.Body)
	}

	encoded, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("gateway: encode proxy response: %w", err)
	}
	return encoded, nil
}
