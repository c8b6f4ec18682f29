package gateway

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Round trip: any byte body sent through encode and decoded back from the
// wire shape reproduces the original bytes exactly. Binary content must
// survive via base64; textual content must pass through as plain text.
func TestBodyRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(42)

	properties := gopter.NewProperties(parameters)

	properties.Property("arbitrary bodies round-trip losslessly", prop.ForAll(
		func(body []byte) bool {
			encoded, err := EncodeResponse(&Response{StatusCode: 200, Body: body})
			if err != nil {
				return false
			}

			var wire struct {
				Body            string `json:"body"`
				IsBase64Encoded bool   `json:"isBase64Encoded"`
			}
			if err := json.Unmarshal(encoded, &wire); err != nil {
				return false
			}

			var got []byte
			if wire.IsBase64Encoded {
				got, err = base64.StdEncoding.DecodeString(wire.Body)
				if err != nil {
					return false
				}
			} else {
				got = []byte(wire.Body)
			}
			if len(body) == 0 && len(got) == 0 {
				return true
			}
			return bytes.Equal(got, body)
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("invalid UTF-8 is always flagged base64", prop.ForAll(
		func(body []byte) bool {
			encoded, err := EncodeResponse(&Response{StatusCode: 200, Body: body})
			if err != nil {
				return false
			}
			var wire struct {
				IsBase64Encoded bool `json:"isBase64Encoded"`
			}
			if err := json.Unmarshal(encoded, &wire); err != nil {
				return false
			}
			if utf8.Valid(body) {
				return !wire.IsBase64Encoded
			}
			return wire.IsBase64Encoded
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
