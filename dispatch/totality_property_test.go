package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Totality: for any payload, Dispatch produces exactly one of Success or
// Failure — never both, never neither — even when the handler errors or
// panics on the way.
func TestDispatchTotalityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(42)

	properties := gopter.NewProperties(parameters)

	type in struct {
		Mode string `json:"mode"`
	}
	h := NewHandler(func(ctx context.Context, req in) (string, error) {
		switch req.Mode {
		case "error":
			return "", errors.New("requested error")
		case "panic":
			panic("requested panic")
		default:
			return req.Mode, nil
		}
	})

	properties.Property("exactly one of payload or failure", prop.ForAll(
		func(payload []byte) bool {
			res := Dispatch(context.Background(), h, payload)
			if res == nil {
				return false
			}
			if res.Failure != nil {
				// A failure result never carries a success payload.
				return res.Payload == nil
			}
			return true
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("well-formed inputs always succeed", prop.ForAll(
		func(mode string) bool {
			if mode == "error" || mode == "panic" {
				return true
			}
			payload := []byte(`{"mode":` + quote(mode) + `}`)
			res := Dispatch(context.Background(), h, payload)
			return res.OK()
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func quote(s string) string {
	b, _ := JSONCodec{}.Encode(s)
	return string(b)
}
