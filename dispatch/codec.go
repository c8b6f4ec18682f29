package dispatch

import "encoding/json"

// Codec is the conversion capability the dispatch core is generic over:
// anything that can decode an input value from bytes and encode an output
// value to bytes plugs in without touching the core.
type Codec interface {
	Decode(data []byte, v interface{}) error
	Encode(v interface{}) ([]byte, error)
}

// JSONCodec is the default codec; the environment delivers UTF-8 JSON.
type JSONCodec struct{}

func (JSONCodec) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
