// Package json is the single JSON entry point of the module. It is backed by
// sonic configured for encoding/json compatibility, so struct tags, omitempty
// and map key ordering behave exactly like the standard library.
package json

import (
	stdjson "encoding/json"
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// RawMessage is a raw encoded JSON value, decoded later by the caller.
type RawMessage = stdjson.RawMessage

// Marshal returns the JSON encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalIndent is like Marshal but applies indent to format the output.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v interface{}) error {
	return api.Unmarshal(data, v)
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return api.Valid(data)
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) sonic.Encoder {
	return api.NewEncoder(w)
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) sonic.Decoder {
	return api.NewDecoder(r)
}
