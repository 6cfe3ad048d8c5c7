// Package claimsapi defines the claims.v1 wire messages and the Connect
// handlers and clients that carry them.
//
// Messages are plain Go structs encoded as JSON. Handlers and clients are
// constructed with Codec so no protobuf code generation is involved; the
// JSON field names are the public contract.
package claimsapi

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// CodecName is the content sub-type the services speak.
const CodecName = "json"

// Codec marshals claims.v1 messages with encoding/json.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
