package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec serializes the hand-authored schema structs. Registering it under
// the "json" name makes handlers answer application/json Connect requests,
// which also keeps the API curl-able.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		// Empty request bodies decode to the zero message.
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithCodec returns the Connect option that installs the schema codec. Both
// handlers and clients must use it.
func WithCodec() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
