package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec replaces Connect's built-in "json" codec, which only accepts
// protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// WithJSON selects the plain-struct JSON codec on a client or handler.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
