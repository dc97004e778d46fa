package transport

import (
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype used by the escrow service.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

var marshaler = &gwruntime.JSONBuiltin{}

// jsonCodec carries plain Go messages over gRPC as JSON.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return marshaler.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return marshaler.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}
