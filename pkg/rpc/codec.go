// Package rpc holds the wire contracts of the four backends together with
// their gRPC service descriptors, client stubs and server interfaces.
//
// Messages travel in protobuf wire format. The contracts live in proto/ and
// each message here encodes itself field by field with protowire, so the
// codec below replaces the default "proto" codec: contract messages use
// their own encoding and everything else (health checks, reflection) falls
// through to the protobuf runtime.
package rpc

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
)

const codecName = "proto"

type wireMessage interface {
	appendWire(b []byte) []byte
	consumeWire(b []byte) error
}

type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case wireMessage:
		return m.appendWire(nil), nil
	case proto.Message:
		return proto.Marshal(m)
	default:
		return nil, fmt.Errorf("rpc: cannot marshal %T", v)
	}
}

func (codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case wireMessage:
		return m.consumeWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	default:
		return fmt.Errorf("rpc: cannot unmarshal into %T", v)
	}
}

func (codec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(codec{})
}
