// Package wire provides the serialized envelope exchanged with
// transports.
package wire

import (
	"github.com/golang/protobuf/proto"

	"github.com/embedsim/fwcore/pkg/protocol"
)

// Envelope wraps a protocol message for transmission. The field
// layout mirrors the envelope definition in protocol.proto.
type Envelope struct {
	Kind    uint32 `protobuf:"varint,1,opt,name=kind"`
	Id      uint32 `protobuf:"varint,2,opt,name=id"`
	Payload []byte `protobuf:"bytes,3,opt,name=payload"`
}

// Reset implements proto.Message.
func (m *Envelope) Reset() { *m = Envelope{} }

// String implements proto.Message.
func (m *Envelope) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Envelope) ProtoMessage() {}

// Marshal encodes msg into envelope bytes.
func Marshal(msg *protocol.Message) ([]byte, error) {
	env := &Envelope{
		Kind:    uint32(msg.Kind),
		Id:      msg.ID,
		Payload: msg.Payload,
	}
	return proto.Marshal(env)
}

// Unmarshal decodes envelope bytes back into a protocol message.
func Unmarshal(data []byte) (*protocol.Message, error) {
	var env Envelope
	if err := proto.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &protocol.Message{
		Kind:    protocol.Kind(env.Kind),
		ID:      env.Id,
		Payload: env.Payload,
	}, nil
}
