package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedsim/fwcore/pkg/protocol"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	msg := &protocol.Message{
		Kind:    protocol.KindRequest,
		ID:      42,
		Payload: []byte{1, 2, 3, 0xff},
	}
	data, err := Marshal(msg)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, msg.Kind, decoded.Kind)
	assert.Equal(t, msg.ID, decoded.ID)
	assert.Equal(t, msg.Payload, decoded.Payload)
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := Unmarshal([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.Error(t, err)
}
