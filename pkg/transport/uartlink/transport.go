// Package uartlink frames outbound protocol messages over a
// simulated UART.
package uartlink

import (
	"errors"

	"github.com/embedsim/fwcore/pkg/drivers"
	"github.com/embedsim/fwcore/pkg/link"
	"github.com/embedsim/fwcore/pkg/protocol"
	"github.com/embedsim/fwcore/pkg/protocol/wire"
)

// ErrSendFailed indicates the UART rejected the frame.
var ErrSendFailed = errors.New("uart send failed")

// Transport sends encoded envelopes as link frames over a UART. The
// frame code carries the message kind.
type Transport struct {
	uart *drivers.UART
	seq  link.Seq
}

// New creates a transport over uart.
func New(uart *drivers.UART) *Transport {
	return &Transport{uart: uart, seq: link.NewSeq()}
}

// Transmit implements protocol.Transport.
func (t *Transport) Transmit(msg *protocol.Message) error {
	data, err := wire.Marshal(msg)
	if err != nil {
		return err
	}
	frame := &link.Frame{Seq: t.seq, Code: byte(msg.Kind), Data: data}
	b, err := frame.Bytes()
	if err != nil {
		return err
	}
	if t.uart.Send(b) < 0 {
		return ErrSendFailed
	}
	t.seq = t.seq.Next()
	return nil
}
