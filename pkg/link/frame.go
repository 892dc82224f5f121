// Package link implements the byte-level framing used over the
// simulated serial ports. A frame is a delimiter byte, a sequence
// number, a code byte, a 2-byte big-endian length, and the data.
package link

import (
	"errors"
	"time"
)

const (
	// sof delimits the start of every frame.
	sof byte = 0x7e
	// maxDataLen bounds the frame data; the high bit of the first
	// length byte is reserved.
	maxDataLen = 0x7fff
	// seqLimit is the first invalid sequence value. Values at or
	// above it are reserved for control bytes like sof.
	seqLimit byte = 0x70
)

// ErrOversize indicates frame data beyond the length field range.
var ErrOversize = errors.New("frame data too large")

// Seq is a frame sequence number. Valid values are 1..0x6f.
type Seq byte

// NewSeq creates a starting sequence number.
func NewSeq() Seq {
	return Seq(byte(time.Now().UnixNano())).Next()
}

// Next calculates the next sequence number.
func (s Seq) Next() Seq {
	n := byte(s) + 1
	if n == 0 || n >= seqLimit {
		n = 1
	}
	return Seq(n)
}

// IsValid checks if it's a valid sequence number.
func (s Seq) IsValid() bool {
	n := byte(s)
	return n > 0 && n < seqLimit
}

// Frame is one framed message on the link.
type Frame struct {
	Seq  Seq
	Code byte
	Data []byte
}

// Bytes returns the encoded frame.
func (f *Frame) Bytes() ([]byte, error) {
	if len(f.Data) > maxDataLen {
		return nil, ErrOversize
	}
	b := make([]byte, 0, len(f.Data)+5)
	b = append(b, sof, byte(f.Seq), f.Code,
		byte(len(f.Data)>>8), byte(len(f.Data)))
	return append(b, f.Data...), nil
}
