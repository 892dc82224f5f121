package link

// Parser consumes received bytes one at a time and yields complete
// frames. Invalid bytes drop the frame in progress and resync on the
// next delimiter.
type Parser struct {
	state   parseState
	frame   *Frame
	dataLen int
	recvLen int
}

type parseState int

const (
	stateSOF parseState = iota // hunting for the delimiter
	stateSeq
	stateCode
	stateLenHi
	stateLenLo
	stateData
)

// Reset returns the parser to hunting for a delimiter.
func (p *Parser) Reset() {
	p.state, p.frame = stateSOF, nil
}

// Receiving indicates a frame is partially received.
func (p *Parser) Receiving() bool {
	return p.state != stateSOF
}

// Parse consumes one byte. It returns a non-nil frame when the byte
// completes one.
func (p *Parser) Parse(b byte) *Frame {
	switch p.state {
	case stateSOF:
		if b == sof {
			p.state = stateSeq
		}
	case stateSeq:
		seq := Seq(b)
		if !seq.IsValid() {
			p.resync(b)
			return nil
		}
		p.frame = &Frame{Seq: seq}
		p.state = stateCode
	case stateCode:
		p.frame.Code = b
		p.state = stateLenHi
	case stateLenHi:
		if b >= 0x80 {
			p.resync(b)
			return nil
		}
		p.dataLen = int(b) << 8
		p.state = stateLenLo
	case stateLenLo:
		p.dataLen |= int(b)
		if p.dataLen == 0 {
			return p.done()
		}
		p.frame.Data = make([]byte, p.dataLen)
		p.recvLen = 0
		p.state = stateData
	case stateData:
		p.frame.Data[p.recvLen] = b
		p.recvLen++
		if p.recvLen == p.dataLen {
			return p.done()
		}
	}
	return nil
}

func (p *Parser) resync(b byte) {
	p.frame = nil
	if b == sof {
		p.state = stateSeq
	} else {
		p.state = stateSOF
	}
}

func (p *Parser) done() *Frame {
	f := p.frame
	p.frame = nil
	p.state = stateSOF
	return f
}
