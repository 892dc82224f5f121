// Package protocol validates and routes typed messages to the
// handler table supplied by the protocol code generator.
package protocol

import "fmt"

// Kind identifies the class of a protocol message.
type Kind int

// Message kinds. KindUnknown is the zero value and is never routed.
const (
	KindUnknown Kind = iota
	KindRequest
	KindResponse
	KindEvent
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	case KindEvent:
		return "event"
	}
	return "unknown"
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "request":
		return KindRequest, nil
	case "response":
		return KindResponse, nil
	case "event":
		return KindEvent, nil
	case "unknown":
		return KindUnknown, nil
	}
	return KindUnknown, fmt.Errorf("unknown message kind %q", s)
}

// Message is one typed protocol message. Payload is borrowed from the
// caller; the dispatcher never retains it beyond the call.
type Message struct {
	Kind    Kind
	ID      uint32
	Payload []byte
}
