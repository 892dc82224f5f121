package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized indicates Handle or Send ran before Init, or
	// the message was absent.
	ErrNotInitialized = errors.New("protocol not initialized")
)

// UnrecognizedKindError indicates a message kind outside the known
// set. No handler is invoked for such messages.
type UnrecognizedKindError struct {
	Kind Kind
}

// Error implements error.
func (e *UnrecognizedKindError) Error() string {
	return fmt.Sprintf("unrecognized message kind: %d", int(e.Kind))
}
