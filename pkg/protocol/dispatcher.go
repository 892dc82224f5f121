package protocol

import (
	"sync"

	"github.com/golang/glog"
)

// Handlers is the capability table supplied by the protocol code
// generator. Handler return codes are opaque to the dispatcher and
// propagated unchanged. Nil entries act as accept-and-succeed.
type Handlers struct {
	Init     func()
	Request  func(id uint32, payload []byte) int
	Response func(id uint32, payload []byte) int
	Event    func(id uint32, payload []byte) int
	Cleanup  func()
}

// Transport carries an outbound message. A dispatcher without a
// transport simulates transmission by logging; this is the seam where
// a real link plugs in.
type Transport interface {
	Transmit(*Message) error
}

// Dispatcher routes typed messages to the registered handler table.
// It refuses to operate before Init registers the table.
type Dispatcher struct {
	Transport Transport

	lock        sync.Mutex
	initialized bool
	handlers    Handlers
}

// New creates an uninitialized dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Init registers the handler table and runs its Init hook. Calling
// Init on an already initialized dispatcher is a no-op.
func (d *Dispatcher) Init(h Handlers) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.initialized {
		return
	}
	glog.Info("protocol dispatcher initializing")
	if h.Init != nil {
		h.Init()
	}
	d.handlers = h
	d.initialized = true
}

// Initialized reports whether Init has run without a later Cleanup.
func (d *Dispatcher) Initialized() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.initialized
}

// Handle routes msg to the handler for its kind and returns the
// handler code unchanged.
func (d *Dispatcher) Handle(msg *Message) (int, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if !d.initialized || msg == nil {
		return 0, ErrNotInitialized
	}
	glog.V(1).Infof("handling message: kind=%s id=%d size=%d",
		msg.Kind, msg.ID, len(msg.Payload))
	switch msg.Kind {
	case KindRequest:
		return d.invoke(d.handlers.Request, msg), nil
	case KindResponse:
		return d.invoke(d.handlers.Response, msg), nil
	case KindEvent:
		return d.invoke(d.handlers.Event, msg), nil
	}
	glog.Warningf("unknown message kind: %d", int(msg.Kind))
	return 0, &UnrecognizedKindError{Kind: msg.Kind}
}

func (d *Dispatcher) invoke(h func(uint32, []byte) int, msg *Message) int {
	if h == nil {
		return 0
	}
	return h(msg.ID, msg.Payload)
}

// Send validates msg and hands it to the transport. Without a
// transport the transmission is simulated and reported successful.
func (d *Dispatcher) Send(msg *Message) error {
	d.lock.Lock()
	if !d.initialized || msg == nil {
		d.lock.Unlock()
		return ErrNotInitialized
	}
	t := d.Transport
	d.lock.Unlock()
	glog.V(1).Infof("sending message: kind=%s id=%d size=%d",
		msg.Kind, msg.ID, len(msg.Payload))
	if t == nil {
		return nil
	}
	return t.Transmit(msg)
}

// Cleanup tears down the handler table and clears the initialized
// flag. Safe to call without a prior Init.
func (d *Dispatcher) Cleanup() {
	d.lock.Lock()
	defer d.lock.Unlock()
	if !d.initialized {
		return
	}
	if d.handlers.Cleanup != nil {
		d.handlers.Cleanup()
	}
	d.handlers = Handlers{}
	d.initialized = false
}
