// Package drivers contains the simulated peripheral drivers. Every
// driver is constructed uninitialized and becomes operational only
// after Init succeeds, which requires the owning system to report
// StatusOK.
package drivers

import (
	"github.com/golang/glog"

	"github.com/embedsim/fwcore/pkg/system"
)

// rxByte is the dummy byte produced by simulated receives.
const rxByte byte = 0x42

// UART is a simulated serial port.
type UART struct {
	sys         *system.System
	baudRate    uint32
	initialized bool
}

// NewUART creates an uninitialized UART. Construction never fails.
func NewUART(sys *system.System, baudRate uint32) *UART {
	return &UART{sys: sys, baudRate: baudRate}
}

// Init brings the port up. It fails closed, with no state change,
// unless the system status is OK.
func (u *UART) Init() bool {
	if u.sys.Status() != system.StatusOK {
		return false
	}
	glog.Infof("uart initialized at %d baud", u.baudRate)
	u.initialized = true
	return true
}

// Initialized reports whether Init has succeeded.
func (u *UART) Initialized() bool {
	return u.initialized
}

// Send reports len(data) as transmitted, or -1 when uninitialized.
func (u *UART) Send(data []byte) int {
	if !u.initialized {
		return -1
	}
	glog.V(2).Infof("uart sending %d bytes", len(data))
	return len(data)
}

// SendString sends the byte representation of s.
func (u *UART) SendString(s string) int {
	return u.Send([]byte(s))
}

// Receive fills at most one simulated byte into buf. It returns the
// number of bytes received, or -1 when uninitialized.
func (u *UART) Receive(buf []byte) int {
	if !u.initialized {
		return -1
	}
	if len(buf) == 0 {
		return 0
	}
	buf[0] = rxByte
	return 1
}

// Close releases the port.
func (u *UART) Close() {
	if u.initialized {
		glog.V(1).Info("uart closed")
		u.initialized = false
	}
}
