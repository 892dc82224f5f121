package drivers

import (
	"github.com/golang/glog"

	"github.com/embedsim/fwcore/pkg/system"
)

// rxFill is the fill byte of simulated full-duplex receives.
const rxFill byte = 0xff

// Mode selects the SPI clock polarity and phase.
type Mode uint8

// SPI modes.
const (
	Mode0 Mode = iota
	Mode1
	Mode2
	Mode3
)

// SPI is a simulated full-duplex bus.
type SPI struct {
	sys         *system.System
	clockHz     uint32
	mode        Mode
	initialized bool
	csActive    bool
}

// NewSPI creates an uninitialized SPI bus. Construction never fails.
func NewSPI(sys *system.System, clockHz uint32, mode Mode) *SPI {
	return &SPI{sys: sys, clockHz: clockHz, mode: mode}
}

// Init brings the bus up. It fails closed, with no state change,
// unless the system status is OK.
func (s *SPI) Init() bool {
	if s.sys.Status() != system.StatusOK {
		return false
	}
	glog.Infof("spi initialized at %d Hz, mode %d", s.clockHz, s.mode)
	s.initialized = true
	return true
}

// Initialized reports whether Init has succeeded.
func (s *SPI) Initialized() bool {
	return s.initialized
}

// Transfer simulates a full-duplex exchange. An initialized bus
// returns a receive buffer of the same length as tx; an uninitialized
// one returns an empty result.
func (s *SPI) Transfer(tx []byte) []byte {
	if !s.initialized {
		return nil
	}
	rx := make([]byte, len(tx))
	for i := range rx {
		rx[i] = rxFill
	}
	glog.V(2).Infof("spi transfer: %d bytes", len(tx))
	return rx
}

// SetCS records the chip-select state. There is no hardware
// precondition, so this never fails.
func (s *SPI) SetCS(active bool) {
	s.csActive = active
	glog.V(2).Infof("spi cs: %v", active)
}

// CS reports the recorded chip-select state.
func (s *SPI) CS() bool {
	return s.csActive
}

// Close releases the bus.
func (s *SPI) Close() {
	if s.initialized {
		glog.V(1).Info("spi closed")
		s.initialized = false
	}
}
