// Package system owns the firmware lifecycle: it initializes and
// tears down the memory pool and exposes the health status that
// drivers and the dispatcher gate on.
package system

import (
	"errors"
	"sync"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/embedsim/fwcore/pkg/config"
)

// Version and BuildType identify the firmware build. Override at link
// time with -ldflags "-X ...".
var (
	Version   = "1.0.0"
	BuildType = "debug"
)

var (
	// ErrSubsystemInit indicates a subsystem failed during Init.
	ErrSubsystemInit = errors.New("subsystem initialization failed")
	// ErrNeedsShutdown indicates Init ran while in StatusError; only
	// Shutdown clears the error state.
	ErrNeedsShutdown = errors.New("system in error state, shutdown required")
	// ErrNilConfig indicates ApplyConfig received no configuration.
	ErrNilConfig = errors.New("nil config")
)

// MemoryPool is the allocator lifecycle owned by the System.
type MemoryPool interface {
	Init() error
	Cleanup()
}

// System is the lifecycle manager. It is passed explicitly to
// dependent components instead of living in process-wide state, so
// independent instances can coexist.
type System struct {
	lock     sync.RWMutex
	status   Status
	pool     MemoryPool
	debug    bool
	deviceID string
}

// New creates a System owning the pool. The status starts as
// StatusUninitialized until Init runs.
func New(pool MemoryPool) *System {
	return &System{pool: pool}
}

// Init brings the system to StatusOK, initializing the memory pool on
// the way. A pool failure leaves the system in StatusError; Init
// refuses to run again until Shutdown clears the error state.
func (s *System) Init() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.status == StatusError {
		return ErrNeedsShutdown
	}
	glog.Infof("system initializing (version %s)", Version)
	if err := s.pool.Init(); err != nil {
		glog.Errorf("memory pool init failed: %v", err)
		s.status = StatusError
		return ErrSubsystemInit
	}
	s.status = StatusOK
	return nil
}

// Shutdown tears down the memory pool and resets the status. It
// always succeeds, from any state, and is idempotent.
func (s *System) Shutdown() {
	s.lock.Lock()
	defer s.lock.Unlock()
	glog.Info("system shutting down")
	s.pool.Cleanup()
	s.status = StatusOK
}

// Status returns the current status. Pure read, no transition.
func (s *System) Status() Status {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.status
}

// ApplyConfig applies runtime settings from the loaded configuration.
func (s *System) ApplyConfig(cfg *config.Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.debug = cfg.Firmware.DebugMode
	glog.Infof("debug mode: %v", s.debug)
	return nil
}

// Debug reports whether debug mode was configured.
func (s *System) Debug() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.debug
}

// DeviceID returns a stable identifier of the host running the
// simulated firmware.
func (s *System) DeviceID() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.deviceID == "" {
		id, err := machineid.ID()
		if err != nil {
			glog.Warningf("machine id unavailable: %v", err)
			id = "unknown"
		}
		s.deviceID = id
	}
	return s.deviceID
}
