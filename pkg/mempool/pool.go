// Package mempool implements the fixed-size memory pool backing the
// firmware runtime. It is a bump allocator: allocations only advance
// an offset and are never individually reclaimed.
package mempool

import (
	"errors"
	"sync"

	"github.com/golang/glog"
)

// DefaultCapacity is the arena size used when none is configured.
const DefaultCapacity = 1 << 20 // 1 MiB

// alignment of every allocation, in bytes.
const alignment = 8

var (
	// ErrExhausted indicates the pool has no room left for the request.
	ErrExhausted = errors.New("memory pool exhausted")
	// ErrInvalidSize indicates a negative allocation size.
	ErrInvalidSize = errors.New("invalid allocation size")
)

// Pool is a fixed-capacity bump allocator over an owned arena.
// Allocations are 8-byte aligned and stay valid until the next Init
// or Cleanup, which are the only operations returning space.
type Pool struct {
	arena []byte
	used  int
	lock  sync.Mutex
}

// New creates a pool with the given capacity in bytes.
func New(capacity int) *Pool {
	return &Pool{arena: make([]byte, capacity)}
}

// NewDefault creates a pool with DefaultCapacity.
func NewDefault() *Pool {
	return New(DefaultCapacity)
}

// Init resets the pool to empty.
func (p *Pool) Init() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.used = 0
	glog.Infof("memory pool initialized (%d bytes)", len(p.arena))
	return nil
}

// Cleanup resets the pool to empty. Safe to call repeatedly.
func (p *Pool) Cleanup() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.used = 0
}

// Alloc carves size bytes out of the arena, rounding the consumed
// space up to 8-byte alignment. It never blocks; the only failure is
// ErrExhausted when the aligned size does not fit. The returned slice
// borrows the arena, its capacity is clipped to the aligned block.
func (p *Pool) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size > len(p.arena) {
		// an oversize request can never fit; checking before the
		// rounding also keeps it from overflowing
		return nil, ErrExhausted
	}
	aligned := (size + alignment - 1) &^ (alignment - 1)
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.used+aligned > len(p.arena) {
		return nil, ErrExhausted
	}
	buf := p.arena[p.used : p.used+size : p.used+aligned]
	p.used += aligned
	if glog.V(1) {
		pct := float64(p.used) / float64(len(p.arena)) * 100.0
		glog.Infof("allocated %d bytes (%.2f%% used)", size, pct)
	}
	return buf, nil
}

// Free is a no-op. Individual blocks are never reclaimed from a bump
// allocator; callers release space with Cleanup only.
func (p *Pool) Free(buf []byte) {
}

// Used returns the consumed offset including alignment padding.
func (p *Pool) Used() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.used
}

// Available returns the remaining arena space.
func (p *Pool) Available() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.arena) - p.used
}

// Capacity returns the arena size.
func (p *Pool) Capacity() int {
	return len(p.arena)
}
