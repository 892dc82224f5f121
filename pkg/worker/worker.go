// Package worker contains the task exercising the firmware stack end
// to end: allocate a buffer, wrap it in a message, submit it through
// the dispatcher.
package worker

import (
	"context"

	"github.com/golang/glog"

	"github.com/embedsim/fwcore/pkg/mempool"
	"github.com/embedsim/fwcore/pkg/protocol"
)

// defaultAllocSize is the payload buffer size used when none is set.
const defaultAllocSize = 256

// Worker is the fork/join task spawned by the entry point.
type Worker struct {
	Pool       *mempool.Pool
	Dispatcher *protocol.Dispatcher
	AllocSize  int
}

// New creates a worker over pool and dispatcher.
func New(pool *mempool.Pool, dispatcher *protocol.Dispatcher) *Worker {
	return &Worker{Pool: pool, Dispatcher: dispatcher}
}

// Name implements run.Named.
func (w *Worker) Name() string {
	return "worker"
}

// Run implements run.Runnable. It runs to completion; the single
// fork/join pair of the firmware sequence has no cancellation.
func (w *Worker) Run(ctx context.Context) error {
	glog.Info("worker started")
	size := w.AllocSize
	if size == 0 {
		size = defaultAllocSize
	}
	buf, err := w.Pool.Alloc(size)
	if err != nil {
		glog.Errorf("buffer allocation failed: %v", err)
		return err
	}
	msg := &protocol.Message{
		Kind:    protocol.KindRequest,
		ID:      1,
		Payload: buf,
	}
	if err := w.Dispatcher.Send(msg); err != nil {
		return err
	}
	glog.Info("worker finished")
	return nil
}
