package run

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForkJoin(t *testing.T) {
	var ran int32
	err := NewRunner().Go(Func(func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})).Wait()
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&ran))
}

func TestWaitJoinsAll(t *testing.T) {
	var ran int32
	r := NewRunner()
	for i := 0; i < 4; i++ {
		r.Go(Func(func(ctx context.Context) error {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&ran, 1)
			return nil
		}))
	}
	require.NoError(t, r.Wait())
	assert.EqualValues(t, 4, atomic.LoadInt32(&ran))
}

func TestWaitAggregatesErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	err := NewRunner().
		Go(Func(func(ctx context.Context) error { return errA })).
		Go(Func(func(ctx context.Context) error { return nil })).
		Go(Func(func(ctx context.Context) error { return errB })).
		Wait()
	require.Error(t, err)
	agg, ok := err.(*AggregatedError)
	require.True(t, ok)
	assert.Len(t, agg.Errors, 2)
}

func TestSingleErrorUnwrapped(t *testing.T) {
	boom := errors.New("boom")
	err := NewRunner().
		Go(Func(func(ctx context.Context) error { return boom })).
		Wait()
	assert.Equal(t, boom, err)
}

func TestCanceledNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunnerWith(ctx).Go(Func(func(ctx context.Context) error {
		<-ctx.Done()
		return context.Canceled
	}))
	cancel()
	assert.NoError(t, r.Wait())
}

func TestNamedRun(t *testing.T) {
	r := NamedRun("worker", Func(func(ctx context.Context) error { return nil }))
	named, ok := r.(Named)
	require.True(t, ok)
	assert.Equal(t, "worker", named.Name())
}
