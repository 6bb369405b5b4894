package workerpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

// ErrPoolClosed is returned when submitting to a released pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool is the process-wide bounded worker pool for external-capability calls.
// All concurrent document analyses share one Pool, so no single document can
// claim more than the configured capacity. Submission blocks until a slot is
// free (FIFO admission), unless the caller's context is cancelled first.
type Pool struct {
	pool      *ants.Pool
	closed    atomic.Bool
	submitted atomic.Int64
	completed atomic.Int64
	panics    atomic.Int64
}

// New creates a pool with the given capacity (concurrent goroutine limit).
func New(capacity int) (*Pool, error) {
	p := &Pool{}

	inner, err := ants.NewPool(capacity,
		ants.WithExpiryDuration(30*time.Second),
		ants.WithNonblocking(false),
		ants.WithPanicHandler(func(r interface{}) {
			p.panics.Add(1)
			slog.Error("worker panic recovered", "panic", r)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	p.pool = inner

	slog.Info("worker pool created", "capacity", capacity)
	return p, nil
}

// Submit schedules task on the pool, blocking until a worker is free.
// Submission is refused once ctx is done; an already admitted task always
// runs, so callers checking ctx inside the task can keep their own
// accounting (wait groups, result slots) consistent.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	err := p.pool.Submit(func() {
		defer p.completed.Add(1)
		task()
	})
	if err != nil {
		return fmt.Errorf("failed to submit task: %w", err)
	}

	p.submitted.Add(1)
	return nil
}

// Running returns the number of currently running workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return p.pool.Cap()
}

// Stats returns submitted/completed/panic counters.
func (p *Pool) Stats() (submitted, completed, panics int64) {
	return p.submitted.Load(), p.completed.Load(), p.panics.Load()
}

// Release shuts the pool down. Pending tasks are abandoned.
func (p *Pool) Release() {
	if p.closed.Swap(true) {
		return
	}
	p.pool.Release()
	slog.Info("worker pool released")
}

// ReleaseTimeout shuts the pool down, waiting up to timeout for running
// tasks to finish.
func (p *Pool) ReleaseTimeout(timeout time.Duration) error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.pool.ReleaseTimeout(timeout)
}
