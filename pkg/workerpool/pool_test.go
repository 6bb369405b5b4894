package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolSubmit(t *testing.T) {
	pool, err := New(4)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	defer pool.Release()

	var counter atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := pool.Submit(context.Background(), func() {
			defer wg.Done()
			counter.Add(1)
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wg.Wait()

	if counter.Load() != 20 {
		t.Errorf("Expected 20 tasks executed, got %d", counter.Load())
	}
}

func TestPoolBoundedConcurrency(t *testing.T) {
	pool, err := New(2)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	defer pool.Release()

	var inFlight atomic.Int64
	var peak atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := pool.Submit(context.Background(), func() {
			defer wg.Done()
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wg.Wait()

	if peak.Load() > 2 {
		t.Errorf("Expected at most 2 concurrent workers, observed %d", peak.Load())
	}
}

func TestPoolSubmitCancelledContext(t *testing.T) {
	pool, err := New(1)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = pool.Submit(ctx, func() {
		t.Error("Task should not run after cancellation")
	})
	if err == nil {
		t.Error("Expected error when submitting with cancelled context")
	}
}

func TestPoolSubmitAfterRelease(t *testing.T) {
	pool, err := New(1)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	pool.Release()

	err = pool.Submit(context.Background(), func() {})
	if err != ErrPoolClosed {
		t.Errorf("Expected ErrPoolClosed, got %v", err)
	}
}

func TestPoolStats(t *testing.T) {
	pool, err := New(2)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		if err := pool.Submit(context.Background(), func() { wg.Done() }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wg.Wait()

	// Completion counters are bumped after the task body returns; give the
	// workers a moment to finish bookkeeping.
	deadline := time.Now().Add(time.Second)
	for {
		if _, completed, _ := pool.Stats(); completed == 5 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	submitted, completed, panics := pool.Stats()
	if submitted != 5 {
		t.Errorf("Expected 5 submitted, got %d", submitted)
	}
	if completed != 5 {
		t.Errorf("Expected 5 completed, got %d", completed)
	}
	if panics != 0 {
		t.Errorf("Expected 0 panics, got %d", panics)
	}
}
