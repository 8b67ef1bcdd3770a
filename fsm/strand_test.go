package fsm

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestStrandPreservesOrder(t *testing.T) {
	s := NewStrand()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		i := i
		s.Post(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		if v != i {
			t.Fatalf("expected strictly ordered execution, got %v", order)
		}
	}
}

func TestStrandStopDrainsQueuedWork(t *testing.T) {
	s := NewStrand()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	ran := make(chan struct{}, 1)
	s.Post(func() { ran <- struct{}{} })
	s.Stop()

	select {
	case <-ran:
	default:
		t.Fatal("Stop should drain work already queued before it was called")
	}
}

func TestStrandPostAfterStopIsDropped(t *testing.T) {
	s := NewStrand()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	s.Stop()

	done := make(chan struct{})
	go func() {
		s.Post(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Post after Stop should return promptly rather than blocking")
	}
}
