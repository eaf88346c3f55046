package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type mockResult struct {
	id  int
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

type mockJob struct {
	id        int
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{id: j.id, err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{id: j.id, err: errors.New("job error")}
	}
	return &mockResult{id: j.id}
}

func TestNewPool(t *testing.T) {
	ctx := context.Background()
	if p := NewPool(ctx, 5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(ctx, 0); p.workers != 1 {
		t.Errorf("expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(ctx, -1); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_SubmissionOrder(t *testing.T) {
	pool := NewPool(context.Background(), 4)
	pool.Start()

	var executed int32
	count := 40
	for i := 0; i < count; i++ {
		// later jobs finish first
		pool.Submit(&mockJob{id: i, duration: time.Duration(count-i) * time.Millisecond, executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Fatalf("expected %d results, got %d", count, len(results))
	}
	for i, r := range results {
		if got := r.(*mockResult).id; got != i {
			t.Fatalf("result %d came from job %d", i, got)
		}
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executed jobs, got %d", count, executed)
	}
}

func TestPool_Concurrency(t *testing.T) {
	workers := 5
	pool := NewPool(context.Background(), workers)

	var current, maxConcurrent int32
	var mu sync.Mutex
	pool.Start()

	for i := 0; i < 30; i++ {
		pool.Submit(jobFunc(func(ctx context.Context) Result {
			curr := atomic.AddInt32(&current, 1)
			mu.Lock()
			if curr > maxConcurrent {
				maxConcurrent = curr
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&current, -1)
			return &mockResult{}
		}))
	}
	pool.Wait()

	mu.Lock()
	defer mu.Unlock()
	if maxConcurrent > int32(workers) {
		t.Errorf("max concurrency %d exceeded workers %d", maxConcurrent, workers)
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Submit(&mockJob{shouldErr: true})
	pool.Submit(&mockJob{})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].GetError() == nil || results[1].GetError() != nil {
		t.Errorf("errors not kept in position: %v, %v", results[0].GetError(), results[1].GetError())
	}
}

func TestPool_OnResult(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	seen := map[int]bool{}
	pool.OnResult(func(index int, r Result) {
		seen[index] = true
	})
	pool.Start()
	for i := 0; i < 10; i++ {
		pool.Submit(&mockJob{id: i})
	}
	pool.Wait()

	if len(seen) != 10 {
		t.Errorf("callback saw %d results", len(seen))
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&mockJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(jobFunc(func(ctx context.Context) Result {
		close(started)
		<-ctx.Done()
		return &mockResult{err: ctx.Err()}
	}))
	<-started

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown timed out")
	}
}

type jobFunc func(ctx context.Context) Result

func (f jobFunc) Execute(ctx context.Context) Result {
	return f(ctx)
}
