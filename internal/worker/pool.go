// Package worker runs per-document jobs on a bounded pool and paces
// outbound requests.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a Job produced
type Result interface {
	GetError() error
}

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

// Pool executes jobs on a fixed number of goroutines. Results come back in
// submission order regardless of completion order.
type Pool struct {
	workers    int
	jobQueue   chan indexedJob
	results    chan indexedResult
	submitted  int
	onResult   func(index int, r Result)
	collected  map[int]Result
	collectEnd chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool bound to ctx; cancelling ctx stops the workers
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan indexedJob, workers*2),
		results:    make(chan indexedResult, workers*2),
		collected:  make(map[int]Result),
		collectEnd: make(chan struct{}),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// OnResult registers a callback for each finished job. Calls are made
// from a single goroutine in completion order. Set it before Start.
func (p *Pool) OnResult(fn func(index int, r Result)) {
	p.onResult = fn
}

// Start launches the workers and the result collector
func (p *Pool) Start() {
	go p.collect()
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) collect() {
	defer close(p.collectEnd)
	for r := range p.results {
		p.collected[r.index] = r.result
		if p.onResult != nil {
			p.onResult(r.index, r.result)
		}
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case j, ok := <-p.jobQueue:
			if !ok {
				return
			}
			r := indexedResult{index: j.index, result: j.job.Execute(p.ctx)}
			select {
			case p.results <- r:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Call it from one goroutine only, before Wait.
// Submitting to a stopped pool drops the job.
func (p *Pool) Submit(job Job) {
	j := indexedJob{index: p.submitted, job: job}
	p.submitted++
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- j:
	}
}

// Wait closes the queue and returns every result in submission order.
// Slots of jobs that never ran because the pool was stopped are nil.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.collectEnd
	p.cancelFunc()

	results := make([]Result, p.submitted)
	for i, r := range p.collected {
		results[i] = r
	}
	return results
}

// Shutdown stops the workers without draining the queue
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
