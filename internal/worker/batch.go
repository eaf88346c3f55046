package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Task computes one value
type Task[T any] func(ctx context.Context) (T, error)

// Outcome is the value or error of one task
type Outcome[T any] struct {
	Value T
	Err   error
}

// GetError returns the task error
func (o *Outcome[T]) GetError() error {
	return o.Err
}

type taskJob[T any] struct {
	task Task[T]
}

func (j *taskJob[T]) Execute(ctx context.Context) Result {
	v, err := j.task(ctx)
	return &Outcome[T]{Value: v, Err: err}
}

// BatchProcessor runs tasks on a pool and reports progress as they finish
type BatchProcessor[T any] struct {
	concurrency int
	progress    func(done, total int, index int, out Outcome[T])
}

// NewBatchProcessor creates a processor running concurrency tasks at once
func NewBatchProcessor[T any](concurrency int) *BatchProcessor[T] {
	return &BatchProcessor[T]{concurrency: concurrency}
}

// OnProgress registers a callback run after each task completes. Calls
// never overlap.
func (b *BatchProcessor[T]) OnProgress(fn func(done, total int, index int, out Outcome[T])) *BatchProcessor[T] {
	b.progress = fn
	return b
}

// Process runs every task and returns outcomes in task order. Tasks that
// never ran because ctx was cancelled carry ctx's error.
func (b *BatchProcessor[T]) Process(ctx context.Context, tasks []Task[T]) []Outcome[T] {
	outcomes := make([]Outcome[T], len(tasks))
	if len(tasks) == 0 {
		return outcomes
	}

	pool := NewPool(ctx, b.concurrency)
	done := 0
	pool.OnResult(func(index int, r Result) {
		done++
		if b.progress != nil {
			b.progress(done, len(tasks), index, *r.(*Outcome[T]))
		}
	})
	pool.Start()
	for _, task := range tasks {
		pool.Submit(&taskJob[T]{task: task})
	}
	results := pool.Wait()

	for i := range outcomes {
		if i < len(results) && results[i] != nil {
			outcomes[i] = *results[i].(*Outcome[T])
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		outcomes[i] = Outcome[T]{Err: err}
	}
	return outcomes
}

// ReadListFile reads one entry per line, skipping blank lines and #
// comments and dropping duplicates while keeping first-seen order
func ReadListFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return entries, nil
}
