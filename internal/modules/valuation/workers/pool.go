// Package workers provides a bounded worker pool for evaluating many
// valuation scenarios in parallel.
package workers

import (
	"sync"
)

// DefaultWorkers is used when a pool is created with a non-positive size
const DefaultWorkers = 10

// WorkerPool manages a pool of worker goroutines for parallel evaluation
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers
	}
	return &WorkerPool{
		numWorkers: numWorkers,
	}
}

// Size returns the configured number of workers
func (wp *WorkerPool) Size() int {
	return wp.numWorkers
}

// jobItem represents a single evaluation job
type jobItem[T any] struct {
	index int
	item  T
}

// resultItem represents the result of an evaluation job
type resultItem[R any] struct {
	index  int
	result R
}

// Map applies fn to every item using the pool's workers.
// Results are returned in the same order as items.
func Map[T, R any](wp *WorkerPool, items []T, fn func(T) R) []R {
	numItems := len(items)
	if numItems == 0 {
		return []R{}
	}

	jobs := make(chan jobItem[T], numItems)
	results := make(chan resultItem[R], numItems)

	numActualWorkers := wp.numWorkers
	if numItems < numActualWorkers {
		numActualWorkers = numItems // Don't spawn more workers than items
	}

	var wg sync.WaitGroup
	for i := 0; i < numActualWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- resultItem[R]{index: job.index, result: fn(job.item)}
			}
		}()
	}

	for idx, item := range items {
		jobs <- jobItem[T]{index: idx, item: item}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, numItems)
	for res := range results {
		out[res.index] = res.result
	}

	return out
}
