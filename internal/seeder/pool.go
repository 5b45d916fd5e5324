package seeder

import (
	"context"
	"errors"
	"sync"
)

type task func(ctx context.Context) error

// workerPool runs tasks on a fixed number of goroutines. The first failure
// cancels the tasks that have not started yet.
type workerPool struct {
	workers int
	tasks   chan task
	wg      sync.WaitGroup

	mu   sync.Mutex
	errs []error
}

func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	return &workerPool{workers: workers, tasks: make(chan task)}
}

// Run executes every task and returns the joined errors.
func (p *workerPool) Run(parent context.Context, tasks []task) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for t := range p.tasks {
				if ctx.Err() != nil {
					continue
				}
				if err := t(ctx); err != nil {
					p.fail(err)
					cancel()
				}
			}
		}()
	}

	for _, t := range tasks {
		if t != nil {
			p.tasks <- t
		}
	}
	close(p.tasks)
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.errs) == 0 {
		return parent.Err()
	}
	return errors.Join(p.errs...)
}

func (p *workerPool) fail(err error) {
	p.mu.Lock()
	p.errs = append(p.errs, err)
	p.mu.Unlock()
}
