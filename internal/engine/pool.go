package engine

import (
	"errors"
	"sync"
)

// Task is one unit of pipeline work, such as fitting a single fold of
// a single grid point. A non-nil result is collected by the batch the
// task ran in.
type Task func() error

type job struct {
	task Task
	done func(error)
}

// Pool is a fixed-size worker pool executing tasks in batches. Batches
// submitted after Close panic.
type Pool struct {
	numWorkers int
	jobs       chan job
	wg         sync.WaitGroup
}

func NewPool(numWorkers int) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan job),
	}
}

func (p *Pool) Start() {
	for range p.numWorkers {
		p.wg.Go(func() {
			for j := range p.jobs {
				j.done(j.task())
			}
		})
	}
}

// Run executes the tasks as one batch, blocks until every task has
// finished and returns the joined task errors.
func (p *Pool) Run(tasks ...Task) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, task := range tasks {
		wg.Add(1)
		p.jobs <- job{task: task, done: func(err error) {
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			wg.Done()
		}}
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
