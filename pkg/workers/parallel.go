package workers

import (
	"github.com/dgravesa/go-parallel/parallel"
	"go.uber.org/multierr"
)

// ParallelPool hands each batch to a go-parallel loop over the tasks.
type ParallelPool struct {
	size int
}

func NewParallelPool(size int) (*ParallelPool, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return &ParallelPool{size: size}, nil
}

func (p *ParallelPool) Run(tasks []Task) error {
	errs := make([]error, len(tasks))
	parallel.WithNumGoroutines(p.size).For(len(tasks), func(i, _ int) {
		errs[i] = safeRun(i, tasks[i])
	})
	return multierr.Combine(errs...)
}

func (p *ParallelPool) Size() int { return p.size }

func (p *ParallelPool) Close() error { return nil }
