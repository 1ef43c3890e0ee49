package workers

import (
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// SpawnPool starts fresh goroutines for every batch, at most size at a time.
type SpawnPool struct {
	size int
}

func NewSpawnPool(size int) (*SpawnPool, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return &SpawnPool{size: size}, nil
}

func (p *SpawnPool) Run(tasks []Task) error {
	errs := make([]error, len(tasks))

	var g errgroup.Group
	g.SetLimit(p.size)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			errs[i] = safeRun(i, task)
			return errs[i]
		})
	}
	if err := g.Wait(); err != nil {
		return multierr.Combine(errs...)
	}
	return nil
}

func (p *SpawnPool) Size() int { return p.size }

func (p *SpawnPool) Close() error { return nil }
