// Package workers runs batches of independent tasks on a fixed number of
// goroutines and returns once every task of the batch has finished.
package workers

import (
	"runtime/debug"

	"github.com/pkg/errors"
)

// MaxWorkers caps how many workers a pool may be asked for.
const MaxWorkers = 4096

const (
	KindSpawn      = "spawn"
	KindPersistent = "persistent"
	KindParallel   = "parallel"
)

var (
	ErrWorkerBudget = errors.New("worker budget exceeded")
	ErrPoolClosed   = errors.New("worker pool closed")
)

// Task is one independent unit of work in a batch.
type Task func() error

// Pool runs a batch of tasks. Run blocks until every task has completed and
// returns the combined error of all failed tasks.
type Pool interface {
	Run(tasks []Task) error
	Size() int
	Close() error
}

// Kinds lists the pool implementations New understands.
func Kinds() []string {
	return []string{KindSpawn, KindPersistent, KindParallel}
}

// New builds a pool of the given kind with size workers.
func New(kind string, size int) (Pool, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	switch kind {
	case KindSpawn, "":
		return NewSpawnPool(size)
	case KindPersistent:
		return NewWorkerPool(size)
	case KindParallel:
		return NewParallelPool(size)
	}
	return nil, errors.Errorf("unknown pool kind %q", kind)
}

func checkSize(size int) error {
	if size < 1 || size > MaxWorkers {
		return errors.Wrapf(ErrWorkerBudget, "requested %d workers, allowed 1..%d", size, MaxWorkers)
	}
	return nil
}

// safeRun executes a task, turning a panic into an error.
func safeRun(id int, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("task %d panicked: %v\n%s", id, r, debug.Stack())
		}
	}()
	if err := task(); err != nil {
		return errors.Wrapf(err, "task %d", id)
	}
	return nil
}
