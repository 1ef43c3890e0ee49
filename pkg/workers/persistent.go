package workers

import (
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
)

type execution struct {
	id     int
	task   Task
	result chan<- result
}

type result struct {
	id  int
	err error
}

// WorkerPool keeps size goroutines alive across batches and feeds them
// through a shared queue.
type WorkerPool struct {
	size      int
	taskQueue chan execution
	wg        sync.WaitGroup
	quit      chan struct{}
	once      sync.Once

	activeJobs int64
	totalJobs  int64
}

func NewWorkerPool(size int) (*WorkerPool, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	wp := &WorkerPool{
		size:      size,
		taskQueue: make(chan execution, size*8),
		quit:      make(chan struct{}),
	}
	wp.start()
	return wp, nil
}

func (wp *WorkerPool) start() {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case ex := <-wp.taskQueue:
			atomic.AddInt64(&wp.activeJobs, 1)
			err := safeRun(ex.id, ex.task)
			atomic.AddInt64(&wp.activeJobs, -1)
			atomic.AddInt64(&wp.totalJobs, 1)

			// result channel is buffered for the whole batch
			ex.result <- result{id: ex.id, err: err}
		case <-wp.quit:
			return
		}
	}
}

// Run queues the batch and waits for every result. Tasks that could not be
// queued because the pool is closed count as failed.
func (wp *WorkerPool) Run(tasks []Task) error {
	results := make(chan result, len(tasks))
	errs := make([]error, len(tasks))

	queued := 0
	for i, task := range tasks {
		select {
		case <-wp.quit:
			errs[i] = ErrPoolClosed
			continue
		default:
		}
		select {
		case wp.taskQueue <- execution{id: i, task: task, result: results}:
			queued++
		case <-wp.quit:
			errs[i] = ErrPoolClosed
		}
	}

	for n := 0; n < queued; n++ {
		r := <-results
		errs[r.id] = r.err
	}
	return multierr.Combine(errs...)
}

func (wp *WorkerPool) Size() int { return wp.size }

// Stats reports jobs currently executing and jobs completed so far.
func (wp *WorkerPool) Stats() (active int64, total int64) {
	return atomic.LoadInt64(&wp.activeJobs), atomic.LoadInt64(&wp.totalJobs)
}

// Close stops the workers. It must not race with Run.
func (wp *WorkerPool) Close() error {
	wp.once.Do(func() {
		close(wp.quit)
		wp.wg.Wait()
	})
	return nil
}
