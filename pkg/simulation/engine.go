package simulation

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/workers"
)

// StepStats describes one completed Advance call.
type StepStats struct {
	Bodies   int
	Workers  int
	Pairs    int64
	Duration time.Duration
}

// Observer is notified after every successful step.
type Observer interface {
	ObserveStep(StepStats)
}

type Option func(*Engine)

// WithKernel replaces the default gravity kernel.
func WithKernel(k ForceKernel) Option {
	return func(e *Engine) { e.kernel = k }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// --- Silnik kroku ---

// Engine advances a body slice one time step at a time, splitting the pair
// loop across the workers of its pool. The engine holds no simulation
// state between calls, only scratch buffers it zeroes every step.
type Engine struct {
	mu       sync.Mutex
	kernel   ForceKernel
	pool     workers.Pool
	observer Observer

	partials []physics.AccelField
	total    physics.AccelField
}

func NewEngine(pool workers.Pool, opts ...Option) *Engine {
	e := &Engine{
		kernel: physics.DefaultKernel(),
		pool:   pool,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers is the number of partitions each step is split into.
func (e *Engine) Workers() int {
	return e.pool.Size()
}

// Advance moves bodies forward by dt in place. If any partition fails the
// error is returned and bodies are left as they were.
func (e *Engine) Advance(bodies []physics.Body, dt float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(bodies)
	if n == 0 {
		return nil
	}
	start := time.Now()

	ranges := Partition(n, e.pool.Size())
	e.prepare(len(ranges), n)

	var pairs int64
	tasks := make([]workers.Task, len(ranges))
	for w, r := range ranges {
		pairs += pairsIn(r, n)
		acc := e.partials[w]
		r := r
		tasks[w] = func() error {
			AccumulateRange(bodies, r, e.kernel, acc)
			return nil
		}
	}
	if err := e.pool.Run(tasks); err != nil {
		return errors.Wrapf(err, "accumulating forces for %d bodies on %d workers", n, len(ranges))
	}

	for _, acc := range e.partials {
		floats.Add(e.total, acc)
	}
	physics.Integrate(bodies, e.total, dt)

	if e.observer != nil {
		e.observer.ObserveStep(StepStats{
			Bodies:   n,
			Workers:  len(ranges),
			Pairs:    pairs,
			Duration: time.Since(start),
		})
	}
	return nil
}

// prepare sizes and zeroes the per-worker and total accumulators.
func (e *Engine) prepare(p, n int) {
	if len(e.partials) != p || e.total.Len() != n {
		e.partials = make([]physics.AccelField, p)
		for w := range e.partials {
			e.partials[w] = physics.NewAccelField(n)
		}
		e.total = physics.NewAccelField(n)
		return
	}
	for _, acc := range e.partials {
		acc.Reset()
	}
	e.total.Reset()
}
