// Package metrics exports step statistics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/simulation"
)

const namespace = "nbody"

// Collector records every engine step. It satisfies simulation.Observer.
type Collector struct {
	steps        prometheus.Counter
	pairs        prometheus.Counter
	stepDuration prometheus.Histogram
	bodies       prometheus.Gauge
	workers      prometheus.Gauge
}

var _ simulation.Observer = &Collector{}

// NewCollector creates the step metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Number of completed simulation steps.",
		}),
		pairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pair_interactions_total",
			Help:      "Number of body pairs evaluated by the force kernel.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of one simulation step.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bodies",
			Help:      "Number of bodies in the last step.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Number of worker partitions in the last step.",
		}),
	}
	for _, m := range []prometheus.Collector{c.steps, c.pairs, c.stepDuration, c.bodies, c.workers} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) ObserveStep(s simulation.StepStats) {
	c.steps.Inc()
	c.pairs.Add(float64(s.Pairs))
	c.stepDuration.Observe(s.Duration.Seconds())
	c.bodies.Set(float64(s.Bodies))
	c.workers.Set(float64(s.Workers))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
