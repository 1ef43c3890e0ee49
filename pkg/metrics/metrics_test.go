package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/simulation"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/workers"
)

func TestCollectorObserveStep(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveStep(simulation.StepStats{Bodies: 10, Workers: 4, Pairs: 45, Duration: 2 * time.Millisecond})
	c.ObserveStep(simulation.StepStats{Bodies: 10, Workers: 4, Pairs: 45, Duration: 3 * time.Millisecond})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.steps))
	assert.Equal(t, 90.0, testutil.ToFloat64(c.pairs))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.bodies))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.workers))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestCollectorDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestCollectorWiredToEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	pool, err := workers.New(workers.KindSpawn, 2)
	require.NoError(t, err)
	defer pool.Close()

	e := simulation.NewEngine(pool, simulation.WithObserver(c))
	bodies := simulation.GenerateOrbits(simulation.OrbitOptions{Bodies: 8, Width: 100, Height: 100, Seed: 1})
	for i := 0; i < 3; i++ {
		require.NoError(t, e.Advance(bodies, simulation.DefaultDt))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(c.steps))
	assert.Equal(t, 3.0*28, testutil.ToFloat64(c.pairs))

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "nbody_steps_total 3")
	assert.Contains(t, string(body), "nbody_step_duration_seconds_count 3")
}
