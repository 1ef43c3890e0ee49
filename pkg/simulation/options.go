package simulation

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/workers"
)

const (
	DefaultBodies = 1000
	DefaultSteps  = 500
	DefaultDt     = 0.01
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Options are the knobs of a headless run.
type Options struct {
	Scene         string
	Bodies        int
	Steps         int
	Dt            float64
	Workers       int
	Pool          string
	Seed          uint64
	Width         int
	Height        int
	ProgressEvery int
}

func DefaultOptions() Options {
	return Options{
		Bodies:        DefaultBodies,
		Steps:         DefaultSteps,
		Dt:            DefaultDt,
		Workers:       runtime.NumCPU(),
		Pool:          workers.KindSpawn,
		Seed:          1,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		ProgressEvery: 50,
	}
}

// FrameOffset maps body positions to frame pixels. Scene files are centred
// on (0,0); generated orbits are already laid out in the frame.
func (o Options) FrameOffset() physics.Vec2 {
	if o.Scene == "" {
		return physics.Vec2{}
	}
	return physics.Vec2{X: float64(o.Width) / 2, Y: float64(o.Height) / 2}
}

func (o Options) Validate() error {
	if o.Scene == "" && o.Bodies < 1 {
		return errors.New("bodies must be at least 1")
	}
	if o.Steps < 0 {
		return errors.New("steps cannot be negative")
	}
	if o.Scene == "" && o.Dt <= 0 {
		return errors.New("dt must be positive")
	}
	if o.Workers < 1 || o.Workers > workers.MaxWorkers {
		return errors.Errorf("workers must be between 1 and %d", workers.MaxWorkers)
	}
	if o.Width < 1 || o.Height < 1 {
		return errors.New("frame size must be positive")
	}
	if o.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}

	for _, kind := range workers.Kinds() {
		if o.Pool == kind {
			return nil
		}
	}
	return errors.Errorf("invalid pool kind: %s", o.Pool)
}
