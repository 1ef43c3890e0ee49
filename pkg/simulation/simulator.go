package simulation

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
)

// --- Główna struktura symulatora ---
type Simulator struct {
	Name   string
	Dt     float64
	Bodies []physics.Body
	Step   int

	Logger logrus.FieldLogger

	engine *Engine
}

func NewSimulator(name string, dt float64, bodies []physics.Body, engine *Engine) *Simulator {
	return &Simulator{
		Name:   name,
		Dt:     dt,
		Bodies: bodies,
		Logger: logrus.StandardLogger(),
		engine: engine,
	}
}

// --- Tworzenie symulatora z konfiguracji ---
func NewSimulatorFromConfig(env *EnvironmentConfig, engine *Engine) *Simulator {
	return NewSimulator(env.Name, env.Dt, env.BuildBodies(), engine)
}

// --- Aktualizacja symulacji ---
func (s *Simulator) Update() error {
	if err := s.engine.Advance(s.Bodies, s.Dt); err != nil {
		return errors.Wrapf(err, "step %d", s.Step+1)
	}
	s.Step++
	return nil
}

// Run advances the simulation steps times, logging progress every
// progressEvery steps (0 disables progress logging). The first failing step
// stops the run.
func (s *Simulator) Run(steps, progressEvery int) error {
	log := s.Logger.WithFields(logrus.Fields{
		"sim":     s.Name,
		"bodies":  len(s.Bodies),
		"workers": s.engine.Workers(),
	})
	log.WithField("steps", steps).Info("simulation started")

	start := time.Now()
	for i := 0; i < steps; i++ {
		stepStart := time.Now()
		if err := s.Update(); err != nil {
			return err
		}
		log.WithField("step", s.Step).Debugf("step took %s", time.Since(stepStart))

		if progressEvery > 0 && ((i+1)%progressEvery == 0 || i+1 == steps) {
			elapsed := time.Since(start)
			total := time.Duration(float64(elapsed) / float64(i+1) * float64(steps))
			log.WithFields(logrus.Fields{
				"progress":  (i + 1) * 100 / steps,
				"elapsed":   elapsed.Round(time.Millisecond),
				"remaining": (total - elapsed).Round(time.Millisecond),
			}).Info("simulation progress")
		}
	}

	log.WithField("took", time.Since(start)).Info("simulation finished")
	return nil
}
