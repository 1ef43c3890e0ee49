package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/metrics"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/output"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/simulation"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless simulation and write the final positions",
		Example: `  nbody run --bodies 1000 --steps 500 --workers 8
  nbody run --scene pkg/assets/binary.yaml --pool persistent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(v, overridesFrom(v, cmd.Flags()))
		},
	}
	addSimulationFlags(cmd.Flags())
	cmd.Flags().String("out-dir", ".", "directory for output<N>.dat, output<N>.png and reference<N>.dat")
	cmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().String("cpu-profile", "", "write a CPU profile to this file")
	return cmd
}

func runSimulation(v *viper.Viper, over sceneOverrides) error {
	opts := optionsFrom(v)
	if err := opts.Validate(); err != nil {
		return errors.Wrap(err, "invalid options")
	}

	if path := v.GetString("cpu-profile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating cpu profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "starting cpu profile")
		}
		defer pprof.StopCPUProfile()
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return errors.Wrap(err, "registering metrics")
	}
	if addr := v.GetString("metrics-addr"); addr != "" {
		go func() {
			logrus.WithField("addr", addr).Info("serving metrics")
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler(reg))
			if err := http.ListenAndServe(addr, mux); err != nil {
				logrus.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	sim, kernel, steps, pool, err := buildSimulator(opts, over, simulation.WithObserver(collector))
	if err != nil {
		return err
	}
	defer pool.Close()

	log := logrus.WithFields(logrus.Fields{
		"env":     sim.Name,
		"bodies":  len(sim.Bodies),
		"workers": pool.Size(),
		"pool":    opts.Pool,
	})
	sim.Logger = log

	p0, e0 := physics.TotalMomentum(sim.Bodies), physics.TotalEnergy(sim.Bodies, kernel)
	log.WithFields(logrus.Fields{"momentum": p0, "energy": e0}).Info("initial state")

	start := time.Now()
	if err := sim.Run(steps, opts.ProgressEvery); err != nil {
		return errors.Wrap(err, "simulation aborted")
	}
	elapsed := time.Since(start)

	p1, e1 := physics.TotalMomentum(sim.Bodies), physics.TotalEnergy(sim.Bodies, kernel)
	log.WithFields(logrus.Fields{
		"momentum":       p1,
		"energy":         e1,
		"momentum_drift": p1.Sub(p0).Len(),
		"elapsed":        elapsed,
	}).Info("final state")

	return writeResults(v.GetString("out-dir"), sim, steps, opts, elapsed, log)
}

// writeResults stores the final positions and frame and compares them
// against reference<N>.dat when it exists.
func writeResults(dir string, sim *simulation.Simulator, steps int, opts simulation.Options, elapsed time.Duration, log logrus.FieldLogger) error {
	n := len(sim.Bodies)
	dataPath := filepath.Join(dir, fmt.Sprintf("output%d.dat", n))
	pngPath := filepath.Join(dir, fmt.Sprintf("output%d.png", n))
	refPath := filepath.Join(dir, fmt.Sprintf("reference%d.dat", n))

	if err := output.WriteDataFile(dataPath, sim.Bodies); err != nil {
		return err
	}
	caption := fmt.Sprintf("N=%d steps=%d workers=%d time=%s", n, steps, opts.Workers, elapsed.Round(time.Millisecond))
	if err := output.RenderPNGFile(pngPath, sim.Bodies, opts.Width, opts.Height, opts.FrameOffset(), caption); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"data": dataPath, "image": pngPath}).Info("results written")

	if _, err := os.Stat(refPath); err != nil {
		if os.IsNotExist(err) {
			log.WithField("reference", refPath).Debug("no reference file, skipping comparison")
			return nil
		}
		return errors.Wrap(err, "checking reference")
	}
	reference, err := output.ReadDataFile(refPath)
	if err != nil {
		return err
	}
	diff, err := output.MaxDifference(sim.Bodies, reference)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"reference": refPath, "max_difference": diff}).Info("compared with reference")
	return nil
}
