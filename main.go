package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/simulation"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/workers"
)

// Build information (set by build script)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Fatal("nbody failed")
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "nbody",
		Short:         "Parallel brute-force 2D N-body gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(v, cmd)
		},
	}
	cmd.PersistentFlags().String("config", "", "run config file (yaml or json) with the same keys as the flags")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCommand(v),
		newViewCommand(v),
		newVersionCommand(),
	)
	return cmd
}

// setup binds flags, config file and NBODY_* environment variables into v
// and configures logging.
func setup(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "binding flags")
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return errors.Wrap(err, "binding flags")
	}
	v.SetEnvPrefix("NBODY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}

	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func addSimulationFlags(fs *pflag.FlagSet) {
	defaults := simulation.DefaultOptions()
	fs.String("scene", "", "scene file (json or yaml) instead of generated orbits")
	fs.Int("bodies", defaults.Bodies, "number of bodies for generated orbits")
	fs.Int("steps", defaults.Steps, "number of steps to simulate")
	fs.Float64("dt", defaults.Dt, "time step")
	fs.Int("workers", defaults.Workers, "number of worker partitions per step")
	fs.String("pool", defaults.Pool, fmt.Sprintf("worker pool implementation (%s)", strings.Join(workers.Kinds(), ", ")))
	fs.Uint64("seed", defaults.Seed, "random seed for generated orbits")
	fs.Int("width", defaults.Width, "frame width")
	fs.Int("height", defaults.Height, "frame height")
	fs.Int("progress-every", defaults.ProgressEvery, "log progress every N steps (0 disables)")
}

func optionsFrom(v *viper.Viper) simulation.Options {
	return simulation.Options{
		Scene:         v.GetString("scene"),
		Bodies:        v.GetInt("bodies"),
		Steps:         v.GetInt("steps"),
		Dt:            v.GetFloat64("dt"),
		Workers:       v.GetInt("workers"),
		Pool:          v.GetString("pool"),
		Seed:          v.GetUint64("seed"),
		Width:         v.GetInt("width"),
		Height:        v.GetInt("height"),
		ProgressEvery: v.GetInt("progress-every"),
	}
}

// sceneOverrides marks the options the user set explicitly. Those win over
// the values a scene file carries.
type sceneOverrides struct {
	Steps bool
	Dt    bool
}

// explicitlySet reports whether key came from the command line, the
// --config file or an NBODY_* environment variable rather than a default.
func explicitlySet(v *viper.Viper, fs *pflag.FlagSet, key string) bool {
	if fs.Changed(key) || v.InConfig(key) {
		return true
	}
	_, ok := os.LookupEnv("NBODY_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_")))
	return ok
}

func overridesFrom(v *viper.Viper, fs *pflag.FlagSet) sceneOverrides {
	return sceneOverrides{
		Steps: explicitlySet(v, fs, "steps"),
		Dt:    explicitlySet(v, fs, "dt"),
	}
}

// buildSimulator creates the worker pool, the bodies and the engine for a
// run. The caller owns the returned pool and must close it.
func buildSimulator(opts simulation.Options, over sceneOverrides, engineOpts ...simulation.Option) (*simulation.Simulator, physics.Kernel, int, workers.Pool, error) {
	pool, err := workers.New(opts.Pool, opts.Workers)
	if err != nil {
		return nil, physics.Kernel{}, 0, nil, errors.Wrap(err, "creating worker pool")
	}

	kernel := physics.DefaultKernel()
	steps := opts.Steps

	var env *simulation.EnvironmentConfig
	if opts.Scene != "" {
		env, err = simulation.LoadConfig(opts.Scene)
		if err != nil {
			pool.Close()
			return nil, physics.Kernel{}, 0, nil, err
		}
		kernel = env.Kernel()

		log := logrus.WithField("scene", opts.Scene)
		if env.Steps > 0 && !over.Steps {
			steps = env.Steps
			log.WithField("steps", steps).Info("using steps from scene")
		}
		if over.Dt {
			if opts.Dt <= 0 {
				pool.Close()
				return nil, physics.Kernel{}, 0, nil, errors.New("dt must be positive")
			}
			env.Dt = opts.Dt
		} else if env.Dt != opts.Dt {
			log.WithFields(logrus.Fields{"dt": env.Dt, "ignored_dt": opts.Dt}).Info("using dt from scene")
		}
	}

	engineOpts = append([]simulation.Option{simulation.WithKernel(kernel)}, engineOpts...)
	engine := simulation.NewEngine(pool, engineOpts...)
	if env != nil {
		return simulation.NewSimulatorFromConfig(env, engine), kernel, steps, pool, nil
	}

	bodies := simulation.GenerateOrbits(simulation.OrbitOptions{
		Bodies: opts.Bodies,
		Width:  float64(opts.Width),
		Height: float64(opts.Height),
		Seed:   opts.Seed,
		G:      kernel.G,
	})
	name := fmt.Sprintf("orbits-%d", opts.Bodies)
	return simulation.NewSimulator(name, opts.Dt, bodies, engine), kernel, steps, pool, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "nbody version %s\nBuilt: %s\nGo: %s\n", Version, BuildTime, runtime.Version())
		},
	}
}
