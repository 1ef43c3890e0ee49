package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/viewer"
)

func newViewCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view",
		Short:   "Show the simulation in a window",
		Example: `  nbody view --scene pkg/assets/solar.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(v)
			if err := opts.Validate(); err != nil {
				return errors.Wrap(err, "invalid options")
			}

			sim, _, _, pool, err := buildSimulator(opts, overridesFrom(v, cmd.Flags()))
			if err != nil {
				return err
			}
			defer pool.Close()

			game := viewer.NewGame(sim, opts.Width, opts.Height, opts.FrameOffset())
			return viewer.Run(game, fmt.Sprintf("N-body: %s", sim.Name))
		},
	}
	addSimulationFlags(cmd.Flags())
	return cmd
}
