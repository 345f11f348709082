package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kilianp07/patterns/core/geometry"
)

func newPointCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "point cartesian|polar A B",
		Short:     "Build a point from cartesian (x y) or polar (rho theta) coordinates",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"cartesian", "polar"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("first coordinate: %w", err)
			}
			b, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("second coordinate: %w", err)
			}
			p, err := geometry.Factory.Build(args[0], a, b)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
			return err
		},
	}
}
