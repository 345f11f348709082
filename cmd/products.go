package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/patterns/app"
	"github.com/kilianp07/patterns/core/model"
	"github.com/kilianp07/patterns/core/spec"
)

func newProductsCmd(opts *rootOptions) *cobra.Command {
	var (
		colors []string
		sizes  []string
		match  string
	)
	c := &cobra.Command{
		Use:   "products",
		Short: "List catalog products matching the given criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := buildSpec(colors, sizes, match)
			if err != nil {
				return err
			}
			return opts.withService(func(svc *app.Service) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "# %s\n", spec.Describe(sp))
				for _, p := range svc.Filter(sp) {
					fmt.Fprintln(out, p)
				}
				return nil
			})
		},
	}
	c.Flags().StringSliceVar(&colors, "color", nil, "match products of this color (repeatable)")
	c.Flags().StringSliceVar(&sizes, "size", nil, "match products of this size (repeatable)")
	c.Flags().StringVar(&match, "match", "all", "combine criteria with all (AND) or any (OR)")
	return c
}

func buildSpec(colors, sizes []string, match string) (spec.Specification[model.Product], error) {
	var criteria []spec.Specification[model.Product]
	for _, s := range colors {
		c, err := model.ParseColor(s)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, spec.ColorIs(c))
	}
	for _, s := range sizes {
		sz, err := model.ParseSize(s)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, spec.SizeIs(sz))
	}
	switch match {
	case "all":
		return spec.And(criteria...), nil
	case "any":
		if len(criteria) == 0 {
			return spec.And[model.Product](), nil
		}
		return spec.Or(criteria...), nil
	default:
		return nil, fmt.Errorf("unknown match mode %q", match)
	}
}
