package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/patterns/app"
)

func newExecutorsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "executors",
		Short: "List configured executor profiles and registered types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(func(svc *app.Service) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tTYPE")
				for _, p := range svc.Profiles() {
					fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Type)
				}
				for _, t := range svc.Registry().Names() {
					fmt.Fprintf(w, "%s\t%s\n", t, t)
				}
				return w.Flush()
			})
		},
	}
}
