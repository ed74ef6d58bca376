package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newCapacityCmd(opts *rootOptions) *cobra.Command {
	var (
		year    int
		project bool
	)

	cmd := &cobra.Command{
		Use:   "capacity <resource-id>",
		Short: "Print the yearly capacity heatmap of a resource, or weekly totals of a project with --project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(opts.logger())
			if err != nil {
				return err
			}

			if project {
				totals, err := c.ProjectWeeklyTotals(cmd.Context(), args[0], year)
				if err != nil {
					return err
				}

				return writeJSON(opts.out, totals)
			}

			view, err := c.Capacity(cmd.Context(), args[0], year)
			if err != nil {
				return err
			}

			return writeJSON(opts.out, view)
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().UTC().Year(), "ISO year")
	cmd.Flags().BoolVar(&project, "project", false, "Treat the argument as a project id")

	return cmd
}
