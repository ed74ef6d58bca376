package main

import (
	"time"

	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/spf13/cobra"
)

func newWeeksCmd(opts *rootOptions) *cobra.Command {
	var (
		year   int
		remote bool
	)

	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Print the 52 week columns of a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !remote {
				return writeJSON(opts.out, capacity.WeeksInYear(year))
			}

			c, err := opts.client(opts.logger())
			if err != nil {
				return err
			}

			weeks, err := c.Weeks(cmd.Context(), year)
			if err != nil {
				return err
			}

			return writeJSON(opts.out, weeks)
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().UTC().Year(), "ISO year")
	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the API instead of computing locally")

	return cmd
}
