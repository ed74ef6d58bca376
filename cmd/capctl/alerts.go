package main

import (
	"fmt"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/service"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newAlertsCmd(opts *rootOptions) *cobra.Command {
	var (
		start  string
		end    string
		label  string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Print resources categorized by peak weekly utilization",
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := parsePeriod(start, end)
			if err != nil {
				return err
			}

			period.Label = label
			period.Filter = filter

			c, err := opts.client(opts.logger())
			if err != nil {
				return err
			}

			report, err := c.Alerts(cmd.Context(), period)
			if err != nil {
				return err
			}

			return writeJSON(opts.out, report)
		},
	}

	today := time.Now().UTC()

	cmd.Flags().StringVar(&start, "start", today.Format(dateLayout), "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", today.AddDate(0, 0, 27).Format(dateLayout), "Period end, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&label, "label", "", "Label echoed back in the report")
	cmd.Flags().StringVar(&filter, "period", "", "Period filter echoed back in the report")

	return cmd
}

func parsePeriod(start, end string) (service.Period, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return service.Period{}, fmt.Errorf("invalid --start: %w", err)
	}

	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return service.Period{}, fmt.Errorf("invalid --end: %w", err)
	}

	if e.Before(s) {
		return service.Period{}, fmt.Errorf("--end %s is before --start %s", end, start)
	}

	return service.Period{Start: s, End: e}, nil
}
