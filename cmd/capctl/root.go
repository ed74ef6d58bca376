package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/YusovID/capacity-planner-service/internal/client"
	"github.com/YusovID/capacity-planner-service/internal/config"
	"github.com/YusovID/capacity-planner-service/internal/session"
	"github.com/YusovID/capacity-planner-service/pkg/logger/slogpretty"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	server     string
	configPath string
	verbose    bool
	out        io.Writer
}

func (o *rootOptions) logger() *slog.Logger {
	if o.verbose {
		return slogpretty.SetupLogger("local")
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func (o *rootOptions) client(log *slog.Logger) (*client.Client, error) {
	return client.New(o.server, client.WithLogger(log))
}

// sessionOptions applies the alert thresholds and row lock debounce of the
// service config file, when one is given.
func (o *rootOptions) sessionOptions() ([]session.Option, error) {
	if o.configPath == "" {
		return nil, nil
	}

	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, err
	}

	return []session.Option{
		session.WithThresholds(cfg.Alerts.Thresholds()),
		session.WithRowLockDebounce(cfg.Session.RowLockDebounce),
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{out: os.Stdout}

	cmd := &cobra.Command{
		Use:           "capctl",
		Short:         "Inspect and edit weekly resource capacity",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.out = cmd.OutOrStdout()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr("CAPACITY_PLANNER_URL", "http://localhost:8080"), "Planner API base URL")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "Service config file for alert thresholds")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log API calls and session events")

	cmd.AddCommand(
		newWeeksCmd(opts),
		newCapacityCmd(opts),
		newAlertsCmd(opts),
		newEditCmd(opts),
	)

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
