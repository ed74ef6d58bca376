package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/client"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const cachePrefix = "capctl"

type editOutput struct {
	ResourceID string                  `json:"resourceId"`
	DryRun     bool                    `json:"dryRun"`
	Changes    []domain.PendingChange  `json:"changes"`
	Warnings   []session.Warning       `json:"warnings,omitempty"`
	Weeks      []capacity.WeekCapacity `json:"weeks"`
	Saved      []string                `json:"saved,omitempty"`
	Failed     []string                `json:"failed,omitempty"`
	Attempts   int                     `json:"attempts"`
	Error      string                  `json:"error,omitempty"`
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		sets      []string
		retries   int
		dryRun    bool
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "edit <resource-id>",
		Short: "Stage weekly allocation edits, show their effect and save them together",
		Example: `  capctl edit r1 --set p1:2025-W10=35 --set p2:2025-W10=6
  capctl edit r1 --set p1:2025-W11=40 --retry 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := parseSets(sets)
			if err != nil {
				return err
			}

			log := opts.logger()

			c, err := opts.client(log)
			if err != nil {
				return err
			}

			sessionOpts, err := opts.sessionOptions()
			if err != nil {
				return err
			}

			store, closeStore, err := snapshotCache(cmd.Context(), redisAddr)
			if err != nil {
				return err
			}
			defer closeStore()

			out, err := runEdit(cmd.Context(), log, c, client.NewCachedReader(c, store, log), args[0], changes, dryRun, retries, sessionOpts...)
			if werr := writeJSON(opts.out, out); werr != nil {
				return werr
			}

			return err
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Cell edit as project:YYYY-WNN=hours (repeatable)")
	cmd.Flags().IntVar(&retries, "retry", 0, "Retry failed cells up to this many times")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the effect without saving")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Cache snapshots in Redis at this address")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

// runEdit drives one session: stage every change, then save and retry.
func runEdit(
	ctx context.Context,
	log *slog.Logger,
	saver session.Saver,
	reader *client.CachedReader,
	resourceID string,
	changes []domain.PendingChange,
	dryRun bool,
	retries int,
	sessionOpts ...session.Option,
) (editOutput, error) {
	out := editOutput{ResourceID: resourceID, DryRun: dryRun}

	year, _, err := capacity.ParseWeekKey(changes[0].WeekKey)
	if err != nil {
		return out, err
	}

	snap, err := reader.Snapshot(ctx, resourceID, year)
	if err != nil {
		return out, err
	}

	s := session.New(resourceID, saver, snap, append([]session.Option{
		session.WithInvalidator(reader),
		session.WithLogger(log),
	}, sessionOpts...)...)

	columns := make([]capacity.WeekColumn, 0, len(changes))
	seen := make(map[string]bool)

	for _, ch := range changes {
		warning, err := s.AddPendingChange(ch)
		if err != nil {
			return out, err
		}

		if warning != nil {
			out.Warnings = append(out.Warnings, *warning)
		}

		if !seen[ch.WeekKey] {
			seen[ch.WeekKey] = true

			col, err := capacity.ColumnOf(ch.WeekKey)
			if err != nil {
				return out, err
			}

			columns = append(columns, col)
		}
	}

	out.Changes = s.PendingChanges()
	out.Weeks = s.WeeklyStatus(columns)

	if dryRun {
		s.Discard()
		return out, nil
	}

	res := s.SaveAll(ctx)
	out.Attempts = 1

	for res.Err != nil && out.Attempts <= retries {
		log.Warn("retrying failed cells", slog.Int("failed", len(res.Failed)), slog.Int("attempt", out.Attempts))

		res = s.RetryFailed(ctx)
		out.Attempts++
	}

	out.Saved = keyStrings(s.SavedCells())
	out.Failed = keyStrings(s.FailedCells())

	if res.Err != nil {
		out.Error = res.Err.Error()
		return out, res.Err
	}

	return out, nil
}

// parseSets reads project:YYYY-WNN=hours edits.
func parseSets(sets []string) ([]domain.PendingChange, error) {
	if len(sets) == 0 {
		return nil, errors.New("at least one --set is required")
	}

	changes := make([]domain.PendingChange, 0, len(sets))

	for _, raw := range sets {
		cell, hoursText, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected project:week=hours", raw)
		}

		project, week, ok := strings.Cut(cell, ":")
		if !ok || project == "" {
			return nil, fmt.Errorf("--set %q: expected project:week=hours", raw)
		}

		if _, _, err := capacity.ParseWeekKey(week); err != nil {
			return nil, fmt.Errorf("--set %q: %w", raw, err)
		}

		hours, err := strconv.ParseFloat(strings.TrimSpace(hoursText), 64)
		if err != nil {
			return nil, fmt.Errorf("--set %q: hours: %w", raw, err)
		}

		changes = append(changes, domain.PendingChange{ProjectID: project, WeekKey: week, Hours: hours})
	}

	return changes, nil
}

func keyStrings(keys []session.CellKey) []string {
	if len(keys) == 0 {
		return nil
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}

	return out
}

func snapshotCache(ctx context.Context, addr string) (cache.Cache, func(), error) {
	if addr == "" {
		return cache.NewMemory(0), func() {}, nil
	}

	rc := cache.NewRedis(redis.NewClient(&redis.Options{Addr: addr}), cachePrefix, 5*time.Minute)

	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", addr, err)
	}

	return rc, func() { _ = rc.Close() }, nil
}
