package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/repository"
)

type ProjectService interface {
	WeeklyTotals(ctx context.Context, projectID string, year int) (*ProjectWeeklyTotals, error)
}

type ProjectServiceImpl struct {
	log         *slog.Logger
	projects    repository.ProjectRepository
	allocations repository.AllocationRepository
}

func NewProjectService(
	log *slog.Logger,
	projects repository.ProjectRepository,
	allocations repository.AllocationRepository,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		log:         log,
		projects:    projects,
		allocations: allocations,
	}
}

// WeeklyTotals sums, per week of year, the hours every resource books on the
// project through an active allocation.
func (s *ProjectServiceImpl) WeeklyTotals(ctx context.Context, projectID string, year int) (*ProjectWeeklyTotals, error) {
	const op = "internal.service.project.WeeklyTotals"

	if err := validateYear(year); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	allocs, err := s.allocations.ListActiveByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	weeks := capacity.WeeksInYear(year)
	totals := capacity.ProjectWeeklyTotals(allocs, projectID, weeks)

	out := &ProjectWeeklyTotals{
		Project: *project,
		Year:    year,
		Weeks:   make([]ProjectWeek, 0, len(weeks)),
		Total:   totals.Total(),
	}

	for _, w := range weeks {
		out.Weeks = append(out.Weeks, ProjectWeek{WeekColumn: w, Hours: totals[w.Key]})
	}

	s.log.Debug("project totals computed",
		slog.String("op", op),
		slog.String("project_id", projectID),
		slog.Int("allocations", len(allocs)),
	)

	return out, nil
}
