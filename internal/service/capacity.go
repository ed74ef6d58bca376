package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/repository"
)

type CapacityService interface {
	ResourceCapacity(ctx context.Context, resourceID string, year int) (*ResourceCapacity, error)
}

type CapacityServiceImpl struct {
	log         *slog.Logger
	resources   repository.ResourceRepository
	activities  repository.ActivityRepository
	allocations repository.AllocationRepository
	cache       cache.Cache
}

func NewCapacityService(
	log *slog.Logger,
	resources repository.ResourceRepository,
	activities repository.ActivityRepository,
	allocations repository.AllocationRepository,
	c cache.Cache,
) *CapacityServiceImpl {
	return &CapacityServiceImpl{
		log:         log,
		resources:   resources,
		activities:  activities,
		allocations: allocations,
		cache:       c,
	}
}

// ResourceCapacity returns the yearly heatmap of the resource. Results are
// cached per resource and year until an allocation or activity write
// invalidates them.
func (s *CapacityServiceImpl) ResourceCapacity(ctx context.Context, resourceID string, year int) (*ResourceCapacity, error) {
	const op = "internal.service.capacity.ResourceCapacity"
	log := s.log.With(slog.String("op", op), slog.String("resource_id", resourceID), slog.Int("year", year))

	if err := validateYear(year); err != nil {
		return nil, err
	}

	load := func(ctx context.Context) (*ResourceCapacity, error) {
		return s.compute(ctx, resourceID, year)
	}

	if s.cache == nil {
		return load(ctx)
	}

	view, err := cache.ReadThrough(ctx, s.cache, log, cache.CapacityKey(resourceID), strconv.Itoa(year), load)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

func (s *CapacityServiceImpl) compute(ctx context.Context, resourceID string, year int) (*ResourceCapacity, error) {
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	activities, err := s.activities.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	allocs, err := s.allocations.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	weekly := capacity.CapacityOf(*res)
	effective := capacity.EffectiveCapacity(weekly, activities)
	weeks := capacity.WeeksInYear(year)
	totals := capacity.AggregateWeekly(allocs, weeks)

	return &ResourceCapacity{
		ResourceID:        res.ID,
		Name:              res.Name,
		Year:              year,
		WeeklyCapacity:    weekly,
		NonProjectHours:   capacity.NonProjectHours(activities),
		EffectiveCapacity: effective,
		Weeks:             capacity.WeeklyStatus(weeks, totals, effective),
	}, nil
}
