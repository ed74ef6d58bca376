package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

type AllocationService interface {
	ListAllocations(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error)
	UpdateWeeklyAllocation(ctx context.Context, resourceID string, upd WeeklyAllocationUpdate) (*WeeklyAllocationResult, error)
}

type AllocationServiceImpl struct {
	BaseService
	resources   repository.ResourceRepository
	allocations repository.AllocationRepository
	cache       cache.Invalidator
}

func NewAllocationService(
	db Transactor,
	log *slog.Logger,
	resources repository.ResourceRepository,
	allocations repository.AllocationRepository,
	inv cache.Invalidator,
) *AllocationServiceImpl {
	return &AllocationServiceImpl{
		BaseService: NewBaseService(db, log),
		resources:   resources,
		allocations: allocations,
		cache:       inv,
	}
}

func (s *AllocationServiceImpl) ListAllocations(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error) {
	const op = "internal.service.allocation.ListAllocations"

	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	allocs, err := s.allocations.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return allocs, nil
}

// UpdateWeeklyAllocation writes one cell of the resource's active allocation
// on the project. Hours are clamped to [0, capacity.MaxCellHours].
func (s *AllocationServiceImpl) UpdateWeeklyAllocation(
	ctx context.Context,
	resourceID string,
	upd WeeklyAllocationUpdate,
) (*WeeklyAllocationResult, error) {
	const op = "internal.service.allocation.UpdateWeeklyAllocation"
	log := s.log.With(
		slog.String("op", op),
		slog.String("resource_id", resourceID),
		slog.String("project_id", upd.ProjectID),
		slog.String("week", upd.WeekKey),
	)

	if upd.ProjectID == "" {
		return nil, fmt.Errorf("%w: projectId is required", apperrors.ErrValidation)
	}

	if _, _, err := capacity.ParseWeekKey(upd.WeekKey); err != nil {
		return nil, err
	}

	hours := capacity.ClampCellHours(upd.Hours)

	var result *WeeklyAllocationResult

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		alloc, err := s.allocations.GetActiveForUpdate(ctx, tx, resourceID, upd.ProjectID)
		if err != nil {
			return err
		}

		weekly, err := s.allocations.SetWeeklyHours(ctx, tx, alloc.ID, upd.WeekKey, hours)
		if err != nil {
			return fmt.Errorf("%s: failed to set weekly hours: %w", op, err)
		}

		result = &WeeklyAllocationResult{
			AllocationID:      alloc.ID,
			ResourceID:        resourceID,
			ProjectID:         upd.ProjectID,
			WeekKey:           upd.WeekKey,
			Hours:             hours,
			WeeklyAllocations: weekly,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, log, cache.CapacityKey(resourceID), cache.AllocationsKey(resourceID))

	log.Info("weekly allocation updated", slog.Float64("hours", hours))

	return result, nil
}
