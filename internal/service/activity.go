package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/repository"
)

type ActivityService interface {
	ListActivities(ctx context.Context, resourceID string) ([]domain.NonProjectActivity, error)
	CreateActivity(ctx context.Context, in ActivityInput) (*domain.NonProjectActivity, error)
	UpdateActivity(ctx context.Context, activityID string, in ActivityInput) (*domain.NonProjectActivity, error)
	DeleteActivity(ctx context.Context, activityID string) error
}

// ActivityServiceImpl manages non-project activities. Every write drops the
// cached capacity view of the owning resource.
type ActivityServiceImpl struct {
	log        *slog.Logger
	resources  repository.ResourceRepository
	activities repository.ActivityRepository
	cache      cache.Invalidator
}

func NewActivityService(
	log *slog.Logger,
	resources repository.ResourceRepository,
	activities repository.ActivityRepository,
	inv cache.Invalidator,
) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		log:        log,
		resources:  resources,
		activities: activities,
		cache:      inv,
	}
}

func (s *ActivityServiceImpl) ListActivities(ctx context.Context, resourceID string) ([]domain.NonProjectActivity, error) {
	const op = "internal.service.activity.ListActivities"

	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	activities, err := s.activities.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return activities, nil
}

func (s *ActivityServiceImpl) CreateActivity(ctx context.Context, in ActivityInput) (*domain.NonProjectActivity, error) {
	const op = "internal.service.activity.CreateActivity"
	log := s.log.With(slog.String("op", op), slog.String("resource_id", in.ResourceID))

	activity := &domain.NonProjectActivity{
		ResourceID:   in.ResourceID,
		ActivityType: in.ActivityType,
		HoursPerWeek: in.HoursPerWeek,
		Description:  in.Description,
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	invalidate(ctx, s.cache, log, cache.CapacityKey(activity.ResourceID))

	return activity, nil
}

// UpdateActivity rewrites type, hours and description. The owning resource
// never changes.
func (s *ActivityServiceImpl) UpdateActivity(ctx context.Context, activityID string, in ActivityInput) (*domain.NonProjectActivity, error) {
	const op = "internal.service.activity.UpdateActivity"
	log := s.log.With(slog.String("op", op), slog.String("activity_id", activityID))

	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	activity.ActivityType = in.ActivityType
	activity.HoursPerWeek = in.HoursPerWeek
	activity.Description = in.Description

	if err := s.activities.Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	invalidate(ctx, s.cache, log, cache.CapacityKey(activity.ResourceID))

	log.Info("activity updated", slog.Float64("hours_per_week", activity.HoursPerWeek))

	return activity, nil
}

func (s *ActivityServiceImpl) DeleteActivity(ctx context.Context, activityID string) error {
	const op = "internal.service.activity.DeleteActivity"
	log := s.log.With(slog.String("op", op), slog.String("activity_id", activityID))

	deleted, err := s.activities.Delete(ctx, activityID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	invalidate(ctx, s.cache, log, cache.CapacityKey(deleted.ResourceID))

	return nil
}
