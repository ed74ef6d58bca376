// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"

	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

// ResourceRepository reads the people whose hours are planned.
type ResourceRepository interface {
	// GetByID returns apperrors.ErrNotFound if the resource does not exist.
	GetByID(ctx context.Context, resourceID string) (*domain.Resource, error)

	// ListActive returns every active resource ordered by name.
	ListActive(ctx context.Context) ([]domain.Resource, error)
}

type ProjectRepository interface {
	// GetByID returns apperrors.ErrNotFound if the project does not exist.
	GetByID(ctx context.Context, projectID string) (*domain.Project, error)
}

// AllocationRepository defines the contract for resource-to-project allocations
// and their sparse weekly hours.
type AllocationRepository interface {
	// ListByResource returns all allocations of a resource, whatever their status,
	// with the allocated project embedded.
	ListByResource(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error)

	// ListActiveByProject returns the active allocations of one project.
	ListActiveByProject(ctx context.Context, projectID string) ([]domain.ResourceAllocation, error)

	// ListActiveByResources returns the active allocations of many resources in one query.
	ListActiveByResources(ctx context.Context, resourceIDs []string) ([]domain.ResourceAllocation, error)

	// GetActiveForUpdate locks the active allocation of resource on project ("FOR UPDATE").
	// It returns apperrors.ErrAllocationNotActive if there is none.
	GetActiveForUpdate(ctx context.Context, tx *sqlx.Tx, resourceID, projectID string) (*domain.ResourceAllocation, error)

	// SetWeeklyHours writes a single week of an allocation and returns the resulting map.
	// The write touches only that week; other weeks are preserved.
	SetWeeklyHours(ctx context.Context, tx *sqlx.Tx, allocationID, weekKey string, hours float64) (domain.WeeklyHours, error)
}

// ActivityRepository defines the contract for recurring non-project activities.
type ActivityRepository interface {
	ListByResource(ctx context.Context, resourceID string) ([]domain.NonProjectActivity, error)

	// ListByResources groups the activities of many resources by resource id.
	ListByResources(ctx context.Context, resourceIDs []string) (map[string][]domain.NonProjectActivity, error)

	// GetByID returns an *apperrors.ActivityNotFoundError if the activity does not exist.
	GetByID(ctx context.Context, activityID string) (*domain.NonProjectActivity, error)

	// Create inserts the activity and fills its generated id and timestamps.
	// It returns apperrors.ErrNotFound if the resource does not exist.
	Create(ctx context.Context, activity *domain.NonProjectActivity) error

	// Update overwrites type, hours and description of an existing activity.
	Update(ctx context.Context, activity *domain.NonProjectActivity) error

	// Delete removes the activity and returns the deleted row.
	Delete(ctx context.Context, activityID string) (*domain.NonProjectActivity, error)
}
