package service

import (
	"context"
	"testing"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCapacityServiceImpl_ResourceCapacity(t *testing.T) {
	ctx := context.Background()

	resources := new(ResourceRepositoryMock)
	activities := new(ActivityRepositoryMock)
	allocs := new(AllocationRepositoryMock)
	c := cache.NewMemory(0)

	resources.On("GetByID", mock.Anything, "r1").Return(&domain.Resource{
		ID:             "r1",
		Name:           "Ada",
		WeeklyCapacity: decimal.NewNullDecimal(decimal.NewFromInt(40)),
	}, nil)
	activities.On("ListByResource", mock.Anything, "r1").Return([]domain.NonProjectActivity{
		{ActivityType: domain.ActivityMeetings, HoursPerWeek: 5},
		{ActivityType: domain.ActivityAdministration, HoursPerWeek: 3},
	}, nil)
	allocs.On("ListByResource", mock.Anything, "r1").Return([]domain.ResourceAllocation{
		{ID: "a1", ProjectID: "p1", Status: domain.AllocationStatusActive, WeeklyAllocations: domain.WeeklyHours{"2025-W10": 30}},
		{ID: "a2", ProjectID: "p2", Status: domain.AllocationStatusPlanned, WeeklyAllocations: domain.WeeklyHours{"2025-W10": 30}},
	}, nil)

	svc := NewCapacityService(discardLogger(), resources, activities, allocs, c)

	view, err := svc.ResourceCapacity(ctx, "r1", 2025)
	require.NoError(t, err)

	assert.Equal(t, 40.0, view.WeeklyCapacity)
	assert.Equal(t, 8.0, view.NonProjectHours)
	assert.Equal(t, 32.0, view.EffectiveCapacity)
	require.Len(t, view.Weeks, capacity.WeeksPerYear)

	w10 := view.Weeks[9]
	assert.Equal(t, "2025-W10", w10.Key)
	assert.Equal(t, 30.0, w10.AllocatedHours)
	assert.InDelta(t, 93.75, w10.Utilization, 1e-9)
	assert.Equal(t, capacity.StatusNearFull, w10.Status)
	assert.Equal(t, capacity.StatusNoData, view.Weeks[0].Status)

	_, err = svc.ResourceCapacity(ctx, "r1", 2025)
	require.NoError(t, err)

	resources.AssertNumberOfCalls(t, "GetByID", 1)

	require.NoError(t, c.Invalidate(ctx, cache.CapacityKey("r1")))

	_, err = svc.ResourceCapacity(ctx, "r1", 2025)
	require.NoError(t, err)

	resources.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestCapacityServiceImpl_ResourceCapacity_Errors(t *testing.T) {
	ctx := context.Background()

	resources := new(ResourceRepositoryMock)
	resources.On("GetByID", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	svc := NewCapacityService(discardLogger(), resources, new(ActivityRepositoryMock), new(AllocationRepositoryMock), cache.NewMemory(0))

	_, err := svc.ResourceCapacity(ctx, "ghost", 2025)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.ResourceCapacity(ctx, "r1", 12)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
}

func TestProjectServiceImpl_WeeklyTotals(t *testing.T) {
	ctx := context.Background()

	projects := new(ProjectRepositoryMock)
	allocs := new(AllocationRepositoryMock)

	projects.On("GetByID", ctx, "p1").Return(&domain.Project{ID: "p1", Name: "Billing"}, nil).Once()
	allocs.On("ListActiveByProject", ctx, "p1").Return([]domain.ResourceAllocation{
		{ResourceID: "r1", ProjectID: "p1", Status: domain.AllocationStatusActive, WeeklyAllocations: domain.WeeklyHours{"2025-W10": 30, "2024-W10": 99}},
		{ResourceID: "r2", ProjectID: "p1", Status: domain.AllocationStatusActive, WeeklyAllocations: domain.WeeklyHours{"2025-W10": 6, "2025-W11": 4}},
	}, nil).Once()
	projects.On("GetByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	svc := NewProjectService(discardLogger(), projects, allocs)

	totals, err := svc.WeeklyTotals(ctx, "p1", 2025)
	require.NoError(t, err)

	assert.Equal(t, "Billing", totals.Project.Name)
	require.Len(t, totals.Weeks, capacity.WeeksPerYear)
	assert.Equal(t, 36.0, totals.Weeks[9].Hours)
	assert.Equal(t, 4.0, totals.Weeks[10].Hours)
	assert.Equal(t, 40.0, totals.Total)

	_, err = svc.WeeklyTotals(ctx, "ghost", 2025)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	projects.AssertExpectations(t)
	allocs.AssertExpectations(t)
}
