package http

import (
	"context"

	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type AllocationServiceMock struct {
	mock.Mock
}

func (m *AllocationServiceMock) ListAllocations(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ResourceAllocation), args.Error(1)
}

func (m *AllocationServiceMock) UpdateWeeklyAllocation(
	ctx context.Context,
	resourceID string,
	upd service.WeeklyAllocationUpdate,
) (*service.WeeklyAllocationResult, error) {
	args := m.Called(ctx, resourceID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.WeeklyAllocationResult), args.Error(1)
}

type CapacityServiceMock struct {
	mock.Mock
}

func (m *CapacityServiceMock) ResourceCapacity(ctx context.Context, resourceID string, year int) (*service.ResourceCapacity, error) {
	args := m.Called(ctx, resourceID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ResourceCapacity), args.Error(1)
}

type ActivityServiceMock struct {
	mock.Mock
}

func (m *ActivityServiceMock) ListActivities(ctx context.Context, resourceID string) ([]domain.NonProjectActivity, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.NonProjectActivity), args.Error(1)
}

func (m *ActivityServiceMock) CreateActivity(ctx context.Context, in service.ActivityInput) (*domain.NonProjectActivity, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.NonProjectActivity), args.Error(1)
}

func (m *ActivityServiceMock) UpdateActivity(
	ctx context.Context,
	activityID string,
	in service.ActivityInput,
) (*domain.NonProjectActivity, error) {
	args := m.Called(ctx, activityID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.NonProjectActivity), args.Error(1)
}

func (m *ActivityServiceMock) DeleteActivity(ctx context.Context, activityID string) error {
	args := m.Called(ctx, activityID)
	return args.Error(0)
}

type ProjectServiceMock struct {
	mock.Mock
}

func (m *ProjectServiceMock) WeeklyTotals(ctx context.Context, projectID string, year int) (*service.ProjectWeeklyTotals, error) {
	args := m.Called(ctx, projectID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ProjectWeeklyTotals), args.Error(1)
}

type AlertServiceMock struct {
	mock.Mock
}

func (m *AlertServiceMock) Alerts(ctx context.Context, period service.Period) (*service.AlertReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AlertReport), args.Error(1)
}
