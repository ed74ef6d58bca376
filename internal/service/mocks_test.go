package service

import (
	"context"
	"database/sql"

	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type ResourceRepositoryMock struct {
	mock.Mock
}

var _ repository.ResourceRepository = (*ResourceRepositoryMock)(nil)

func (m *ResourceRepositoryMock) GetByID(ctx context.Context, resourceID string) (*domain.Resource, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *ResourceRepositoryMock) ListActive(ctx context.Context) ([]domain.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Resource), args.Error(1)
}

type ProjectRepositoryMock struct {
	mock.Mock
}

var _ repository.ProjectRepository = (*ProjectRepositoryMock)(nil)

func (m *ProjectRepositoryMock) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

type AllocationRepositoryMock struct {
	mock.Mock
}

var _ repository.AllocationRepository = (*AllocationRepositoryMock)(nil)

func (m *AllocationRepositoryMock) ListByResource(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ResourceAllocation), args.Error(1)
}

func (m *AllocationRepositoryMock) ListActiveByProject(ctx context.Context, projectID string) ([]domain.ResourceAllocation, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ResourceAllocation), args.Error(1)
}

func (m *AllocationRepositoryMock) ListActiveByResources(ctx context.Context, resourceIDs []string) ([]domain.ResourceAllocation, error) {
	args := m.Called(ctx, resourceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ResourceAllocation), args.Error(1)
}

func (m *AllocationRepositoryMock) GetActiveForUpdate(ctx context.Context, tx *sqlx.Tx, resourceID, projectID string) (*domain.ResourceAllocation, error) {
	args := m.Called(ctx, tx, resourceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ResourceAllocation), args.Error(1)
}

func (m *AllocationRepositoryMock) SetWeeklyHours(ctx context.Context, tx *sqlx.Tx, allocationID, weekKey string, hours float64) (domain.WeeklyHours, error) {
	args := m.Called(ctx, tx, allocationID, weekKey, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(domain.WeeklyHours), args.Error(1)
}

type ActivityRepositoryMock struct {
	mock.Mock
}

var _ repository.ActivityRepository = (*ActivityRepositoryMock)(nil)

func (m *ActivityRepositoryMock) ListByResource(ctx context.Context, resourceID string) ([]domain.NonProjectActivity, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.NonProjectActivity), args.Error(1)
}

func (m *ActivityRepositoryMock) ListByResources(ctx context.Context, resourceIDs []string) (map[string][]domain.NonProjectActivity, error) {
	args := m.Called(ctx, resourceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string][]domain.NonProjectActivity), args.Error(1)
}

func (m *ActivityRepositoryMock) GetByID(ctx context.Context, activityID string) (*domain.NonProjectActivity, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.NonProjectActivity), args.Error(1)
}

func (m *ActivityRepositoryMock) Create(ctx context.Context, activity *domain.NonProjectActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *ActivityRepositoryMock) Update(ctx context.Context, activity *domain.NonProjectActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *ActivityRepositoryMock) Delete(ctx context.Context, activityID string) (*domain.NonProjectActivity, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.NonProjectActivity), args.Error(1)
}

type InvalidatorMock struct {
	mock.Mock
}

var _ cache.Invalidator = (*InvalidatorMock)(nil)

func (m *InvalidatorMock) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}
