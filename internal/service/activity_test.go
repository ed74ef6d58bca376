package service

import (
	"context"
	"testing"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityServiceImpl_CreateActivity(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMocks    func(repo *ActivityRepositoryMock, inv *InvalidatorMock)
		expectedError error
	}{
		{
			name: "Success: activity created and capacity cache dropped",
			setupMocks: func(repo *ActivityRepositoryMock, inv *InvalidatorMock) {
				repo.On("Create", ctx, mock.MatchedBy(func(a *domain.NonProjectActivity) bool {
					return a.ResourceID == "r1" && a.HoursPerWeek == 4
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.NonProjectActivity).ID = "act-1"
				}).Return(nil).Once()
				inv.On("Invalidate", ctx, []string{cache.CapacityKey("r1")}).Return(nil).Once()
			},
		},
		{
			name: "Failure: unknown resource, nothing invalidated",
			setupMocks: func(repo *ActivityRepositoryMock, inv *InvalidatorMock) {
				repo.On("Create", ctx, mock.Anything).Return(apperrors.ErrNotFound).Once()
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(ActivityRepositoryMock)
			inv := new(InvalidatorMock)
			tc.setupMocks(repo, inv)

			svc := NewActivityService(discardLogger(), new(ResourceRepositoryMock), repo, inv)

			created, err := svc.CreateActivity(ctx, ActivityInput{
				ResourceID:   "r1",
				ActivityType: domain.ActivityMeetings,
				HoursPerWeek: 4,
			})

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "act-1", created.ID)
			}

			repo.AssertExpectations(t)
			inv.AssertExpectations(t)
		})
	}
}

func TestActivityServiceImpl_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	repo := new(ActivityRepositoryMock)
	inv := new(InvalidatorMock)

	existing := &domain.NonProjectActivity{ID: "act-1", ResourceID: "r1", ActivityType: domain.ActivityMeetings, HoursPerWeek: 4}

	repo.On("GetByID", ctx, "act-1").Return(existing, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(a *domain.NonProjectActivity) bool {
		return a.ID == "act-1" && a.ResourceID == "r1" && a.HoursPerWeek == 6 && a.ActivityType == domain.ActivityTraining
	})).Return(nil).Once()
	repo.On("Delete", ctx, "act-1").Return(existing, nil).Once()
	repo.On("Delete", ctx, "act-2").Return(nil, &apperrors.ActivityNotFoundError{ActivityID: "act-2"}).Once()
	inv.On("Invalidate", ctx, []string{cache.CapacityKey("r1")}).Return(nil).Twice()

	svc := NewActivityService(discardLogger(), new(ResourceRepositoryMock), repo, inv)

	updated, err := svc.UpdateActivity(ctx, "act-1", ActivityInput{
		ResourceID:   "someone-else",
		ActivityType: domain.ActivityTraining,
		HoursPerWeek: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", updated.ResourceID)

	require.NoError(t, svc.DeleteActivity(ctx, "act-1"))

	err = svc.DeleteActivity(ctx, "act-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.AssertExpectations(t)
	inv.AssertExpectations(t)
}
