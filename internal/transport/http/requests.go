package http

import (
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/service"
	"github.com/YusovID/capacity-planner-service/pkg/api"
)

// weeklyAllocationUpdate clamps the cell into [0, MaxCellHours]. Out of range
// hours are corrected, never rejected.
func weeklyAllocationUpdate(req api.WeeklyAllocationRequest) service.WeeklyAllocationUpdate {
	return service.WeeklyAllocationUpdate{
		ProjectID: req.ProjectId,
		WeekKey:   req.WeekKey,
		Hours:     capacity.ClampCellHours(*req.Hours),
	}
}

func createActivityInput(req api.CreateActivityRequest) service.ActivityInput {
	return service.ActivityInput{
		ResourceID:   req.ResourceId,
		ActivityType: req.ActivityType,
		HoursPerWeek: *req.HoursPerWeek,
		Description:  req.Description,
	}
}

// updateActivityInput leaves the resource empty: an activity never moves
// between resources.
func updateActivityInput(req api.UpdateActivityRequest) service.ActivityInput {
	return service.ActivityInput{
		ActivityType: req.ActivityType,
		HoursPerWeek: *req.HoursPerWeek,
		Description:  req.Description,
	}
}

func alertPeriod(params api.GetAlertsParams) service.Period {
	period := service.Period{
		Start: params.Start.Time,
		End:   params.End.Time,
	}

	if params.Label != nil {
		period.Label = *params.Label
	}

	if params.Period != nil {
		period.Filter = *params.Period
	}

	return period
}
