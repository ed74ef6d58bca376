package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/service"
	"github.com/YusovID/capacity-planner-service/pkg/api"
)

func (s *Server) GetResourceAllocations(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.GetResourceAllocations"

	allocations, err := s.allocationService.ListAllocations(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if allocations == nil {
		allocations = []domain.ResourceAllocation{}
	}

	s.respond(w, http.StatusOK, api.AllocationsResponse{Allocations: allocations})
}

func (s *Server) GetResourceActivities(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.GetResourceActivities"

	activities, err := s.activityService.ListActivities(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if activities == nil {
		activities = []domain.NonProjectActivity{}
	}

	s.respond(w, http.StatusOK, api.ActivitiesResponse{Activities: activities})
}

func (s *Server) PutWeeklyAllocation(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.PutWeeklyAllocation"

	var req api.PutWeeklyAllocationJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	res, err := s.allocationService.UpdateWeeklyAllocation(r.Context(), id, weeklyAllocationUpdate(req))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, res)
}

func (s *Server) GetResourceCapacity(w http.ResponseWriter, r *http.Request, id api.ID, params api.GetResourceCapacityParams) {
	const op = "internal.transport.http.GetResourceCapacity"

	year, err := resolveYear(params.Year)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	view, err := s.capacityService.ResourceCapacity(r.Context(), id, year)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, view)
}

func (s *Server) PostActivity(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostActivity"

	var req api.PostActivityJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	activity, err := s.activityService.CreateActivity(r.Context(), createActivityInput(req))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, activity)
}

func (s *Server) PutActivity(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.PutActivity"

	var req api.PutActivityJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	activity, err := s.activityService.UpdateActivity(r.Context(), id, updateActivityInput(req))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, activity)
}

func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.DeleteActivity"

	if err := s.activityService.DeleteActivity(r.Context(), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetProjectWeeklyTotals(w http.ResponseWriter, r *http.Request, id api.ID, params api.GetProjectWeeklyTotalsParams) {
	const op = "internal.transport.http.GetProjectWeeklyTotals"

	year, err := resolveYear(params.Year)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	totals, err := s.projectService.WeeklyTotals(r.Context(), id, year)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, totals)
}

func (s *Server) GetAlerts(w http.ResponseWriter, r *http.Request, params api.GetAlertsParams) {
	const op = "internal.transport.http.GetAlerts"

	period := alertPeriod(params)
	if err := period.Validate(); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.alertService.Alerts(r.Context(), period)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, report)
}

func (s *Server) GetWeeks(w http.ResponseWriter, r *http.Request, params api.GetWeeksParams) {
	const op = "internal.transport.http.GetWeeks"

	year, err := resolveYear(params.Year)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, api.WeeksResponse{Year: year, Weeks: capacity.WeeksInYear(year)})
}

// resolveYear defaults an absent ?year= to the current UTC year.
func resolveYear(year *api.Year) (int, error) {
	if year == nil {
		return time.Now().UTC().Year(), nil
	}

	if *year < service.MinYear || *year > service.MaxYear {
		return 0, fmt.Errorf("year %d: %w", *year, apperrors.ErrInvalidPeriod)
	}

	return *year, nil
}
