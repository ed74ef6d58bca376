package service

import (
	"fmt"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/domain"
)

// WeeklyAllocationUpdate sets one (project, week) cell of a resource.
type WeeklyAllocationUpdate struct {
	ProjectID string
	WeekKey   string
	Hours     float64
}

type WeeklyAllocationResult struct {
	AllocationID      string             `json:"allocationId"`
	ResourceID        string             `json:"resourceId"`
	ProjectID         string             `json:"projectId"`
	WeekKey           string             `json:"weekKey"`
	Hours             float64            `json:"hours"`
	WeeklyAllocations domain.WeeklyHours `json:"weeklyAllocations"`
}

// ResourceCapacity is the yearly heatmap of one resource.
type ResourceCapacity struct {
	ResourceID        string                  `json:"resourceId"`
	Name              string                  `json:"name"`
	Year              int                     `json:"year"`
	WeeklyCapacity    float64                 `json:"weeklyCapacity"`
	NonProjectHours   float64                 `json:"nonProjectHours"`
	EffectiveCapacity float64                 `json:"effectiveCapacity"`
	Weeks             []capacity.WeekCapacity `json:"weeks"`
}

type ProjectWeek struct {
	capacity.WeekColumn
	Hours float64 `json:"hours"`
}

type ProjectWeeklyTotals struct {
	Project domain.Project `json:"project"`
	Year    int            `json:"year"`
	Weeks   []ProjectWeek  `json:"weeks"`
	Total   float64        `json:"total"`
}

// ActivityInput carries the writable fields of a non-project activity.
type ActivityInput struct {
	ResourceID   string
	ActivityType domain.ActivityType
	HoursPerWeek float64
	Description  *string
}

// Period is the reporting window of the alerts view. Label and Filter are
// echoed back to the caller untouched.
type Period struct {
	Start  time.Time
	End    time.Time
	Label  string
	Filter string
}

// MaxPeriodDays bounds an alerts window to roughly two ISO years.
const MaxPeriodDays = 742

// Validate rejects inverted windows and windows longer than MaxPeriodDays.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return fmt.Errorf("%w: end %s is before start %s",
			apperrors.ErrInvalidPeriod, p.End.Format(dateLayout), p.Start.Format(dateLayout))
	}

	if p.End.Sub(p.Start) > MaxPeriodDays*24*time.Hour {
		return fmt.Errorf("%w: %s to %s spans more than %d days",
			apperrors.ErrInvalidPeriod, p.Start.Format(dateLayout), p.End.Format(dateLayout), MaxPeriodDays)
	}

	return nil
}

type AlertReport struct {
	Period         string              `json:"period"`
	PeriodFilter   string              `json:"periodFilter,omitempty"`
	Start          string              `json:"start"`
	End            string              `json:"end"`
	Weeks          int                 `json:"weeks"`
	Thresholds     capacity.Thresholds `json:"thresholds"`
	TotalResources int                 `json:"totalResources"`
	Categories     []capacity.Category `json:"categories"`
}
