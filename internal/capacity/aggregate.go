package capacity

import (
	"github.com/YusovID/capacity-planner-service/internal/domain"
)

// WeeklyTotals maps a week key to hours.
type WeeklyTotals map[string]float64

// Total sums every week.
func (t WeeklyTotals) Total() float64 {
	var sum float64
	for _, h := range t {
		sum += h
	}

	return sum
}

type aggregateOptions struct {
	projectID string
}

// AggregateOption narrows an aggregation.
type AggregateOption func(*aggregateOptions)

// ForProject keeps only the allocations of projectID.
func ForProject(projectID string) AggregateOption {
	return func(o *aggregateOptions) {
		o.projectID = projectID
	}
}

// AggregateWeekly sums the hours of the active allocations for each week column.
// Every column is present in the result, with 0 when nothing is booked.
func AggregateWeekly(allocs []domain.ResourceAllocation, weeks []WeekColumn, opts ...AggregateOption) WeeklyTotals {
	var o aggregateOptions
	for _, opt := range opts {
		opt(&o)
	}

	totals := make(WeeklyTotals, len(weeks))
	for _, w := range weeks {
		totals[w.Key] = 0
	}

	for _, a := range allocs {
		if !a.IsActive() {
			continue
		}

		if o.projectID != "" && a.ProjectID != o.projectID {
			continue
		}

		for _, w := range weeks {
			totals[w.Key] += safeHours(a.WeeklyAllocations.Get(w.Key))
		}
	}

	return totals
}

// AggregateRealtime is AggregateWeekly with unsaved edits laid over the server
// snapshot. A pending change replaces the project's value for its week: the
// original cell value is taken out and the pending hours are added.
func AggregateRealtime(
	allocs []domain.ResourceAllocation,
	weeks []WeekColumn,
	pending []domain.PendingChange,
	opts ...AggregateOption,
) WeeklyTotals {
	var o aggregateOptions
	for _, opt := range opts {
		opt(&o)
	}

	totals := AggregateWeekly(allocs, weeks, opts...)

	for _, change := range pending {
		if _, ok := totals[change.WeekKey]; !ok {
			continue
		}

		if o.projectID != "" && change.ProjectID != o.projectID {
			continue
		}

		original := CellValue(allocs, change.ProjectID, change.WeekKey)
		totals[change.WeekKey] += safeHours(change.Hours) - original
	}

	return totals
}

// CellValue is the server value of the (project, week) cell: the hours that
// the active allocations of projectID book for week.
func CellValue(allocs []domain.ResourceAllocation, projectID, week string) float64 {
	var sum float64

	for _, a := range allocs {
		if a.IsActive() && a.ProjectID == projectID {
			sum += safeHours(a.WeeklyAllocations.Get(week))
		}
	}

	return sum
}

// ProjectWeeklyTotals sums, per week, the hours every resource books on
// projectID. allocs may span many resources.
func ProjectWeeklyTotals(allocs []domain.ResourceAllocation, projectID string, weeks []WeekColumn) WeeklyTotals {
	return AggregateWeekly(allocs, weeks, ForProject(projectID))
}

// TotalsByResource groups the active allocations per resource and aggregates
// each group.
func TotalsByResource(allocs []domain.ResourceAllocation, weeks []WeekColumn) map[string]WeeklyTotals {
	grouped := make(map[string][]domain.ResourceAllocation)
	for _, a := range allocs {
		grouped[a.ResourceID] = append(grouped[a.ResourceID], a)
	}

	out := make(map[string]WeeklyTotals, len(grouped))
	for resourceID, group := range grouped {
		out[resourceID] = AggregateWeekly(group, weeks)
	}

	return out
}
