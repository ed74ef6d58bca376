package capacity

// Status is the per-week utilization bucket of a cell or heatmap square.
type Status string

const (
	StatusNoData        Status = "no-data"
	StatusHealthy       Status = "healthy"
	StatusNearFull      Status = "near-full"
	StatusOverallocated Status = "overallocated"
)

// Fixed cutoffs shared with every client rendering the heatmap.
const (
	NearFullFrom      = 80.0
	OverallocatedFrom = 100.0
)

// Utilization returns allocated as a percentage of effective. A zero
// effective capacity reports 0.
func Utilization(allocated, effective float64) float64 {
	allocated = safeHours(allocated)
	effective = safeHours(effective)

	if effective <= 0 {
		return 0
	}

	return allocated / effective * 100
}

// Classify buckets the utilization of allocated against effective.
func Classify(allocated, effective float64) Status {
	return ClassifyUtilization(Utilization(allocated, effective))
}

// ClassifyUtilization buckets a utilization percentage.
func ClassifyUtilization(pct float64) Status {
	switch {
	case !(pct > 0):
		return StatusNoData
	case pct < NearFullFrom:
		return StatusHealthy
	case pct < OverallocatedFrom:
		return StatusNearFull
	default:
		return StatusOverallocated
	}
}

// WeekCapacity is one heatmap square.
type WeekCapacity struct {
	WeekColumn
	AllocatedHours    float64 `json:"allocatedHours"`
	EffectiveCapacity float64 `json:"effectiveCapacity"`
	AvailableHours    float64 `json:"availableHours"`
	Utilization       float64 `json:"utilization"`
	Status            Status  `json:"status"`
}

// WeeklyStatus classifies each week column against a flat effective capacity.
func WeeklyStatus(weeks []WeekColumn, totals WeeklyTotals, effective float64) []WeekCapacity {
	out := make([]WeekCapacity, 0, len(weeks))

	for _, w := range weeks {
		allocated := safeHours(totals[w.Key])
		out = append(out, WeekCapacity{
			WeekColumn:        w,
			AllocatedHours:    allocated,
			EffectiveCapacity: effective,
			AvailableHours:    effective - allocated,
			Utilization:       Utilization(allocated, effective),
			Status:            Classify(allocated, effective),
		})
	}

	return out
}
