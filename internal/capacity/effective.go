package capacity

import (
	"math"
	"strings"

	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultWeeklyCapacity applies when a resource has no usable capacity.
const DefaultWeeklyCapacity = 40.0

// ParseCapacity reads a declared weekly capacity. Empty, non-numeric,
// negative and non-finite values fall back to DefaultWeeklyCapacity.
func ParseCapacity(raw string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return DefaultWeeklyCapacity
	}

	return normalizeCapacity(d.InexactFloat64())
}

// CapacityOf returns the declared weekly capacity of r.
func CapacityOf(r domain.Resource) float64 {
	if !r.WeeklyCapacity.Valid {
		return DefaultWeeklyCapacity
	}

	return normalizeCapacity(r.WeeklyCapacity.Decimal.InexactFloat64())
}

func normalizeCapacity(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return DefaultWeeklyCapacity
	}

	return v
}

// EffectiveCapacity is the capacity left for project work once the recurring
// non-project activities are taken out. It never goes below zero.
func EffectiveCapacity(capacity float64, activities []domain.NonProjectActivity) float64 {
	return math.Max(0, normalizeCapacity(capacity)-NonProjectHours(activities))
}

// NonProjectHours sums the weekly hours of activities, ignoring unusable values.
func NonProjectHours(activities []domain.NonProjectActivity) float64 {
	var sum float64
	for _, a := range activities {
		sum += safeHours(a.HoursPerWeek)
	}

	return sum
}

// ResourceEffectiveCapacity combines CapacityOf and EffectiveCapacity.
func ResourceEffectiveCapacity(r domain.Resource, activities []domain.NonProjectActivity) float64 {
	return EffectiveCapacity(CapacityOf(r), activities)
}

func safeHours(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}

	return v
}

// MaxCellHours bounds the hours a single (project, week) cell may hold.
const MaxCellHours = 40.0

// ClampCellHours bounds h to [0, MaxCellHours]; NaN becomes 0.
func ClampCellHours(h float64) float64 {
	if math.IsNaN(h) || h < 0 {
		return 0
	}

	return math.Min(h, MaxCellHours)
}
