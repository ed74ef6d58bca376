package capacity

import (
	"sort"
	"strings"

	"github.com/YusovID/capacity-planner-service/internal/domain"
)

type CategoryType string

const (
	CategoryCritical   CategoryType = "critical"
	CategoryError      CategoryType = "error"
	CategoryWarning    CategoryType = "warning"
	CategoryInfo       CategoryType = "info"
	CategoryUnassigned CategoryType = "unassigned"
	CategoryUntapped   CategoryType = "untapped"
)

// categoryOrder is the display priority. Types missing from it sort last.
var categoryOrder = []CategoryType{
	CategoryCritical,
	CategoryError,
	CategoryWarning,
	CategoryInfo,
	CategoryUnassigned,
}

// Thresholds are the peak-utilization cutoffs, in percent, used by Categorize.
type Thresholds struct {
	Critical      float64 `json:"critical"`
	Warning       float64 `json:"warning"`
	UnderUtilized float64 `json:"underUtilized"`
}

const (
	DefaultCriticalAbove      = 100.0
	DefaultWarningFrom        = 85.0
	DefaultUnderUtilizedBelow = 70.0
)

func DefaultThresholds() Thresholds {
	return Thresholds{
		Critical:      DefaultCriticalAbove,
		Warning:       DefaultWarningFrom,
		UnderUtilized: DefaultUnderUtilizedBelow,
	}
}

// Normalize replaces non-positive cutoffs with defaults and falls back to the
// default table entirely when the cutoffs are not ordered
// UnderUtilized <= Warning <= Critical.
func (t Thresholds) Normalize() Thresholds {
	def := DefaultThresholds()

	if !(t.Critical > 0) {
		t.Critical = def.Critical
	}

	if !(t.Warning > 0) {
		t.Warning = def.Warning
	}

	if !(t.UnderUtilized > 0) {
		t.UnderUtilized = def.UnderUtilized
	}

	if t.UnderUtilized > t.Warning || t.Warning > t.Critical {
		return def
	}

	return t
}

// WeekUtilization is the load of one resource in one week of a period.
type WeekUtilization struct {
	WeekKey        string  `json:"weekKey"`
	AllocatedHours float64 `json:"allocatedHours"`
	Utilization    float64 `json:"utilization"`
}

// ResourceUtilization is the categorizer input for one resource.
type ResourceUtilization struct {
	ResourceID        string
	Name              string
	Department        string
	Role              string
	EffectiveCapacity float64
	HasAllocations    bool
	Weeks             []WeekUtilization
}

// BuildResourceUtilization runs aggregate and classify for r over weeks.
func BuildResourceUtilization(
	r domain.Resource,
	activities []domain.NonProjectActivity,
	allocs []domain.ResourceAllocation,
	weeks []WeekColumn,
) ResourceUtilization {
	effective := ResourceEffectiveCapacity(r, activities)
	totals := AggregateWeekly(allocs, weeks)

	hasActive := false
	for _, a := range allocs {
		if a.IsActive() {
			hasActive = true
			break
		}
	}

	ru := ResourceUtilization{
		ResourceID:        r.ID,
		Name:              r.Name,
		Department:        r.Department,
		Role:              r.Role,
		EffectiveCapacity: effective,
		HasAllocations:    hasActive,
		Weeks:             make([]WeekUtilization, 0, len(weeks)),
	}

	for _, w := range weeks {
		ru.Weeks = append(ru.Weeks, WeekUtilization{
			WeekKey:        w.Key,
			AllocatedHours: totals[w.Key],
			Utilization:    Utilization(totals[w.Key], effective),
		})
	}

	return ru
}

// AlertResource is a resource as listed inside a category.
type AlertResource struct {
	ResourceID         string  `json:"resourceId"`
	Name               string  `json:"name"`
	Department         string  `json:"department"`
	Role               string  `json:"role"`
	PeakUtilization    float64 `json:"peakUtilization"`
	PeakWeek           string  `json:"peakWeek,omitempty"`
	AverageUtilization float64 `json:"averageUtilization"`
	AllocatedHours     float64 `json:"allocatedHours"`
	EffectiveCapacity  float64 `json:"effectiveCapacity"`
}

type Category struct {
	Type        CategoryType    `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Count       int             `json:"count"`
	Resources   []AlertResource `json:"resources"`
	Threshold   *float64        `json:"threshold,omitempty"`
}

// Categorize puts every resource in at most one category, chosen by its peak
// weekly utilization inside the period. A single overloaded week is enough to
// make a resource critical even if its average is healthy. Empty categories
// are left out and the result is ordered by display priority.
func Categorize(resources []ResourceUtilization, th Thresholds) []Category {
	th = th.Normalize()

	buckets := make(map[CategoryType][]AlertResource)

	for _, ru := range resources {
		ar := summarize(ru)

		cat, ok := categoryFor(ru, ar, th)
		if !ok {
			continue
		}

		buckets[cat] = append(buckets[cat], ar)
	}

	out := make([]Category, 0, len(buckets))
	for cat, list := range buckets {
		out = append(out, newCategory(cat, list, th))
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := categoryPriority(out[i].Type), categoryPriority(out[j].Type)
		if pi != pj {
			return pi < pj
		}

		return out[i].Type < out[j].Type
	})

	return out
}

func summarize(ru ResourceUtilization) AlertResource {
	ar := AlertResource{
		ResourceID:        ru.ResourceID,
		Name:              ru.Name,
		Department:        ru.Department,
		Role:              ru.Role,
		EffectiveCapacity: ru.EffectiveCapacity,
	}

	var sum float64

	for _, w := range ru.Weeks {
		u := safeHours(w.Utilization)
		sum += u
		ar.AllocatedHours += safeHours(w.AllocatedHours)

		if ar.PeakWeek == "" || u > ar.PeakUtilization {
			ar.PeakUtilization = u
			ar.PeakWeek = w.WeekKey
		}
	}

	if len(ru.Weeks) > 0 {
		ar.AverageUtilization = sum / float64(len(ru.Weeks))
	}

	return ar
}

func categoryFor(ru ResourceUtilization, ar AlertResource, th Thresholds) (CategoryType, bool) {
	peak := ar.PeakUtilization

	switch {
	case !ru.HasAllocations:
		return CategoryUnassigned, true
	case ar.AllocatedHours > 0 && ru.EffectiveCapacity <= 0:
		return CategoryError, true
	case peak > th.Critical:
		return CategoryCritical, true
	case peak >= th.Warning:
		return CategoryWarning, true
	case peak <= 0:
		return CategoryUntapped, true
	case peak < th.UnderUtilized:
		return CategoryInfo, true
	default:
		return "", false
	}
}

func newCategory(cat CategoryType, list []AlertResource, th Thresholds) Category {
	c := Category{
		Type:      cat,
		Count:     len(list),
		Resources: list,
	}

	threshold := func(v float64) *float64 { return &v }

	switch cat {
	case CategoryCritical:
		c.Title = "Critical overallocation"
		c.Description = "Peak weekly utilization above capacity. Categorized by peak weekly utilization."
		c.Threshold = threshold(th.Critical)
	case CategoryError:
		c.Title = "No capacity left"
		c.Description = "Hours are allocated but non-project activities consume the whole weekly capacity."
	case CategoryWarning:
		c.Title = "Near capacity"
		c.Description = "Peak weekly utilization close to or at capacity."
		c.Threshold = threshold(th.Warning)
	case CategoryInfo:
		c.Title = "Under-utilized"
		c.Description = "Peak weekly utilization below the under-utilization cutoff."
		c.Threshold = threshold(th.UnderUtilized)
	case CategoryUnassigned:
		c.Title = "Unassigned"
		c.Description = "No active project allocations."
	case CategoryUntapped:
		c.Title = "Untapped"
		c.Description = "Active allocations without booked hours in the period."
	}

	return c
}

func categoryPriority(cat CategoryType) int {
	for i, c := range categoryOrder {
		if c == cat {
			return i
		}
	}

	return len(categoryOrder)
}

type SortField string

const (
	SortByName        SortField = "name"
	SortByUtilization SortField = "utilization"
	SortByDepartment  SortField = "department"
)

// SortResources returns a stably sorted copy of resources. Ties keep their
// original order, also when sorting descending. Unknown fields keep the input
// order.
func SortResources(resources []AlertResource, by SortField, desc bool) []AlertResource {
	out := make([]AlertResource, len(resources))
	copy(out, resources)

	var cmp func(a, b AlertResource) int

	switch by {
	case SortByName:
		cmp = func(a, b AlertResource) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case SortByDepartment:
		cmp = func(a, b AlertResource) int {
			return strings.Compare(strings.ToLower(a.Department), strings.ToLower(b.Department))
		}
	case SortByUtilization:
		cmp = func(a, b AlertResource) int {
			switch {
			case a.PeakUtilization < b.PeakUtilization:
				return -1
			case a.PeakUtilization > b.PeakUtilization:
				return 1
			default:
				return 0
			}
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			return c > 0
		}

		return c < 0
	})

	return out
}
