package session

import (
	"fmt"
	"sort"

	"github.com/YusovID/capacity-planner-service/internal/capacity"
)

type CellState int

const (
	StateClean CellState = iota
	StatePending
	StateSaving
	StateSaved
	StateFailed
)

func (s CellState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StatePending:
		return "pending"
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}

// CellKey addresses one (project, week) entry of the editing grid.
type CellKey struct {
	ProjectID string
	WeekKey   string
}

func (k CellKey) String() string {
	return k.ProjectID + "-" + k.WeekKey
}

func (k CellKey) Less(o CellKey) bool {
	if k.ProjectID != o.ProjectID {
		return k.ProjectID < o.ProjectID
	}

	return k.WeekKey < o.WeekKey
}

func sortKeys(keys []CellKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning is the advisory returned by AddPendingChange when the edited week
// runs hot.
type Warning struct {
	Severity          Severity `json:"severity"`
	WeekKey           string   `json:"weekKey"`
	AllocatedHours    float64  `json:"allocatedHours"`
	EffectiveCapacity float64  `json:"effectiveCapacity"`
	Utilization       float64  `json:"utilization"`
	Message           string   `json:"message"`
}

func (s *Session) overallocationLocked(week string) *Warning {
	weeks := []capacity.WeekColumn{{Key: week}}
	totals := capacity.AggregateRealtime(s.snapshot.Allocations, weeks, s.pendingLocked())

	allocated := totals[week]
	effective := s.snapshot.EffectiveCapacity

	if allocated <= 0 {
		return nil
	}

	if effective <= 0 {
		return &Warning{
			Severity:       SeverityError,
			WeekKey:        week,
			AllocatedHours: allocated,
			Message:        fmt.Sprintf("%s: %.1fh allocated with no effective capacity", week, allocated),
		}
	}

	util := capacity.Utilization(allocated, effective)

	var severity Severity

	switch {
	case allocated > effective:
		severity = SeverityError
	case util >= s.thresholds.Warning:
		severity = SeverityWarning
	default:
		return nil
	}

	return &Warning{
		Severity:          severity,
		WeekKey:           week,
		AllocatedHours:    allocated,
		EffectiveCapacity: effective,
		Utilization:       util,
		Message: fmt.Sprintf("%s: %.1fh allocated of %.1fh effective capacity (%.0f%%)",
			week, allocated, effective, util),
	}
}
