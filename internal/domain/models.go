package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AllocationStatus string

const (
	AllocationStatusActive    AllocationStatus = "active"
	AllocationStatusPlanned   AllocationStatus = "planned"
	AllocationStatusCompleted AllocationStatus = "completed"
)

type ActivityType string

const (
	ActivityMeetings       ActivityType = "Meetings"
	ActivityAdministration ActivityType = "Administration"
	ActivityTraining       ActivityType = "Training"
	ActivitySupport        ActivityType = "Support"
	ActivityOther          ActivityType = "Other"
)

type ProjectType string

const (
	ProjectTypeBusiness ProjectType = "business"
	ProjectTypeChange   ProjectType = "change"
)

// Resource is an employee whose weekly hours are planned. WeeklyCapacity is
// nullable on purpose: a missing capacity falls back to the default.
type Resource struct {
	ID             string              `db:"id" json:"id"`
	Name           string              `db:"name" json:"name"`
	Email          string              `db:"email" json:"email"`
	Department     string              `db:"department" json:"department"`
	Role           string              `db:"role" json:"role"`
	WeeklyCapacity decimal.NullDecimal `db:"weekly_capacity" json:"weeklyCapacity"`
	IsActive       bool                `db:"is_active" json:"isActive"`
}

type NonProjectActivity struct {
	ID           string       `db:"id" json:"id"`
	ResourceID   string       `db:"resource_id" json:"resourceId"`
	ActivityType ActivityType `db:"activity_type" json:"activityType"`
	HoursPerWeek float64      `db:"hours_per_week" json:"hoursPerWeek"`
	Description  *string      `db:"description" json:"description,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

type Project struct {
	ID         string      `db:"id" json:"id"`
	Name       string      `db:"name" json:"name"`
	Type       ProjectType `db:"type" json:"type"`
	Status     string      `db:"status" json:"status"`
	Priority   string      `db:"priority" json:"priority"`
	StartDate  *time.Time  `db:"start_date" json:"startDate,omitempty"`
	EndDate    *time.Time  `db:"end_date" json:"endDate,omitempty"`
	DirectorID *string     `db:"director_id" json:"directorId,omitempty"`
	LeadID     *string     `db:"lead_id" json:"leadId,omitempty"`
}

// ResourceAllocation links one resource to one project. Only active
// allocations take part in capacity math.
type ResourceAllocation struct {
	ID                string           `db:"id" json:"id"`
	ResourceID        string           `db:"resource_id" json:"resourceId"`
	ProjectID         string           `db:"project_id" json:"projectId"`
	Status            AllocationStatus `db:"status" json:"status"`
	Role              string           `db:"role" json:"role"`
	WeeklyAllocations WeeklyHours      `db:"weekly_allocations" json:"weeklyAllocations"`
	Project           Project          `db:"project" json:"project"`
}

func (a ResourceAllocation) IsActive() bool {
	return a.Status == AllocationStatusActive
}

// PendingChange is an unsaved edit of one (project, week) cell.
type PendingChange struct {
	ProjectID string  `json:"projectId"`
	WeekKey   string  `json:"weekKey"`
	Hours     float64 `json:"hours"`
	OldValue  float64 `json:"oldValue"`
}
