package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var alertResources = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "capacity_alert_resources",
		Help: "Number of resources per alert category in the last computed report.",
	},
	[]string{"category"},
)

type AlertService interface {
	Alerts(ctx context.Context, period Period) (*AlertReport, error)
}

type AlertServiceImpl struct {
	log         *slog.Logger
	resources   repository.ResourceRepository
	activities  repository.ActivityRepository
	allocations repository.AllocationRepository
	thresholds  capacity.Thresholds
}

func NewAlertService(
	log *slog.Logger,
	resources repository.ResourceRepository,
	activities repository.ActivityRepository,
	allocations repository.AllocationRepository,
	thresholds capacity.Thresholds,
) *AlertServiceImpl {
	return &AlertServiceImpl{
		log:         log,
		resources:   resources,
		activities:  activities,
		allocations: allocations,
		thresholds:  thresholds.Normalize(),
	}
}

// Alerts categorizes every active resource by its peak utilization over the
// weeks touched by period.
func (s *AlertServiceImpl) Alerts(ctx context.Context, period Period) (*AlertReport, error) {
	const op = "internal.service.alerts.Alerts"
	log := s.log.With(slog.String("op", op))

	if err := period.Validate(); err != nil {
		return nil, err
	}

	weeks := capacity.WeeksInPeriod(period.Start, period.End)
	if len(weeks) == 0 {
		return nil, fmt.Errorf("%w: no weeks between %s and %s",
			apperrors.ErrInvalidPeriod, period.Start.Format(dateLayout), period.End.Format(dateLayout))
	}

	resources, err := s.resources.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids := make([]string, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}

	activities, err := s.activities.ListByResources(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	allocs, err := s.allocations.ListActiveByResources(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byResource := make(map[string][]domain.ResourceAllocation, len(resources))
	for _, a := range allocs {
		byResource[a.ResourceID] = append(byResource[a.ResourceID], a)
	}

	utilization := make([]capacity.ResourceUtilization, 0, len(resources))
	for _, r := range resources {
		utilization = append(utilization, capacity.BuildResourceUtilization(r, activities[r.ID], byResource[r.ID], weeks))
	}

	categories := capacity.Categorize(utilization, s.thresholds)
	observeCategories(categories)

	label := period.Label
	if label == "" {
		label = fmt.Sprintf("%s to %s", period.Start.Format(dateLayout), period.End.Format(dateLayout))
	}

	log.Info("alerts computed",
		slog.String("period", label),
		slog.Int("weeks", len(weeks)),
		slog.Int("resources", len(resources)),
		slog.Int("categories", len(categories)),
	)

	return &AlertReport{
		Period:         label,
		PeriodFilter:   period.Filter,
		Start:          period.Start.Format(dateLayout),
		End:            period.End.Format(dateLayout),
		Weeks:          len(weeks),
		Thresholds:     s.thresholds,
		TotalResources: len(resources),
		Categories:     categories,
	}, nil
}

const dateLayout = "2006-01-02"

func observeCategories(categories []capacity.Category) {
	alertResources.Reset()

	for _, c := range categories {
		alertResources.WithLabelValues(string(c.Type)).Set(float64(c.Count))
	}
}
