package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var activityColumns = []string{
	"id", "resource_id", "activity_type", "hours_per_week", "description", "created_at", "updated_at",
}

const activityReturning = "RETURNING id, resource_id, activity_type, hours_per_week, description, created_at, updated_at"

type ActivityRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewActivityRepository(db *sqlx.DB, log *slog.Logger) *ActivityRepository {
	return &ActivityRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ActivityRepository) ListByResource(ctx context.Context, resourceID string) ([]domain.NonProjectActivity, error) {
	const op = "internal.repository.postgres.activity.ListByResource"

	query, args, err := r.sq.Select(activityColumns...).
		From("non_project_activities").
		Where(sq.Eq{"resource_id": resourceID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	activities := make([]domain.NonProjectActivity, 0)
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return activities, nil
}

func (r *ActivityRepository) ListByResources(ctx context.Context, resourceIDs []string) (map[string][]domain.NonProjectActivity, error) {
	const op = "internal.repository.postgres.activity.ListByResources"

	byResource := make(map[string][]domain.NonProjectActivity, len(resourceIDs))
	if len(resourceIDs) == 0 {
		return byResource, nil
	}

	query, args, err := r.sq.Select(activityColumns...).
		From("non_project_activities").
		Where(sq.Eq{"resource_id": resourceIDs}).
		OrderBy("resource_id", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var activities []domain.NonProjectActivity
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	for _, a := range activities {
		byResource[a.ResourceID] = append(byResource[a.ResourceID], a)
	}

	return byResource, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, activityID string) (*domain.NonProjectActivity, error) {
	const op = "internal.repository.postgres.activity.GetByID"

	query, args, err := r.sq.Select(activityColumns...).
		From("non_project_activities").
		Where(sq.Eq{"id": activityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var activity domain.NonProjectActivity
	if err := r.db.GetContext(ctx, &activity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperrors.ActivityNotFoundError{ActivityID: activityID}
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &activity, nil
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.NonProjectActivity) error {
	const op = "internal.repository.postgres.activity.Create"
	log := r.log.With(slog.String("op", op), slog.String("resource_id", activity.ResourceID))

	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}

	query, args, err := r.sq.Insert("non_project_activities").
		Columns("id", "resource_id", "activity_type", "hours_per_week", "description").
		Values(activity.ID, activity.ResourceID, activity.ActivityType, activity.HoursPerWeek, activity.Description).
		Suffix(activityReturning).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(activity); err != nil {
		switch pqCode(err) {
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: resource with id '%s'", op, apperrors.ErrNotFound, activity.ResourceID)
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w: activity with id '%s'", op, apperrors.ErrAlreadyExists, activity.ID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	log.Info("activity created", slog.String("activity_id", activity.ID))

	return nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity *domain.NonProjectActivity) error {
	const op = "internal.repository.postgres.activity.Update"

	query, args, err := r.sq.Update("non_project_activities").
		Set("activity_type", activity.ActivityType).
		Set("hours_per_week", activity.HoursPerWeek).
		Set("description", activity.Description).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": activity.ID}).
		Suffix(activityReturning).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(activity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &apperrors.ActivityNotFoundError{ActivityID: activity.ID}
		}

		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, activityID string) (*domain.NonProjectActivity, error) {
	const op = "internal.repository.postgres.activity.Delete"

	query, args, err := r.sq.Delete("non_project_activities").
		Where(sq.Eq{"id": activityID}).
		Suffix(activityReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	var deleted domain.NonProjectActivity
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperrors.ActivityNotFoundError{ActivityID: activityID}
		}

		return nil, fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	r.log.Info("activity deleted", slog.String("op", op), slog.String("activity_id", activityID))

	return &deleted, nil
}
