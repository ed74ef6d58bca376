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
	"github.com/jmoiron/sqlx"
)

// allocationColumns embeds the allocated project under the "project." prefix
// so that sqlx scans it into ResourceAllocation.Project.
var allocationColumns = []string{
	"a.id",
	"a.resource_id",
	"a.project_id",
	"a.status",
	"a.role",
	"a.weekly_allocations",
	`p.id AS "project.id"`,
	`p.name AS "project.name"`,
	`p.type AS "project.type"`,
	`p.status AS "project.status"`,
	`p.priority AS "project.priority"`,
	`p.start_date AS "project.start_date"`,
	`p.end_date AS "project.end_date"`,
	`p.director_id AS "project.director_id"`,
	`p.lead_id AS "project.lead_id"`,
}

// weeklyCellExpr writes one week into weekly_allocations. A stored value that
// is not a JSON object is replaced by an empty one first.
const weeklyCellExpr = `jsonb_set(
	CASE WHEN jsonb_typeof(weekly_allocations) = 'object' THEN weekly_allocations ELSE '{}'::jsonb END,
	ARRAY[?]::text[],
	to_jsonb(?::numeric),
	true
)`

type AllocationRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAllocationRepository(db *sqlx.DB, log *slog.Logger) *AllocationRepository {
	return &AllocationRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AllocationRepository) selectAllocations() sq.SelectBuilder {
	return r.sq.Select(allocationColumns...).
		From("resource_allocations a").
		Join("projects p ON p.id = a.project_id")
}

func (r *AllocationRepository) list(ctx context.Context, op string, b sq.SelectBuilder) ([]domain.ResourceAllocation, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	allocs := make([]domain.ResourceAllocation, 0)
	if err := r.db.SelectContext(ctx, &allocs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return allocs, nil
}

func (r *AllocationRepository) ListByResource(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error) {
	const op = "internal.repository.postgres.allocation.ListByResource"

	return r.list(ctx, op, r.selectAllocations().
		Where(sq.Eq{"a.resource_id": resourceID}).
		OrderBy("p.name", "a.id"),
	)
}

func (r *AllocationRepository) ListActiveByProject(ctx context.Context, projectID string) ([]domain.ResourceAllocation, error) {
	const op = "internal.repository.postgres.allocation.ListActiveByProject"

	return r.list(ctx, op, r.selectAllocations().
		Where(sq.Eq{"a.project_id": projectID, "a.status": domain.AllocationStatusActive}).
		OrderBy("a.resource_id", "a.id"),
	)
}

func (r *AllocationRepository) ListActiveByResources(ctx context.Context, resourceIDs []string) ([]domain.ResourceAllocation, error) {
	const op = "internal.repository.postgres.allocation.ListActiveByResources"

	if len(resourceIDs) == 0 {
		return []domain.ResourceAllocation{}, nil
	}

	allocs, err := r.list(ctx, op, r.selectAllocations().
		Where(sq.Eq{"a.resource_id": resourceIDs, "a.status": domain.AllocationStatusActive}).
		OrderBy("a.resource_id", "p.name"),
	)
	if err != nil {
		return nil, err
	}

	r.log.Debug("listed active allocations",
		slog.String("op", op),
		slog.Int("resources", len(resourceIDs)),
		slog.Int("allocations", len(allocs)),
	)

	return allocs, nil
}

func (r *AllocationRepository) GetActiveForUpdate(ctx context.Context, tx *sqlx.Tx, resourceID, projectID string) (*domain.ResourceAllocation, error) {
	const op = "internal.repository.postgres.allocation.GetActiveForUpdate"

	query, args, err := r.sq.Select("id", "resource_id", "project_id", "status", "role", "weekly_allocations").
		From("resource_allocations").
		Where(sq.Eq{
			"resource_id": resourceID,
			"project_id":  projectID,
			"status":      domain.AllocationStatusActive,
		}).
		OrderBy("id").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var alloc domain.ResourceAllocation
	if err := tx.GetContext(ctx, &alloc, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: resource '%s', project '%s'",
				op, apperrors.ErrAllocationNotActive, resourceID, projectID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &alloc, nil
}

func (r *AllocationRepository) SetWeeklyHours(
	ctx context.Context,
	tx *sqlx.Tx,
	allocationID, weekKey string,
	hours float64,
) (domain.WeeklyHours, error) {
	const op = "internal.repository.postgres.allocation.SetWeeklyHours"

	query, args, err := r.sq.Update("resource_allocations").
		Set("weekly_allocations", sq.Expr(weeklyCellExpr, weekKey, hours)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": allocationID}).
		Suffix("RETURNING weekly_allocations").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var weekly domain.WeeklyHours
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&weekly); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: allocation with id '%s'", op, apperrors.ErrNotFound, allocationID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return weekly, nil
}
