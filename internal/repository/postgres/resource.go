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

var resourceColumns = []string{"id", "name", "email", "department", "role", "weekly_capacity", "is_active"}

type ResourceRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewResourceRepository(db *sqlx.DB, log *slog.Logger) *ResourceRepository {
	return &ResourceRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ResourceRepository) GetByID(ctx context.Context, resourceID string) (*domain.Resource, error) {
	const op = "internal.repository.postgres.resource.GetByID"

	query, args, err := r.sq.Select(resourceColumns...).
		From("resources").
		Where(sq.Eq{"id": resourceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var res domain.Resource
	if err := r.db.GetContext(ctx, &res, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: resource with id '%s'", op, apperrors.ErrNotFound, resourceID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &res, nil
}

func (r *ResourceRepository) ListActive(ctx context.Context) ([]domain.Resource, error) {
	const op = "internal.repository.postgres.resource.ListActive"

	query, args, err := r.sq.Select(resourceColumns...).
		From("resources").
		Where(sq.Eq{"is_active": true}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	resources := make([]domain.Resource, 0)
	if err := r.db.SelectContext(ctx, &resources, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	r.log.Debug("listed active resources", slog.String("op", op), slog.Int("count", len(resources)))

	return resources, nil
}
