package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

// Year bounds accepted by the yearly views.
const (
	MinYear = 1970
	MaxYear = 9999
)

type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type BaseService struct {
	db  Transactor
	log *slog.Logger
}

func NewBaseService(db Transactor, log *slog.Logger) BaseService {
	return BaseService{
		db:  db,
		log: log,
	}
}

func (s *BaseService) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}

// invalidate drops cached views after a write. A cache failure never fails
// the write that triggered it.
func invalidate(ctx context.Context, inv cache.Invalidator, log *slog.Logger, keys ...string) {
	if inv == nil {
		return
	}

	if err := inv.Invalidate(ctx, keys...); err != nil {
		log.Warn("failed to invalidate cache", slog.Any("keys", keys), sl.Err(err))
	}
}

func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d", apperrors.ErrInvalidPeriod, year)
	}

	return nil
}
