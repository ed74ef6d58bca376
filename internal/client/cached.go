package client

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/session"
)

const allocationsField = "all"

// AllocationSource is the part of Client the cached reader wraps.
type AllocationSource interface {
	Allocations(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error)
	Snapshot(ctx context.Context, resourceID string, year int) (session.Snapshot, error)
}

// CachedReader serves allocation snapshots from a cache keyed by
// cache.AllocationsKey. A session handed this reader as its invalidator drops
// the snapshot once every edit is saved, so the next read refetches.
type CachedReader struct {
	src   AllocationSource
	cache cache.Cache
	log   *slog.Logger
}

var _ cache.Invalidator = (*CachedReader)(nil)

func NewCachedReader(src AllocationSource, c cache.Cache, log *slog.Logger) *CachedReader {
	return &CachedReader{src: src, cache: c, log: log}
}

func (r *CachedReader) Allocations(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error) {
	const op = "internal.client.CachedReader.Allocations"

	allocations, err := cache.ReadThrough(ctx, r.cache, r.log, cache.AllocationsKey(resourceID), allocationsField,
		func(ctx context.Context) ([]domain.ResourceAllocation, error) {
			return r.src.Allocations(ctx, resourceID)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return allocations, nil
}

// Snapshot caches the whole session snapshot per year next to the plain
// allocation list, under the same key.
func (r *CachedReader) Snapshot(ctx context.Context, resourceID string, year int) (session.Snapshot, error) {
	const op = "internal.client.CachedReader.Snapshot"

	snap, err := cache.ReadThrough(ctx, r.cache, r.log, cache.AllocationsKey(resourceID), "snapshot:"+strconv.Itoa(year),
		func(ctx context.Context) (session.Snapshot, error) {
			return r.src.Snapshot(ctx, resourceID, year)
		})
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}

func (r *CachedReader) Invalidate(ctx context.Context, keys ...string) error {
	return r.cache.Invalidate(ctx, keys...)
}
