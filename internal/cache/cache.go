// Package cache is the read-through cache used for capacity views and
// allocation snapshots. Entries are grouped under a key so that one
// Invalidate drops every field cached for a resource.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/YusovID/capacity-planner-service/pkg/logger/sl"
	"github.com/goccy/go-json"
)

// Invalidator is the narrow contract handed to writers.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Cache stores JSON encoded values as fields grouped under a key.
type Cache interface {
	Invalidator
	// Get decodes the cached field into dest and reports whether it was found.
	Get(ctx context.Context, key, field string, dest any) (bool, error)
	Set(ctx context.Context, key, field string, value any) error
	// Version is the invalidation generation of key. Invalidate bumps it.
	Version(ctx context.Context, key string) (uint64, error)
	// SetAt stores the field only while key is still at version and reports
	// whether it did.
	SetAt(ctx context.Context, key, field string, value any, version uint64) (bool, error)
}

func CapacityKey(resourceID string) string {
	return "capacity:" + resourceID
}

func AllocationsKey(resourceID string) string {
	return "allocations:" + resourceID
}

// ReadThrough returns the cached field or loads, stores and returns it. Cache
// failures are logged and never hide a successful load. A load that races an
// Invalidate of key is returned but not stored.
func ReadThrough[T any](ctx context.Context, c Cache, log *slog.Logger, key, field string, load func(context.Context) (T, error)) (T, error) {
	const op = "internal.cache.ReadThrough"

	var cached T

	found, err := c.Get(ctx, key, field, &cached)
	if err != nil {
		log.Warn("cache read failed", slog.String("op", op), slog.String("key", key), sl.Err(err))
	} else if found {
		return cached, nil
	}

	version, versionErr := c.Version(ctx, key)
	if versionErr != nil {
		log.Warn("cache version read failed", slog.String("op", op), slog.String("key", key), sl.Err(versionErr))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if versionErr != nil {
		return value, nil
	}

	stored, err := c.SetAt(ctx, key, field, value, version)
	switch {
	case err != nil:
		log.Warn("cache write failed", slog.String("op", op), slog.String("key", key), sl.Err(err))
	case !stored:
		log.Debug("cache write skipped, key invalidated during load", slog.String("op", op), slog.String("key", key))
	}

	return value, nil
}

type memoryEntry struct {
	fields    map[string][]byte
	expiresAt time.Time
}

// Memory is an in-process Cache. A zero TTL keeps entries until invalidated.
// Expired entries are dropped on read and swept on write at most once per TTL.
type Memory struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	entries   map[string]*memoryEntry
	versions  map[string]uint64
	nextSweep time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]*memoryEntry),
		versions: make(map[string]uint64),
	}
}

func (m *Memory) Get(_ context.Context, key, field string, dest any) (bool, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]

	if ok && m.expired(entry) {
		delete(m.entries, key)
		ok = false
	}

	var raw []byte
	if ok {
		raw, ok = entry.fields[field]
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached %s/%s: %w", key, field, err)
	}

	return true, nil
}

func (m *Memory) Set(_ context.Context, key, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", key, field, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.setLocked(key, field, raw)

	return nil
}

func (m *Memory) Version(_ context.Context, key string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.versions[key], nil
}

func (m *Memory) SetAt(_ context.Context, key, field string, value any, version uint64) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode %s/%s: %w", key, field, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.versions[key] != version {
		return false, nil
	}

	m.setLocked(key, field, raw)

	return true, nil
}

func (m *Memory) setLocked(key, field string, raw []byte) {
	m.sweepLocked()

	entry, ok := m.entries[key]
	if !ok || m.expired(entry) {
		entry = &memoryEntry{fields: make(map[string][]byte)}
		if m.ttl > 0 {
			entry.expiresAt = m.now().Add(m.ttl)
		}

		m.entries[key] = entry
	}

	entry.fields[field] = raw
}

// sweepLocked drops every expired entry, not only the ones being read.
func (m *Memory) sweepLocked() {
	if m.ttl <= 0 {
		return
	}

	now := m.now()
	if now.Before(m.nextSweep) {
		return
	}

	for key, entry := range m.entries {
		if m.expired(entry) {
			delete(m.entries, key)
		}
	}

	m.nextSweep = now.Add(m.ttl)
}

func (m *Memory) Invalidate(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
		m.versions[key]++
	}

	return nil
}

func (m *Memory) expired(e *memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}
