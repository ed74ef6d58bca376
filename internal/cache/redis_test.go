//go:build integration

package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *redis.Client) {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: addr})
	rc := NewRedis(client, "test", ttl)
	t.Cleanup(func() { _ = rc.Close() })

	require.NoError(t, rc.Ping(ctx))

	return rc, client
}

func TestRedis_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	rc, client := newTestRedis(t, time.Minute)

	type view struct {
		Year  int     `json:"year"`
		Hours float64 `json:"hours"`
	}

	key := CapacityKey("r1")

	require.NoError(t, rc.Set(ctx, key, "2025", view{Year: 2025, Hours: 32}))
	require.NoError(t, rc.Set(ctx, key, "2026", view{Year: 2026, Hours: 30}))

	var got view
	found, err := rc.Get(ctx, key, "2025", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, view{Year: 2025, Hours: 32}, got)

	ttl, err := client.TTL(ctx, "test:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, rc.Invalidate(ctx, key, AllocationsKey("r1")))

	found, err = rc.Get(ctx, key, "2026", &got)
	require.NoError(t, err)
	assert.False(t, found, "invalidate drops every field of the key")
}

func TestRedis_ReadThrough(t *testing.T) {
	ctx := context.Background()
	rc, _ := newTestRedis(t, 0)

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"a1", "a2"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := ReadThrough(ctx, rc, slog.New(slog.NewTextHandler(io.Discard, nil)), AllocationsKey("r1"), "all", load)
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a2"}, got)
	}

	assert.Equal(t, 1, calls)
}

func TestRedis_ReadThroughSkipsInvalidatedLoad(t *testing.T) {
	ctx := context.Background()
	rc, client := newTestRedis(t, time.Minute)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	key := AllocationsKey("r1")

	got, err := ReadThrough(ctx, rc, log, key, "all", func(ctx context.Context) ([]string, error) {
		require.NoError(t, rc.Invalidate(ctx, key))
		return []string{"stale"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"stale"}, got)

	exists, err := client.Exists(ctx, "test:"+key).Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "a load that raced an invalidate is not stored")

	version, err := rc.Version(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)

	stored, err := rc.SetAt(ctx, key, "all", []string{"fresh"}, version)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = rc.SetAt(ctx, key, "all", []string{"old"}, version-1)
	require.NoError(t, err)
	assert.False(t, stored)

	var cached []string
	found, err := rc.Get(ctx, key, "all", &cached)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"fresh"}, cached)
}
