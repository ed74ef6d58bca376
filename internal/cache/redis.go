package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Redis keeps each key as a hash of JSON fields. The TTL is refreshed on
// every write to the hash. The invalidation generation of a key lives in a
// separate counter without a TTL.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) hashKey(key string) string {
	if r.prefix == "" {
		return key
	}

	return r.prefix + ":" + key
}

func (r *Redis) versionKey(key string) string {
	return r.hashKey(key) + ":version"
}

var errVersionMoved = errors.New("cache key invalidated")

func (r *Redis) Get(ctx context.Context, key, field string, dest any) (bool, error) {
	result, err := r.client.HGet(ctx, r.hashKey(key), field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("redis HGET %s/%s: %w", key, field, err)
	}

	if err := json.Unmarshal([]byte(result), dest); err != nil {
		return false, fmt.Errorf("failed to decode cached %s/%s: %w", key, field, err)
	}

	return true, nil
}

func (r *Redis) Set(ctx context.Context, key, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", key, field, err)
	}

	pipe := r.client.TxPipeline()
	r.queueSet(ctx, pipe, key, field, raw)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis HSET %s/%s: %w", key, field, err)
	}

	return nil
}

func (r *Redis) Version(ctx context.Context, key string) (uint64, error) {
	version, err := r.client.Get(ctx, r.versionKey(key)).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, fmt.Errorf("redis GET %s version: %w", key, err)
	}

	return version, nil
}

// SetAt watches the version counter so an Invalidate landing between the
// check and the write aborts the transaction.
func (r *Redis) SetAt(ctx context.Context, key, field string, value any, version uint64) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode %s/%s: %w", key, field, err)
	}

	versionKey := r.versionKey(key)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		if current != version {
			return errVersionMoved
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.queueSet(ctx, pipe, key, field, raw)
			return nil
		})

		return err
	}, versionKey)

	switch {
	case errors.Is(err, errVersionMoved), errors.Is(err, redis.TxFailedErr):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("redis HSET %s/%s: %w", key, field, err)
	}

	return true, nil
}

func (r *Redis) queueSet(ctx context.Context, pipe redis.Pipeliner, key, field string, raw []byte) {
	hashKey := r.hashKey(key)

	pipe.HSet(ctx, hashKey, field, raw)

	if r.ttl > 0 {
		pipe.Expire(ctx, hashKey, r.ttl)
	}
}

func (r *Redis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	hashKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		hashKeys = append(hashKeys, r.hashKey(k))
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, hashKeys...)

	for _, k := range keys {
		pipe.Incr(ctx, r.versionKey(k))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis DEL: %w", err)
	}

	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
