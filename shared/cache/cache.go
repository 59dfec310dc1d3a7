package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	otelCacheHitAttribute = "cache.hit"

	// scanBatch is the COUNT hint for SCAN while clearing a prefix.
	scanBatch = 200
)

// Nil is returned, wrapped, by Get on a cache miss.
const Nil = redis.Nil

// RedisCache stores JSON encoded read models. Strings are stored raw.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

// Save stores value for duration seconds. A zero duration keeps the key
// until it is deleted.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.scope(ctx, "Save", key)
	defer scope.End()

	payload, err := encode(value)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to encode cache value %s: %w", key, err)
	}

	if err = cache.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl", duration).Msg("cache saved")

	return nil
}

// Get decodes the cached value into value, which must be a pointer. A miss
// returns an error wrapping Nil.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := cache.client.Get(ctx, key).Bytes()
	scope.SetAttribute(otelCacheHitAttribute, err == nil)

	switch {
	case errors.Is(err, redis.Nil):
		return fmt.Errorf("cache miss %s: %w", key, err)
	case err != nil:
		scope.TraceError(err)

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err = decode(raw, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to decode cache")

		return fmt.Errorf("failed to decode cache value %s: %w", key, err)
	}

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) error {
	ctx, scope := cache.scope(ctx, "Delete", key)
	defer scope.End()

	if err := cache.client.Del(ctx, key).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Clear removes every key matching pattern, e.g. "room:list*". Keys are
// unlinked a batch at a time so a large prefix never blocks Redis.
func (cache *redisCache) Clear(ctx context.Context, pattern string) error {
	ctx, scope := cache.scope(ctx, "Clear", pattern)
	defer scope.End()

	var (
		cursor  uint64
		removed int
	)

	for {
		keys, next, err := cache.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			scope.TraceError(err)

			return fmt.Errorf("failed to scan cache keys %s: %w", pattern, err)
		}

		if len(keys) > 0 {
			if err := cache.client.Unlink(ctx, keys...).Err(); err != nil {
				scope.TraceError(err)
				log.Error().Err(err).Str("pattern", pattern).Msg("failed to clear cache")

				return fmt.Errorf("failed to delete cache values: %w", err)
			}

			removed += len(keys)
		}

		if cursor = next; cursor == 0 {
			break
		}
	}

	scope.SetAttribute("cache.removed", removed)

	return nil
}

func encode(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return json.Marshal(v) //nolint:wrapcheck
	}
}

func decode(raw []byte, value any) error {
	if target, ok := value.(*string); ok {
		*target = string(raw)

		return nil
	}

	return json.Unmarshal(raw, value) //nolint:wrapcheck
}
