package common

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"infinite-experiment/airclock/internal/logging"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store using Redis. Values are JSON encoded under
// "<namespace>:<key>" and never given a Redis TTL.
type RedisStore[V any] struct {
	client    *redis.Client
	namespace string
	timeout   time.Duration
}

// Ensure RedisStore implements Store
var _ Store[struct{}] = (*RedisStore[struct{}])(nil)

// NewRedisStore creates a Redis-backed store. namespace should be unique per
// cache so Clear only touches that cache's keys.
func NewRedisStore[V any](client *redis.Client, namespace string) *RedisStore[V] {
	return &RedisStore[V]{
		client:    client,
		namespace: namespace,
		timeout:   3 * time.Second,
	}
}

func (r *RedisStore[V]) key(k string) string {
	return r.namespace + ":" + k
}

// Get retrieves a value from Redis by key. Transport and decode failures are
// logged and reported as a miss.
func (r *RedisStore[V]) Get(key string) (V, bool) {
	var zero V
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false
	}
	if err != nil {
		logging.Warn("Redis store: get failed", "key", r.key(key), "error", err.Error())
		return zero, false
	}

	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		logging.Warn("Redis store: decode failed", "key", r.key(key), "error", err.Error())
		return zero, false
	}
	return value, true
}

// Set stores a value in Redis
func (r *RedisStore[V]) Set(key string, value V) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("Redis store: encode failed", "key", r.key(key), "error", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), data, 0).Err(); err != nil {
		logging.Warn("Redis store: set failed", "key", r.key(key), "error", err.Error())
	}
}

// Clear deletes every key in this store's namespace
func (r *RedisStore[V]) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*r.timeout)
	defer cancel()

	keys, err := r.keys(ctx)
	if err != nil {
		logging.Warn("Redis store: scan failed", "namespace", r.namespace, "error", err.Error())
		return
	}
	for start := 0; start < len(keys); start += 500 {
		end := min(start+500, len(keys))
		if err := r.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			logging.Warn("Redis store: delete failed", "namespace", r.namespace, "error", err.Error())
			return
		}
	}
}

// Len counts the keys in this store's namespace
func (r *RedisStore[V]) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 10*r.timeout)
	defer cancel()

	keys, err := r.keys(ctx)
	if err != nil {
		logging.Warn("Redis store: scan failed", "namespace", r.namespace, "error", err.Error())
		return 0
	}
	return len(keys)
}

func (r *RedisStore[V]) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.namespace+":*", 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}
