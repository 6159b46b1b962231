// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package projector

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// PublicTreeKey is the cache key of the public category tree.
const PublicTreeKey = "content:public_categories"

// Cache stores rendered projections.
type Cache interface {
	// Get reports a miss with ok=false and a nil error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// RedisCache implements [Cache] with a fixed TTL.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache creates a cache whose entries expire after ttl.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (cache *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return cache.client.Set(ctx, key, value, cache.ttl).Err()
}

func (cache *RedisCache) Delete(ctx context.Context, key string) error {
	return cache.client.Del(ctx, key).Err()
}
