// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores encoded fetch results by key.
type Cache interface {
	// Get returns the value and whether a live entry exists.
	Get(ctx context.Context, key string) ([]byte, bool)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// DeletePrefix drops every key starting with prefix. An empty prefix clears all.
	DeletePrefix(ctx context.Context, prefix string)
}

// # Memory Cache

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-local [Cache]. It is safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache constructs an empty [MemoryCache].
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}, now: time.Now}
}

func (cache *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	cache.mu.RLock()
	entry, ok := cache.entries[key]
	cache.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !cache.now().Before(entry.expiresAt) {
		cache.mu.Lock()
		if current, still := cache.entries[key]; still && !cache.now().Before(current.expiresAt) {
			delete(cache.entries, key)
		}
		cache.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

func (cache *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.entries[key] = memoryEntry{value: value, expiresAt: cache.now().Add(ttl)}
}

func (cache *MemoryCache) DeletePrefix(_ context.Context, prefix string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	for key := range cache.entries {
		if strings.HasPrefix(key, prefix) {
			delete(cache.entries, key)
		}
	}
}

// Len reports the number of stored entries, expired ones included.
func (cache *MemoryCache) Len() int {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.entries)
}

// # Redis Cache

// DefaultRedisPrefix namespaces fetcher keys in a shared Redis.
const DefaultRedisPrefix = "site:"

// RedisCache is a [Cache] shared between instances through Redis.
//
// Redis failures degrade to cache misses. The fetcher then goes to the API.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache wraps client. An empty prefix uses [DefaultRedisPrefix].
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := cache.client.Get(ctx, cache.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

func (cache *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	_ = cache.client.Set(ctx, cache.prefix+key, value, ttl).Err()
}

func (cache *RedisCache) DeletePrefix(ctx context.Context, prefix string) {
	iterator := cache.client.Scan(ctx, 0, cache.prefix+prefix+"*", 100).Iterator()

	batch := make([]string, 0, 100)
	for iterator.Next(ctx) {
		batch = append(batch, iterator.Val())
		if len(batch) == cap(batch) {
			_ = cache.client.Del(ctx, batch...).Err()
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		_ = cache.client.Del(ctx, batch...).Err()
	}
}
