// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package site_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/folio/pkg/client"
	"github.com/taibuivan/folio/pkg/site"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, mapped.Port())})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

/*
TestRedisCache shares results between fetchers and honours prefix invalidation.
*/
func TestRedisCache(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()

	source := &fakeSource{entries: map[string][]client.Entry{}}
	source.set("testimonial", published("a", map[string]any{"author": "Ann"}))

	first := site.NewFetcher(source, site.WithCache(site.NewRedisCache(rdb, "")))
	second := site.NewFetcher(source, site.WithCache(site.NewRedisCache(rdb, "")))

	assert.Equal(t, "Ann", site.GetContent(ctx, first, "testimonial", fallbackTestimonials)[0].Author)
	assert.Equal(t, "Ann", site.GetContent(ctx, second, "testimonial", fallbackTestimonials)[0].Author)
	assert.Equal(t, int32(1), source.calls.Load())

	ttl, err := rdb.TTL(ctx, site.DefaultRedisPrefix+"list:testimonial").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Minute)

	second.InvalidateType(ctx, "testimonial")
	exists, err := rdb.Exists(ctx, site.DefaultRedisPrefix+"list:testimonial").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	site.GetContent(ctx, first, "testimonial", fallbackTestimonials)
	assert.Equal(t, int32(2), source.calls.Load())
}
