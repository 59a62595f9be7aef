// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package site is the read path used to render public pages.

Every lookup takes a fallback and never fails: a network error, a non-2xx
response, a malformed payload, an undecodable entry or an empty result all
yield the fallback. Successful results are cached for [DefaultTTL] per key.
Fallbacks are never cached, so the next call after an outage tries again.

# Keys

  - list:<type>
  - single:<type>
  - slug:<type>:<slug>
*/
package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/folio/pkg/client"
	"github.com/taibuivan/folio/pkg/slice"
)

const (
	// DefaultTTL is the lifetime of a cached result.
	DefaultTTL = 5 * time.Minute

	// FetchTimeout bounds one upstream fetch shared by coalesced callers.
	FetchTimeout = 30 * time.Second
)

var errEmpty = errors.New("no published entries")

// Source is the subset of [client.Client] the fetcher reads through.
type Source interface {
	ListContent(ctx context.Context, contentType string, options client.ListOptions) (*client.ListResult, error)
	GetBySlug(ctx context.Context, contentType, slug string) (*client.Entry, error)
}

// Fetcher serves published content with caching and fallbacks.
// It is safe for concurrent use.
type Fetcher struct {
	source Source
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
	flight singleflight.Group
}

// Option customizes a [Fetcher].
type Option func(*Fetcher)

// WithCache replaces the default [MemoryCache].
func WithCache(cache Cache) Option {
	return func(f *Fetcher) { f.cache = cache }
}

// WithTTL overrides [DefaultTTL].
func WithTTL(ttl time.Duration) Option {
	return func(f *Fetcher) { f.ttl = ttl }
}

// WithLogger sets where fallback warnings go. Without it they are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// NewFetcher constructs a [Fetcher] reading from source.
func NewFetcher(source Source, options ...Option) *Fetcher {
	f := &Fetcher{
		source: source,
		cache:  NewMemoryCache(),
		ttl:    DefaultTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// # Invalidation

// Clear drops every cached result.
func (f *Fetcher) Clear(ctx context.Context) {
	NewInvalidator(f.cache).Clear(ctx)
}

// InvalidateType drops the cached results of one content type.
func (f *Fetcher) InvalidateType(ctx context.Context, contentType string) {
	NewInvalidator(f.cache).InvalidateType(ctx, contentType)
}

// Invalidator expires fetcher keys in a cache it does not read from. The API
// server holds one over the shared [RedisCache] so that writes show up on the
// public site before the TTL runs out.
type Invalidator struct {
	cache Cache
}

// NewInvalidator wraps cache.
func NewInvalidator(cache Cache) *Invalidator {
	return &Invalidator{cache: cache}
}

// Clear drops every key.
func (invalidator *Invalidator) Clear(ctx context.Context) {
	invalidator.cache.DeletePrefix(ctx, "")
}

// InvalidateType drops the list, single and slug keys of one content type.
func (invalidator *Invalidator) InvalidateType(ctx context.Context, contentType string) {
	invalidator.cache.DeletePrefix(ctx, listKey(contentType))
	invalidator.cache.DeletePrefix(ctx, singleKey(contentType))
	invalidator.cache.DeletePrefix(ctx, slugPrefix(contentType))
}

func listKey(contentType string) string   { return "list:" + contentType }
func singleKey(contentType string) string { return "single:" + contentType }
func slugPrefix(contentType string) string {
	return "slug:" + contentType + ":"
}

// # Lookups

/*
GetContent returns the published entries of a collection decoded into T,
in server order.

Parameters:
  - f: *Fetcher
  - contentType: registry slug, e.g. "testimonial"
  - fallback: returned unchanged on any failure

Returns:
  - []T: decoded entry data or fallback
*/
func GetContent[T any](ctx context.Context, f *Fetcher, contentType string, fallback []T) []T {
	raw, err := f.load(ctx, listKey(contentType), func(ctx context.Context) ([]byte, error) {
		result, err := f.source.ListContent(ctx, contentType, client.ListOptions{Status: client.StatusPublished, All: true})
		if err != nil {
			return nil, err
		}
		if len(result.Entries) == 0 {
			return nil, errEmpty
		}

		return json.Marshal(slice.Map(result.Entries, func(entry client.Entry) map[string]any { return entry.Data }))
	})
	if err != nil {
		f.fallback(contentType, listKey(contentType), err)
		return fallback
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		f.fallback(contentType, listKey(contentType), err)
		return fallback
	}
	return items
}

// GetSingleContent returns the data of a single-instance type decoded into T.
func GetSingleContent[T any](ctx context.Context, f *Fetcher, contentType string, fallback T) T {
	raw, err := f.load(ctx, singleKey(contentType), func(ctx context.Context) ([]byte, error) {
		result, err := f.source.ListContent(ctx, contentType, client.ListOptions{Status: client.StatusPublished, Limit: 1})
		if err != nil {
			return nil, err
		}
		if len(result.Entries) == 0 {
			return nil, errEmpty
		}
		return json.Marshal(result.Entries[0].Data)
	})
	return decodeOr(f, contentType, singleKey(contentType), raw, err, fallback)
}

// GetContentBySlug returns one published entry of a collection decoded into T.
func GetContentBySlug[T any](ctx context.Context, f *Fetcher, contentType, slug string, fallback T) T {
	key := slugPrefix(contentType) + slug
	raw, err := f.load(ctx, key, func(ctx context.Context) ([]byte, error) {
		entry, err := f.source.GetBySlug(ctx, contentType, slug)
		if err != nil {
			return nil, err
		}
		if entry.Status != client.StatusPublished {
			return nil, errEmpty
		}
		return json.Marshal(entry.Data)
	})
	return decodeOr(f, contentType, key, raw, err, fallback)
}

// # Internals

func decodeOr[T any](f *Fetcher, contentType, key string, raw []byte, err error, fallback T) T {
	if err != nil {
		f.fallback(contentType, key, err)
		return fallback
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		f.fallback(contentType, key, err)
		return fallback
	}
	return value
}

// load serves key from the cache or runs fetch once for all concurrent callers.
// The shared fetch is detached from any single caller's cancellation and bounded
// by [FetchTimeout] instead. Only successful results are stored.
func (f *Fetcher) load(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	if cached, ok := f.cache.Get(ctx, key); ok {
		return cached, nil
	}

	results := f.flight.DoChan(key, func() (value any, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				value, err = nil, fmt.Errorf("fetch panicked: %v", recovered)
			}
		}()

		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), FetchTimeout)
		defer cancel()

		fetched, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		f.cache.Set(shared, key, fetched, f.ttl)
		return fetched, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.([]byte), nil
	}
}

func (f *Fetcher) fallback(contentType, key string, err error) {
	f.logger.Warn("fetch_fallback_used",
		slog.String("content_type", contentType),
		slog.String("key", key),
		slog.Any("error", err),
	)
}
