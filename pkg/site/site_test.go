// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/pkg/client"
	"github.com/taibuivan/folio/pkg/site"
)

// fakeSource serves canned entries and counts calls.
type fakeSource struct {
	mu      sync.Mutex
	entries map[string][]client.Entry
	err     error
	calls   atomic.Int32
	gate    chan struct{}
}

func (source *fakeSource) ListContent(ctx context.Context, contentType string, _ client.ListOptions) (*client.ListResult, error) {
	source.calls.Add(1)
	if source.gate != nil {
		<-source.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source.mu.Lock()
	defer source.mu.Unlock()
	if source.err != nil {
		return nil, source.err
	}
	entries := source.entries[contentType]
	return &client.ListResult{Entries: entries, Total: len(entries), Page: 1, Pages: 1}, nil
}

func (source *fakeSource) GetBySlug(_ context.Context, contentType, slug string) (*client.Entry, error) {
	source.calls.Add(1)

	source.mu.Lock()
	defer source.mu.Unlock()
	if source.err != nil {
		return nil, source.err
	}
	for _, entry := range source.entries[contentType] {
		if entry.Slug == slug {
			return &entry, nil
		}
	}
	return nil, &client.RequestError{StatusCode: http.StatusNotFound, Message: "Entry not found"}
}

func (source *fakeSource) set(contentType string, entries ...client.Entry) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.entries[contentType] = entries
}

func published(slug string, data map[string]any) client.Entry {
	return client.Entry{ID: "id-" + slug, Slug: slug, Status: client.StatusPublished, Data: data}
}

type testimonial struct {
	Author string `json:"author"`
	Quote  string `json:"quote"`
}

var fallbackTestimonials = []testimonial{{Author: "Placeholder", Quote: "Great service"}}

/*
TestGetContent_DecodesInServerOrder decodes entry data into the caller's type.
*/
func TestGetContent_DecodesInServerOrder(t *testing.T) {
	source := &fakeSource{entries: map[string][]client.Entry{}}
	source.set("testimonial",
		published("b", map[string]any{"author": "Bea", "quote": "Two"}),
		published("a", map[string]any{"author": "Ann", "quote": "One"}),
	)
	fetcher := site.NewFetcher(source)

	got := site.GetContent(context.Background(), fetcher, "testimonial", fallbackTestimonials)
	assert.Equal(t, []testimonial{{Author: "Bea", Quote: "Two"}, {Author: "Ann", Quote: "One"}}, got)
}

/*
TestGetContent_Fallbacks returns the fallback for each failure mode and caches none of them.
*/
func TestGetContent_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		entries []client.Entry
		err     error
	}{
		{name: "network_error", err: errors.New("dial tcp: connection refused")},
		{name: "server_error", err: &client.RequestError{StatusCode: http.StatusInternalServerError, Message: "Internal Server Error"}},
		{name: "zero_entries"},
		{name: "undecodable", entries: []client.Entry{published("x", map[string]any{"author": 42})}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			source := &fakeSource{entries: map[string][]client.Entry{}, err: test.err}
			source.set("testimonial", test.entries...)
			cache := site.NewMemoryCache()
			fetcher := site.NewFetcher(source, site.WithCache(cache))

			got := site.GetContent(context.Background(), fetcher, "testimonial", fallbackTestimonials)
			assert.Equal(t, fallbackTestimonials, got)

			if test.name != "undecodable" {
				assert.Zero(t, cache.Len())
			}
		})
	}
}

/*
TestGetContent_MalformedResponse falls back when the API answers with non-JSON.
*/
func TestGetContent_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "entries": [`))
	}))
	t.Cleanup(server.Close)

	fetcher := site.NewFetcher(client.New(client.Config{BaseURL: server.URL, Timeout: time.Second}))
	got := site.GetContent(context.Background(), fetcher, "testimonial", fallbackTestimonials)
	assert.Equal(t, fallbackTestimonials, got)
}

/*
TestGetSingleContent_OfflineContactInfo shows the placeholder contact details when the API is down.
*/
func TestGetSingleContent_OfflineContactInfo(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	fetcher := site.NewFetcher(client.New(client.Config{BaseURL: server.URL, Timeout: time.Second}))
	info := site.GetSingleContent(context.Background(), fetcher, "contact_info", site.DefaultContactInfo)

	assert.Equal(t, "+44 161 399 2348", info.Phone)
	assert.Equal(t, site.DefaultContactInfo, info)
}

/*
TestGetSingleContent_Live decodes nested groups and arrays.
*/
func TestGetSingleContent_Live(t *testing.T) {
	source := &fakeSource{entries: map[string][]client.Entry{}}
	source.set("contact_info", published("contact-info", map[string]any{
		"phone":   "0161 000 0000",
		"email":   "office@example.com",
		"address": map[string]any{"line1": "2 Deansgate", "city": "Manchester", "postcode": "M1 1AA", "country": "UK"},
		"social":  []any{map[string]any{"platform": "linkedin", "url": "https://linkedin.com/x"}},
	}))
	fetcher := site.NewFetcher(source)

	info := site.GetSingleContent(context.Background(), fetcher, "contact_info", site.DefaultContactInfo)
	assert.Equal(t, "0161 000 0000", info.Phone)
	assert.Equal(t, "2 Deansgate", info.Address.Line1)
	require.Len(t, info.Social, 1)
	assert.Equal(t, "linkedin", info.Social[0].Platform)
}

/*
TestGetContentBySlug finds one entry and falls back on a missing slug.
*/
func TestGetContentBySlug(t *testing.T) {
	source := &fakeSource{entries: map[string][]client.Entry{}}
	source.set("testimonial", published("ann", map[string]any{"author": "Ann", "quote": "One"}))
	fetcher := site.NewFetcher(source)
	ctx := context.Background()

	fallback := testimonial{Author: "Nobody"}
	assert.Equal(t, testimonial{Author: "Ann", Quote: "One"}, site.GetContentBySlug(ctx, fetcher, "testimonial", "ann", fallback))
	assert.Equal(t, fallback, site.GetContentBySlug(ctx, fetcher, "testimonial", "missing", fallback))
}

/*
TestFetcher_CachesAndInvalidates serves repeats from the cache until the type is invalidated.
*/
func TestFetcher_CachesAndInvalidates(t *testing.T) {
	source := &fakeSource{entries: map[string][]client.Entry{}}
	source.set("testimonial", published("a", map[string]any{"author": "Ann"}))
	source.set("faq", published("q", map[string]any{"author": "Faq"}))
	fetcher := site.NewFetcher(source)
	ctx := context.Background()

	site.GetContent(ctx, fetcher, "testimonial", fallbackTestimonials)
	site.GetContent(ctx, fetcher, "testimonial", fallbackTestimonials)
	site.GetContent(ctx, fetcher, "faq", fallbackTestimonials)
	assert.Equal(t, int32(2), source.calls.Load())

	source.set("testimonial", published("b", map[string]any{"author": "Bea"}))
	fetcher.InvalidateType(ctx, "testimonial")

	got := site.GetContent(ctx, fetcher, "testimonial", fallbackTestimonials)
	assert.Equal(t, "Bea", got[0].Author)
	site.GetContent(ctx, fetcher, "faq", fallbackTestimonials)
	assert.Equal(t, int32(3), source.calls.Load())

	fetcher.Clear(ctx)
	site.GetContent(ctx, fetcher, "faq", fallbackTestimonials)
	assert.Equal(t, int32(4), source.calls.Load())
}

/*
TestFetcher_RetriesAfterFallback does not remember an outage.
*/
func TestFetcher_RetriesAfterFallback(t *testing.T) {
	source := &fakeSource{entries: map[string][]client.Entry{}, err: errors.New("offline")}
	fetcher := site.NewFetcher(source)
	ctx := context.Background()

	assert.Equal(t, fallbackTestimonials, site.GetContent(ctx, fetcher, "testimonial", fallbackTestimonials))

	source.mu.Lock()
	source.err = nil
	source.mu.Unlock()
	source.set("testimonial", published("a", map[string]any{"author": "Ann"}))

	assert.Equal(t, "Ann", site.GetContent(ctx, fetcher, "testimonial", fallbackTestimonials)[0].Author)
}

/*
TestFetcher_CoalescesConcurrentMisses makes one upstream call for simultaneous readers.
*/
func TestFetcher_CoalescesConcurrentMisses(t *testing.T) {
	source := &fakeSource{entries: map[string][]client.Entry{}, gate: make(chan struct{})}
	source.set("testimonial", published("a", map[string]any{"author": "Ann"}))
	fetcher := site.NewFetcher(source)

	const readers = 8
	results := make([][]testimonial, readers)

	var group sync.WaitGroup
	for i := range readers {
		group.Add(1)
		go func() {
			defer group.Done()
			results[i] = site.GetContent(context.Background(), fetcher, "testimonial", fallbackTestimonials)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(source.gate)
	group.Wait()

	assert.Equal(t, int32(1), source.calls.Load())
	for _, result := range results {
		assert.Equal(t, "Ann", result[0].Author)
	}
}

/*
TestFetcher_SharedFetchOutlivesFirstCaller keeps serving callers that joined a
fetch after the caller that started it has gone away.
*/
func TestFetcher_SharedFetchOutlivesFirstCaller(t *testing.T) {
	source := &fakeSource{entries: map[string][]client.Entry{}, gate: make(chan struct{})}
	source.set("testimonial", published("a", map[string]any{"author": "Ann"}))
	fetcher := site.NewFetcher(source)

	first, cancel := context.WithCancel(context.Background())
	firstDone := make(chan []testimonial, 1)
	go func() {
		firstDone <- site.GetContent(first, fetcher, "testimonial", fallbackTestimonials)
	}()
	require.Eventually(t, func() bool { return source.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	secondDone := make(chan []testimonial, 1)
	go func() {
		secondDone <- site.GetContent(context.Background(), fetcher, "testimonial", fallbackTestimonials)
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.Equal(t, fallbackTestimonials, <-firstDone)

	close(source.gate)
	second := <-secondDone
	require.Len(t, second, 1)
	assert.Equal(t, "Ann", second[0].Author)
	assert.Equal(t, int32(1), source.calls.Load())

	cached := site.GetContent(context.Background(), fetcher, "testimonial", fallbackTestimonials)
	assert.Equal(t, "Ann", cached[0].Author)
	assert.Equal(t, int32(1), source.calls.Load())
}

/*
TestMemoryCache_Expiry drops entries once their TTL passes.
*/
func TestMemoryCache_Expiry(t *testing.T) {
	cache := site.NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "list:faq", []byte("x"), 20*time.Millisecond)
	cache.Set(ctx, "single:faq", []byte("y"), time.Minute)

	value, ok := cache.Get(ctx, "list:faq")
	require.True(t, ok)
	assert.Equal(t, []byte("x"), value)

	time.Sleep(40 * time.Millisecond)
	_, ok = cache.Get(ctx, "list:faq")
	assert.False(t, ok)

	cache.DeletePrefix(ctx, "single:")
	_, ok = cache.Get(ctx, "single:faq")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}
