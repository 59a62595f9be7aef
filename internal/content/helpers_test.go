// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/registry"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/uuid"
)

// memoryRepository is an in-memory [content.Repository] for service and
// handler tests.
type memoryRepository struct {
	mu       sync.Mutex
	entries  map[string]*content.Entry
	versions []*content.Version
	clock    time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		entries: map[string]*content.Entry{},
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepository) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memoryRepository) List(_ context.Context, filter content.Filter, limit, offset int) ([]*content.Entry, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*content.Entry
	for _, entry := range r.entries {
		if filter.ContentType != "" && entry.ContentType != filter.ContentType {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneEntry(entry))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SortOrder != matched[j].SortOrder {
			return matched[i].SortOrder < matched[j].SortOrder
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []*content.Entry{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*content.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, apperr.NotFound("Entry")
	}
	return cloneEntry(entry), nil
}

func (r *memoryRepository) FindBySlug(_ context.Context, contentType, slug string) (*content.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.ContentType == contentType && entry.Slug == slug {
			return cloneEntry(entry), nil
		}
	}
	return nil, apperr.NotFound("Entry")
}

func (r *memoryRepository) Create(_ context.Context, entry *content.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(entry) {
		return apperr.Conflict("Entry already exists")
	}
	entry.CreatedAt = r.tick()
	entry.UpdatedAt = entry.CreatedAt
	r.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (r *memoryRepository) Update(_ context.Context, entry *content.Entry, actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.entries[entry.ID]
	if !ok {
		return apperr.NotFound("Entry")
	}
	if r.slugTaken(entry) {
		return apperr.Conflict("Entry already exists")
	}

	number := 1
	for _, version := range r.versions {
		if version.EntryID == entry.ID {
			number++
		}
	}
	r.versions = append(r.versions, &content.Version{
		ID:        uuid.New(),
		EntryID:   current.ID,
		Version:   number,
		Slug:      current.Slug,
		Status:    current.Status,
		Data:      cloneEntry(current).Data,
		SortOrder: current.SortOrder,
		CreatedBy: actorID,
		CreatedAt: r.tick(),
	})

	entry.UpdatedBy = actorID
	entry.UpdatedAt = r.tick()
	entry.CreatedAt = current.CreatedAt
	r.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return apperr.NotFound("Entry")
	}
	delete(r.entries, id)
	return nil
}

func (r *memoryRepository) ListVersions(_ context.Context, entryID string) ([]*content.Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	versions := []*content.Version{}
	for i := len(r.versions) - 1; i >= 0; i-- {
		if r.versions[i].EntryID == entryID {
			versions = append(versions, r.versions[i])
		}
	}
	return versions, nil
}

func (r *memoryRepository) FindVersion(_ context.Context, id string) (*content.Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, version := range r.versions {
		if version.ID == id {
			return version, nil
		}
	}
	return nil, apperr.NotFound("Version")
}

func (r *memoryRepository) slugTaken(entry *content.Entry) bool {
	if entry.Slug == "" {
		return false
	}
	for _, other := range r.entries {
		if other.ID != entry.ID && other.ContentType == entry.ContentType && other.Slug == entry.Slug {
			return true
		}
	}
	return false
}

// cloneEntry deep-copies through JSON, which is also what a real round
// trip through jsonb does to the payload.
func cloneEntry(entry *content.Entry) *content.Entry {
	copied := *entry
	raw, _ := json.Marshal(entry.Data)
	copied.Data = map[string]any{}
	_ = json.Unmarshal(raw, &copied.Data)
	return &copied
}

// recorder collects activity instead of writing it.
type recorder struct {
	mu    sync.Mutex
	items []activity.Activity
}

func (r *recorder) Record(_ context.Context, item activity.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
}

func (r *recorder) actions() []activity.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]activity.Action, len(r.items))
	for i, item := range r.items {
		actions[i] = item.Action
	}
	return actions
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService() (*content.Service, *memoryRepository, *recorder) {
	repository := newMemoryRepository()
	audit := &recorder{}
	return content.NewService(repository, registry.Default(), audit, discardLogger()), repository, audit
}

var editor = content.Viewer{UserID: "0190a8a0-0000-7000-8000-000000000001", Authenticated: true}

func validSector(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "Pumps for municipal water",
		"image":       "/uploads/water.png",
		"link":        "/sectors/water",
		"highlights":  []any{"Reliable", "Efficient"},
		"seo":         map[string]any{"meta_title": title},
	}
}
