// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/registry"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/pointer"
	"github.com/taibuivan/folio/pkg/site"
)

/*
TestService_CreateThenGet returns deep-equal data after a round trip.
*/
func TestService_CreateThenGet(t *testing.T) {
	service, _, audit := newService()
	ctx := context.Background()

	data := validSector("Water")
	created, err := service.Create(ctx, editor, content.CreateInput{
		ContentType: registry.Sector,
		Slug:        "water",
		Status:      content.StatusPublished,
		Data:        data,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := service.Get(ctx, editor, created.ID)
	require.NoError(t, err)

	assert.Equal(t, data, fetched.Data)
	assert.Equal(t, content.StatusPublished, fetched.Status)
	assert.Equal(t, 0, fetched.SortOrder)
	assert.Equal(t, editor.UserID, fetched.CreatedBy)
	assert.Equal(t, []activity.Action{activity.ActionCreate}, audit.actions())
}

/*
TestService_RichTextRoundTrip keeps punctuation in clean rich text unchanged
through create, update and get.
*/
func TestService_RichTextRoundTrip(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	data := validSector("Water")
	data["body"] = `<p>It's "great" & cheap</p>`

	created, err := service.Create(ctx, editor, content.CreateInput{ContentType: registry.Sector, Slug: "water", Data: data})
	require.NoError(t, err)

	fetched, err := service.Get(ctx, editor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, data, fetched.Data)

	_, err = service.Update(ctx, editor, created.ID, content.UpdateInput{Data: fetched.Data})
	require.NoError(t, err)

	fetched, err = service.Get(ctx, editor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, data, fetched.Data)
}

/*
TestService_CreateDefaults starts entries as drafts and lets drafts be partial.
*/
func TestService_CreateDefaults(t *testing.T) {
	service, _, _ := newService()

	entry, err := service.Create(context.Background(), editor, content.CreateInput{
		ContentType: registry.Sector,
		Data:        map[string]any{"title": "Half done"},
	})
	require.NoError(t, err)
	assert.Equal(t, content.StatusDraft, entry.Status)
}

/*
TestService_CreateRejects covers the validation paths of Create.
*/
func TestService_CreateRejects(t *testing.T) {
	tests := []struct {
		name  string
		input content.CreateInput
		code  string
	}{
		{
			name:  "unknown_type",
			input: content.CreateInput{ContentType: "widget", Data: map[string]any{}},
			code:  "NOT_FOUND",
		},
		{
			name:  "missing_type",
			input: content.CreateInput{Data: map[string]any{}},
			code:  "VALIDATION_ERROR",
		},
		{
			name:  "bad_status",
			input: content.CreateInput{ContentType: registry.Sector, Status: "live"},
			code:  "VALIDATION_ERROR",
		},
		{
			name: "published_without_required",
			input: content.CreateInput{
				ContentType: registry.Sector, Status: content.StatusPublished,
				Data: map[string]any{"title": "Water"},
			},
			code: "VALIDATION_ERROR",
		},
		{
			name: "wrong_field_type",
			input: content.CreateInput{
				ContentType: registry.Sector,
				Data:        map[string]any{"title": 42.0},
			},
			code: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newService()
			_, err := service.Create(context.Background(), editor, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperr.As(err).Code)
		})
	}
}

/*
TestService_PublishedMissingTitle reports the field label.
*/
func TestService_PublishedMissingTitle(t *testing.T) {
	service, _, _ := newService()

	data := validSector("")
	_, err := service.Create(context.Background(), editor, content.CreateInput{
		ContentType: registry.Sector, Status: content.StatusPublished, Data: data,
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, "data.title", appErr.Details[0].Field)
	assert.Equal(t, "Title is required", appErr.Details[0].Message)
}

/*
TestService_SanitizesRichText strips scripts from richtext fields only.
*/
func TestService_SanitizesRichText(t *testing.T) {
	service, _, _ := newService()

	data := validSector("<b>Water</b>")
	data["body"] = `<p>Clean</p><script>alert(1)</script>`

	entry, err := service.Create(context.Background(), editor, content.CreateInput{ContentType: registry.Sector, Data: data})
	require.NoError(t, err)

	assert.Equal(t, "<p>Clean</p>", entry.Data["body"])
	assert.Equal(t, "<b>Water</b>", entry.Data["title"])
}

/*
TestService_DuplicateSlug is a conflict within a content type only.
*/
func TestService_DuplicateSlug(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	_, err := service.Create(ctx, editor, content.CreateInput{ContentType: registry.Sector, Slug: "water", Data: validSector("A")})
	require.NoError(t, err)

	_, err = service.Create(ctx, editor, content.CreateInput{ContentType: registry.Sector, Slug: "water", Data: validSector("B")})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Create(ctx, editor, content.CreateInput{ContentType: registry.FAQ, Slug: "water", Data: map[string]any{}})
	assert.NoError(t, err)
}

/*
TestService_DeleteTwice returns NOT_FOUND on the second call.
*/
func TestService_DeleteTwice(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	entry, err := service.Create(ctx, editor, content.CreateInput{ContentType: registry.FAQ, Data: map[string]any{}})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, entry.ID))

	err = service.Delete(ctx, entry.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_AnonymousSeesPublishedOnly hides drafts from the public.
*/
func TestService_AnonymousSeesPublishedOnly(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	draft, err := service.Create(ctx, editor, content.CreateInput{ContentType: registry.Sector, Slug: "draft", Data: validSector("Draft")})
	require.NoError(t, err)
	_, err = service.Create(ctx, editor, content.CreateInput{
		ContentType: registry.Sector, Slug: "live", Status: content.StatusPublished, Data: validSector("Live"),
	})
	require.NoError(t, err)

	anonymous := content.Viewer{}

	entries, meta, err := service.List(ctx, anonymous, content.ListQuery{ContentType: registry.Sector, Status: content.StatusDraft})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "live", entries[0].Slug)
	assert.Equal(t, 1, meta.Total)

	_, err = service.Get(ctx, anonymous, draft.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.GetBySlug(ctx, anonymous, registry.Sector, "draft")
	assert.True(t, apperr.IsNotFound(err))

	entries, _, err = service.List(ctx, editor, content.ListQuery{ContentType: registry.Sector})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

/*
TestService_ListOrderAndAll sorts by sort order then newest, and all=true
ignores the page size.
*/
func TestService_ListOrderAndAll(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	for i, order := range []int{2, 1, 1} {
		_, err := service.Create(ctx, editor, content.CreateInput{
			ContentType: registry.FAQ,
			Data:        map[string]any{"question": string(rune('a' + i))},
			SortOrder:   pointer.To(order),
		})
		require.NoError(t, err)
	}

	entries, meta, err := service.List(ctx, editor, content.ListQuery{ContentType: registry.FAQ, Limit: 1, All: true})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].Data["question"])
	assert.Equal(t, "b", entries[1].Data["question"])
	assert.Equal(t, "a", entries[2].Data["question"])
	assert.Equal(t, 1, meta.Pages)

	paged, meta, err := service.List(ctx, editor, content.ListQuery{ContentType: registry.FAQ, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
	assert.Equal(t, 2, meta.Pages)
}

/*
TestService_UpdateVersionsAndRestore keeps history and restores it.
*/
func TestService_UpdateVersionsAndRestore(t *testing.T) {
	service, _, audit := newService()
	ctx := context.Background()

	entry, err := service.Create(ctx, editor, content.CreateInput{ContentType: registry.Sector, Data: validSector("First")})
	require.NoError(t, err)

	_, err = service.Update(ctx, editor, entry.ID, content.UpdateInput{Data: validSector("Second")})
	require.NoError(t, err)

	_, err = service.Update(ctx, editor, entry.ID, content.UpdateInput{Status: pointer.To(content.StatusArchived)})
	require.NoError(t, err)

	versions, err := service.Versions(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].Version)
	assert.Equal(t, "Second", versions[0].Data["title"])
	assert.Equal(t, "First", versions[1].Data["title"])

	restored, err := service.Restore(ctx, editor, versions[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "First", restored.Data["title"])
	assert.Equal(t, content.StatusDraft, restored.Status)

	versions, err = service.Versions(ctx, entry.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 3)

	assert.Equal(t, []activity.Action{
		activity.ActionCreate, activity.ActionUpdate, activity.ActionUpdate, activity.ActionRestore,
	}, audit.actions())
}

/*
TestService_UpdateMissing is NOT_FOUND.
*/
func TestService_UpdateMissing(t *testing.T) {
	service, _, _ := newService()
	_, err := service.Update(context.Background(), editor, "0190a8a0-0000-7000-8000-00000000ffff", content.UpdateInput{})
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_WritesExpireSiteCache drops the cached public reads of the written type only.
*/
func TestService_WritesExpireSiteCache(t *testing.T) {
	service, _, _ := newService()
	cache := site.NewMemoryCache()
	service.WithInvalidator(site.NewInvalidator(cache))
	ctx := context.Background()

	seed := func() {
		cache.Set(ctx, "list:faq", []byte("[]"), time.Minute)
		cache.Set(ctx, "slug:faq:q", []byte("{}"), time.Minute)
		cache.Set(ctx, "single:contact_info", []byte("{}"), time.Minute)
	}

	seed()
	entry, err := service.Create(ctx, editor, content.CreateInput{ContentType: registry.FAQ, Data: map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	seed()
	require.NoError(t, service.Delete(ctx, entry.ID))
	_, ok := cache.Get(ctx, "single:contact_info")
	assert.True(t, ok)
	_, ok = cache.Get(ctx, "list:faq")
	assert.False(t, ok)
}
