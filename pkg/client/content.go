// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// # Content Types

// Entry is one stored content entry.
type Entry struct {
	ID          string         `json:"id"`
	ContentType string         `json:"content_type"`
	Slug        string         `json:"slug,omitempty"`
	Status      string         `json:"status"`
	Data        map[string]any `json:"data"`
	SortOrder   int            `json:"sort_order"`
	CreatedBy   string         `json:"created_by,omitempty"`
	UpdatedBy   string         `json:"updated_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Entry statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ListOptions filters and pages a listing. Zero values use server defaults.
type ListOptions struct {
	Status string
	Page   int
	Limit  int

	// All returns every match up to the server cap and ignores Page.
	All bool
}

// ListResult is one page of entries in server order.
type ListResult struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
	Pages   int     `json:"pages"`
}

// NewEntry is the create payload. Slug, Status and SortOrder are optional.
type NewEntry struct {
	ContentType string         `json:"content_type"`
	Slug        string         `json:"slug,omitempty"`
	Status      string         `json:"status,omitempty"`
	Data        map[string]any `json:"data"`
	SortOrder   *int           `json:"sort_order,omitempty"`
}

// EntryPatch is a partial update. Nil fields are left untouched on the server.
type EntryPatch struct {
	Slug      *string        `json:"slug,omitempty"`
	Status    *string        `json:"status,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	SortOrder *int           `json:"sort_order,omitempty"`
}

// Version is a snapshot taken before an update.
type Version struct {
	ID        string         `json:"id"`
	EntryID   string         `json:"entry_id"`
	Version   int            `json:"version"`
	Slug      string         `json:"slug,omitempty"`
	Status    string         `json:"status"`
	Data      map[string]any `json:"data"`
	SortOrder int            `json:"sort_order"`
	CreatedBy string         `json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

const contentPath = "content"

// # Content Operations

// ListContent lists entries of one type in server order.
func (c *Client) ListContent(ctx context.Context, contentType string, options ListOptions) (*ListResult, error) {
	query := url.Values{"type": []string{contentType}}
	if options.Status != "" {
		query.Set("status", options.Status)
	}
	if options.Page > 0 {
		query.Set("page", strconv.Itoa(options.Page))
	}
	if options.Limit > 0 {
		query.Set("limit", strconv.Itoa(options.Limit))
	}
	if options.All {
		query.Set("all", "true")
	}

	result := &ListResult{}
	if err := c.do(ctx, http.MethodGet, contentPath, query, nil, result); err != nil {
		return nil, err
	}
	if result.Entries == nil {
		result.Entries = []Entry{}
	}
	return result, nil
}

// GetEntry returns one entry. A missing entry yields an error matching [ErrNotFound].
func (c *Client) GetEntry(ctx context.Context, id string) (*Entry, error) {
	var body struct {
		Entry *Entry `json:"entry"`
	}
	if err := c.do(ctx, http.MethodGet, contentPath, idQuery("id", id), nil, &body); err != nil {
		return nil, err
	}
	if body.Entry == nil {
		return nil, &RequestError{StatusCode: http.StatusOK, Message: "Malformed response: missing entry"}
	}
	return body.Entry, nil
}

// GetBySlug returns the entry of a type with the given slug.
func (c *Client) GetBySlug(ctx context.Context, contentType, slug string) (*Entry, error) {
	query := url.Values{"type": []string{contentType}, "slug": []string{slug}}

	var body struct {
		Entry *Entry `json:"entry"`
	}
	if err := c.do(ctx, http.MethodGet, contentPath, query, nil, &body); err != nil {
		return nil, err
	}
	if body.Entry == nil {
		return nil, &RequestError{StatusCode: http.StatusOK, Message: "Malformed response: missing entry"}
	}
	return body.Entry, nil
}

// Create stores a new entry and returns its id.
func (c *Client) Create(ctx context.Context, entry NewEntry) (string, error) {
	var body MessageResponse
	if err := c.do(ctx, http.MethodPost, contentPath, nil, entry, &body); err != nil {
		return "", err
	}
	return body.ID, nil
}

// Update applies a partial change to an entry.
func (c *Client) Update(ctx context.Context, id string, patch EntryPatch) error {
	return c.do(ctx, http.MethodPut, contentPath, idQuery("id", id), patch, nil)
}

// Delete removes an entry. Deleting twice returns an error matching [ErrNotFound].
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, contentPath, idQuery("id", id), nil, nil)
}

/*
Save persists form data for an entry. It satisfies the admin form editor's
saver contract.

Description: An empty id creates a draft entry of contentType. Otherwise
only the data of the existing entry is replaced.

Returns:
  - string: the entry id
  - error: *RequestError
*/
func (c *Client) Save(ctx context.Context, contentType, id string, data map[string]any) (string, error) {
	if id == "" {
		return c.Create(ctx, NewEntry{ContentType: contentType, Data: data})
	}
	if err := c.Update(ctx, id, EntryPatch{Data: data}); err != nil {
		return "", err
	}
	return id, nil
}

// # Versions

// ListVersions returns the history of an entry, newest first.
func (c *Client) ListVersions(ctx context.Context, entryID string) ([]Version, error) {
	var body struct {
		Versions []Version `json:"versions"`
	}
	if err := c.do(ctx, http.MethodGet, "versions", idQuery("entry_id", entryID), nil, &body); err != nil {
		return nil, err
	}
	return body.Versions, nil
}

// RestoreVersion copies a snapshot back onto its entry.
func (c *Client) RestoreVersion(ctx context.Context, versionID string) error {
	return c.do(ctx, http.MethodPost, "versions", idQuery("id", versionID), nil, nil)
}
