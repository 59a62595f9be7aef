// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content implements the content entry API: storage of schema-described
JSON entries, their version history, and the HTTP surface the admin and the
public site talk to.

Architecture:

  - Entry: one record of a content type, its payload kept as opaque JSON.
  - Repository: PostgreSQL persistence (jsonb payload, versions table).
  - Service: registry lookup, sanitization, conformance and versioning.
  - Handler: the query-style REST contract (content?id=, content?type=&slug=).
*/
package content

import (
	"time"
)

// # Domain Entities

// Status is the publication state of an entry. Transitions are unconstrained.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses lists every valid status.
var Statuses = []string{string(StatusDraft), string(StatusPublished), string(StatusArchived)}

// Entry is one record of a content type.
type Entry struct {
	ID          string         `json:"id"`
	ContentType string         `json:"content_type"`
	Slug        string         `json:"slug,omitempty"`
	Status      Status         `json:"status"`
	Data        map[string]any `json:"data"`
	SortOrder   int            `json:"sort_order"`
	CreatedBy   string         `json:"created_by,omitempty"`
	UpdatedBy   string         `json:"updated_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Version is a snapshot of an entry taken before it was overwritten.
type Version struct {
	ID        string         `json:"id"`
	EntryID   string         `json:"entry_id"`
	Version   int            `json:"version"`
	Slug      string         `json:"slug,omitempty"`
	Status    Status         `json:"status"`
	Data      map[string]any `json:"data"`
	SortOrder int            `json:"sort_order"`
	CreatedBy string         `json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Filter narrows an entry listing.
type Filter struct {
	ContentType string
	Status      Status
}

// # Field Identifiers

const (
	FieldID          = "id"
	FieldEntryID     = "entry_id"
	FieldContentType = "content_type"
	FieldType        = "type"
	FieldSlug        = "slug"
	FieldStatus      = "status"
	FieldData        = "data"
	FieldSortOrder   = "sort_order"
	FieldEntry       = "entry"
	FieldEntries     = "entries"
	FieldVersions    = "versions"
)
