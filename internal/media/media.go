// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media implements the media library.

An upload is sniffed for its MIME type, measured when it is an image, stored
as an object in S3-compatible storage and described by a row in media.item.
Only alt text and folder are editable afterwards.
*/
package media

import (
	"context"
	"io"
	"time"
)

// # Domain Entities

// Item describes one stored file.
type Item struct {
	ID           string    `json:"id"`
	FileName     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	AltText      string    `json:"alt_text"`
	Folder       string    `json:"folder"`
	StorageKey   string    `json:"-"`
	URL          string    `json:"url"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DefaultFolder holds uploads that name no folder.
const DefaultFolder = "general"

// # Field Identifiers

const (
	FieldID      = "id"
	FieldFile    = "file"
	FieldFolder  = "folder"
	FieldAltText = "alt_text"
	FieldItems   = "items"
	FieldItem    = "item"
)

// # Contracts

// Repository persists media metadata.
type Repository interface {
	// List returns items newest first. An empty folder lists everything.
	List(context context.Context, folder string) ([]*Item, error)

	// FindByID returns apperr.NotFound for unknown ids.
	FindByID(context context.Context, id string) (*Item, error)

	Create(context context.Context, item *Item) error

	// Update persists alt text and folder.
	Update(context context.Context, item *Item) error

	Delete(context context.Context, id string) error
}

// ObjectStore holds the file bytes.
type ObjectStore interface {
	/*
		Put writes an object.

		Parameters:
		  - key: string (object key)
		  - contentType: string (sniffed MIME type)
		  - body: io.Reader

		Returns:
		  - error: Transport or permission failures
	*/
	Put(context context.Context, key, contentType string, body io.Reader) error

	// Delete removes an object. Missing objects are not an error.
	Delete(context context.Context, key string) error
}
