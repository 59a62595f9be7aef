// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import "context"

// # Entry Data Access

// Repository defines the persistence contract for entries and their versions.
type Repository interface {

	/*
		List returns entries matching filter ordered by sort order then newest
		first, plus the total match count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Entry: Page of entries
		  - int: Total matching rows
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Entry, int, error)

	// FindByID returns one entry or NOT_FOUND.
	FindByID(context context.Context, id string) (*Entry, error)

	// FindBySlug returns the entry of contentType with slug, or NOT_FOUND.
	FindBySlug(context context.Context, contentType, slug string) (*Entry, error)

	/*
		Create persists a new entry. Timestamps are filled in from the database.

		Returns:
		  - error: CONFLICT when the slug is taken for the content type
	*/
	Create(context context.Context, entry *Entry) error

	/*
		Update snapshots the stored row as the next version and overwrites it
		with entry, atomically.

		Parameters:
		  - context: context.Context
		  - entry: *Entry (ID set)
		  - actorID: string (recorded on the version)

		Returns:
		  - error: NOT_FOUND, CONFLICT or persistence failures
	*/
	Update(context context.Context, entry *Entry, actorID string) error

	// Delete hard-deletes an entry and its versions.
	Delete(context context.Context, id string) error

	// ListVersions returns every version of an entry, newest first.
	ListVersions(context context.Context, entryID string) ([]*Version, error)

	// FindVersion returns one version or NOT_FOUND.
	FindVersion(context context.Context, id string) (*Version, error)
}
