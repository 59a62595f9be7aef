// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/content/registry"
	"github.com/taibuivan/folio/internal/content/schema"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pagination"
	"github.com/taibuivan/folio/pkg/pointer"
	"github.com/taibuivan/folio/pkg/uuid"
)

// # Contracts & Types

// Recorder receives audit records. [activity.Service] satisfies it.
type Recorder interface {
	Record(context context.Context, item activity.Activity)
}

// Invalidator expires cached public reads of a content type.
type Invalidator interface {
	InvalidateType(context context.Context, contentType string)
}

// Service implements the content entry use cases.
type Service struct {
	repository  Repository
	types       *registry.Registry
	recorder    Recorder
	invalidator Invalidator
	logger      *slog.Logger
}

// NewService constructs a [Service]. recorder may be nil.
func NewService(repository Repository, types *registry.Registry, recorder Recorder, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		types:      types,
		recorder:   recorder,
		logger:     logger,
	}
}

// WithInvalidator makes every successful write expire the public cache of
// the written content type.
func (service *Service) WithInvalidator(invalidator Invalidator) *Service {
	service.invalidator = invalidator
	return service
}

// Viewer tells the service who is reading. Anonymous viewers only ever see
// published entries.
type Viewer struct {
	UserID        string
	Authenticated bool
}

// ListQuery holds the listing parameters of GET content.
type ListQuery struct {
	ContentType string
	Status      Status
	Page        int
	Limit       int
	All         bool
}

// CreateInput is the body of POST content.
type CreateInput struct {
	ContentType string         `json:"content_type"`
	Slug        string         `json:"slug"`
	Status      Status         `json:"status"`
	Data        map[string]any `json:"data"`
	SortOrder   *int           `json:"sort_order"`
}

// UpdateInput is the body of PUT content. Nil fields are left unchanged;
// a non-nil Data replaces the whole payload.
type UpdateInput struct {
	Slug      *string        `json:"slug"`
	Status    *Status        `json:"status"`
	Data      map[string]any `json:"data"`
	SortOrder *int           `json:"sort_order"`
}

// # Reads

/*
List returns one page of entries.

Description: all=true returns up to [constants.ContentListCap] entries on a
single page. Anonymous viewers are restricted to published entries whatever
status they ask for.

Returns:
  - []*Entry: entries in sort order then newest first
  - pagination.Meta: page metadata
  - error: NOT_FOUND for an unknown content type
*/
func (service *Service) List(context context.Context, viewer Viewer, query ListQuery) ([]*Entry, pagination.Meta, error) {
	if query.ContentType != "" {
		if _, err := service.types.Lookup(query.ContentType); err != nil {
			return nil, pagination.Meta{}, err
		}
	}

	if query.Status != "" {
		validator := &validate.Validator{}
		if err := validator.OneOf(FieldStatus, string(query.Status), Statuses...).Err(); err != nil {
			return nil, pagination.Meta{}, err
		}
	}

	filter := Filter{ContentType: query.ContentType, Status: query.Status}
	if !viewer.Authenticated {
		filter.Status = StatusPublished
	}

	params := pagination.Params{Page: query.Page, Limit: query.Limit}.Clamp()
	if query.All {
		params = pagination.Params{Page: 1, Limit: constants.ContentListCap}
	}

	entries, total, err := service.repository.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return entries, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get returns one entry. Unpublished entries are NOT_FOUND for anonymous viewers.
func (service *Service) Get(context context.Context, viewer Viewer, id string) (*Entry, error) {
	entry, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return visible(viewer, entry)
}

// GetBySlug returns the entry of contentType with slug.
func (service *Service) GetBySlug(context context.Context, viewer Viewer, contentType, slug string) (*Entry, error) {
	if _, err := service.types.Lookup(contentType); err != nil {
		return nil, err
	}

	entry, err := service.repository.FindBySlug(context, contentType, slug)
	if err != nil {
		return nil, err
	}
	return visible(viewer, entry)
}

func visible(viewer Viewer, entry *Entry) (*Entry, error) {
	if !viewer.Authenticated && entry.Status != StatusPublished {
		return nil, apperr.NotFound("Entry")
	}
	return entry, nil
}

// # Writes

/*
Create validates and stores a new entry.

Description: status defaults to draft and sort order to 0. Rich text is
sanitized. The payload must match the declared field types; required fields
are enforced only when the entry is published.

Returns:
  - *Entry: the stored entry with its server-assigned id
  - error: NOT_FOUND (type), VALIDATION_ERROR or CONFLICT (slug)
*/
func (service *Service) Create(context context.Context, viewer Viewer, input CreateInput) (*Entry, error) {
	validator := &validate.Validator{}
	validator.Required(FieldContentType, input.ContentType)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	def, err := service.types.Lookup(input.ContentType)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:          uuid.New(),
		ContentType: def.Slug,
		Slug:        strings.TrimSpace(input.Slug),
		Status:      input.Status,
		Data:        input.Data,
		SortOrder:   pointer.Val(input.SortOrder),
		CreatedBy:   viewer.UserID,
		UpdatedBy:   viewer.UserID,
	}
	if entry.Status == "" {
		entry.Status = StatusDraft
	}

	if err := service.prepare(def, entry); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("content_created",
		slog.String("entry_id", entry.ID),
		slog.String("content_type", entry.ContentType),
		slog.String("status", string(entry.Status)),
	)
	service.record(context, activity.ActionCreate, entry, "Created "+def.Name)

	return entry, nil
}

// Update applies a partial change to an entry. The previous state is kept
// as a version. Last write wins.
func (service *Service) Update(context context.Context, viewer Viewer, id string, input UpdateInput) (*Entry, error) {
	entry, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	def, err := service.types.Lookup(entry.ContentType)
	if err != nil {
		return nil, err
	}

	entry.Slug = strings.TrimSpace(pointer.Fallback(input.Slug, entry.Slug))
	entry.Status = pointer.Fallback(input.Status, entry.Status)
	entry.SortOrder = pointer.Fallback(input.SortOrder, entry.SortOrder)
	if input.Data != nil {
		entry.Data = input.Data
	}

	if err := service.prepare(def, entry); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, entry, viewer.UserID); err != nil {
		return nil, err
	}

	service.logger.Info("content_updated", slog.String("entry_id", entry.ID), slog.String("status", string(entry.Status)))
	service.record(context, activity.ActionUpdate, entry, "Updated "+def.Name)

	return entry, nil
}

// Delete hard-deletes an entry. A second delete is NOT_FOUND.
func (service *Service) Delete(context context.Context, id string) error {
	entry, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("content_deleted", slog.String("entry_id", id), slog.String("content_type", entry.ContentType))
	service.record(context, activity.ActionDelete, entry, "Deleted "+entry.ContentType)

	return nil
}

// # Versions

// Versions lists the history of an entry, newest first.
func (service *Service) Versions(context context.Context, entryID string) ([]*Version, error) {
	if _, err := service.repository.FindByID(context, entryID); err != nil {
		return nil, err
	}
	return service.repository.ListVersions(context, entryID)
}

// Restore copies a version back onto its entry. The state being replaced
// becomes a new version itself, so a restore can be undone.
func (service *Service) Restore(context context.Context, viewer Viewer, versionID string) (*Entry, error) {
	version, err := service.repository.FindVersion(context, versionID)
	if err != nil {
		return nil, err
	}

	entry, err := service.repository.FindByID(context, version.EntryID)
	if err != nil {
		return nil, err
	}

	entry.Slug = version.Slug
	entry.Status = version.Status
	entry.Data = version.Data
	entry.SortOrder = version.SortOrder

	if err := service.repository.Update(context, entry, viewer.UserID); err != nil {
		return nil, err
	}

	service.logger.Info("content_restored", slog.String("entry_id", entry.ID), slog.Int("version", version.Version))
	service.record(context, activity.ActionRestore, entry, fmt.Sprintf("Restored version %d", version.Version))

	return entry, nil
}

// # Internals

// prepare validates entry fields and normalizes its payload in place.
func (service *Service) prepare(def schema.ContentTypeDefinition, entry *Entry) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(entry.Status), Statuses...)
	if entry.Slug != "" {
		validator.Slug(FieldSlug, entry.Slug).MaxLen(FieldSlug, entry.Slug, 200)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if entry.Data == nil {
		entry.Data = map[string]any{}
	}
	entry.Data = schema.SanitizeRichText(def.Fields, entry.Data)

	problems := schema.Conform(def, entry.Data, entry.Status == StatusPublished)
	if len(problems) == 0 {
		return nil
	}

	details := make([]apperr.FieldError, len(problems))
	for i, problem := range problems {
		details[i] = apperr.FieldError{Field: FieldData + "." + problem.Path, Message: problem.Message}
	}
	return apperr.ValidationError(problems[0].Message, details...)
}

// record audits a successful write and expires the public cache of its type.
func (service *Service) record(context context.Context, action activity.Action, entry *Entry, summary string) {
	if service.invalidator != nil {
		service.invalidator.InvalidateType(context, entry.ContentType)
	}
	if service.recorder == nil {
		return
	}
	service.recorder.Record(context, activity.Activity{
		Action:     action,
		EntityType: activity.EntityContent,
		EntityID:   entry.ID,
		Summary:    summary,
	})
}
