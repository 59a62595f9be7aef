// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/pkg/slug"
	"github.com/taibuivan/folio/pkg/uuid"
)

// Recorder receives audit records.
type Recorder interface {
	Record(context context.Context, item activity.Activity)
}

// Service implements the media library.
type Service struct {
	repo      Repository
	objects   ObjectStore
	recorder  Recorder
	publicURL string
	maxBytes  int64
}

// NewService constructs a new [Service]. publicURL prefixes every object key.
func NewService(repo Repository, objects ObjectStore, recorder Recorder, publicURL string, maxBytes int64) *Service {
	return &Service{
		repo:      repo,
		objects:   objects,
		recorder:  recorder,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
	}
}

// MaxBytes is the upload ceiling.
func (service *Service) MaxBytes() int64 { return service.maxBytes }

// UploadInput is one file taken from a multipart form.
type UploadInput struct {
	OriginalName string
	Folder       string
	AltText      string
	Body         io.Reader
}

// UpdateInput edits the mutable metadata. Nil fields are left alone.
type UpdateInput struct {
	AltText *string `json:"alt_text,omitempty"`
	Folder  *string `json:"folder,omitempty"`
}

// # Queries

func (service *Service) List(context context.Context, folder string) ([]*Item, error) {
	return service.repo.List(context, strings.TrimSpace(folder))
}

func (service *Service) Get(context context.Context, id string) (*Item, error) {
	return service.repo.FindByID(context, id)
}

// # Mutations

/*
Upload stores a file and its metadata.

Description: The MIME type comes from the first bytes of the body, never from
the client. Images in a decodable format get their pixel dimensions recorded.

Returns:
  - *Item: The stored item
  - error: PayloadTooLarge, ValidationError for unsupported types, or storage failures
*/
func (service *Service) Upload(context context.Context, input UploadInput) (*Item, error) {
	body, err := io.ReadAll(io.LimitReader(input.Body, service.maxBytes+1))
	if err != nil {
		return nil, apperr.BadRequest("Could not read upload")
	}
	if int64(len(body)) > service.maxBytes {
		return nil, apperr.PayloadTooLarge(fmt.Sprintf("File exceeds the %d byte limit", service.maxBytes))
	}
	if len(body) == 0 {
		return nil, apperr.ValidationError("File is empty", apperr.FieldError{Field: FieldFile, Message: "File is empty"})
	}

	mimeType := detectType(body)
	if !allowedType(mimeType) {
		return nil, apperr.ValidationError("Unsupported file type",
			apperr.FieldError{Field: FieldFile, Message: "Unsupported file type " + mimeType})
	}

	item := &Item{
		ID:           uuid.New(),
		OriginalName: input.OriginalName,
		MimeType:     mimeType,
		Size:         int64(len(body)),
		AltText:      strings.TrimSpace(input.AltText),
		Folder:       normalizeFolder(input.Folder),
	}
	item.FileName = fileName(item.ID, input.OriginalName)
	item.StorageKey = item.Folder + "/" + item.FileName
	item.URL = service.publicURL + "/" + item.StorageKey

	if strings.HasPrefix(mimeType, "image/") {
		if config, _, err := image.DecodeConfig(bytes.NewReader(body)); err == nil {
			item.Width, item.Height = &config.Width, &config.Height
		}
	}

	item.UploadedBy = ctxutil.UserID(context)

	if err := service.objects.Put(context, item.StorageKey, mimeType, bytes.NewReader(body)); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := service.repo.Create(context, item); err != nil {
		if cleanupErr := service.objects.Delete(context, item.StorageKey); cleanupErr != nil {
			ctxutil.GetLogger(context).Warn("media_orphan_object", slog.String("key", item.StorageKey), slog.Any("error", cleanupErr))
		}
		return nil, err
	}

	ctxutil.GetLogger(context).Info("media_uploaded",
		slog.String("media_id", item.ID), slog.String("mime_type", mimeType), slog.Int64("size", item.Size),
	)
	service.record(context, activity.ActionUpload, item.ID, "Uploaded "+item.OriginalName)
	return item, nil
}

// Update changes alt text and folder. The object key stays where it was.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Item, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.AltText != nil {
		item.AltText = strings.TrimSpace(*input.AltText)
	}
	if input.Folder != nil {
		item.Folder = normalizeFolder(*input.Folder)
	}

	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}

	service.record(context, activity.ActionUpdate, item.ID, "Updated "+item.OriginalName)
	return item, nil
}

// Delete removes the object and then the row.
func (service *Service) Delete(context context.Context, id string) error {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.objects.Delete(context, item.StorageKey); err != nil {
		return apperr.Internal(err)
	}
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.record(context, activity.ActionDelete, id, "Deleted "+item.OriginalName)
	return nil
}

func (service *Service) record(context context.Context, action activity.Action, id, summary string) {
	if service.recorder == nil {
		return
	}
	service.recorder.Record(context, activity.Activity{
		Action: action, EntityType: activity.EntityMedia, EntityID: id, Summary: summary,
	})
}

// # Helpers

// detectType trusts the bytes, never the file name. SVG sniffs as XML or
// text and is therefore rejected: it can carry script and is served from
// the public media URL.
func detectType(body []byte) string {
	mimeType, _, _ := strings.Cut(http.DetectContentType(body), ";")
	return mimeType
}

func allowedType(mimeType string) bool {
	switch {
	case strings.HasPrefix(mimeType, "image/"), strings.HasPrefix(mimeType, "video/"), strings.HasPrefix(mimeType, "audio/"):
		return true
	case mimeType == "application/pdf":
		return true
	}
	return false
}

func normalizeFolder(folder string) string {
	if normalized := slug.From(folder); normalized != "" {
		return normalized
	}
	return DefaultFolder
}

// fileName prefixes the slugged name with the item id so keys never collide.
func fileName(id, original string) string {
	return id + "-" + slug.FileName(original)
}
