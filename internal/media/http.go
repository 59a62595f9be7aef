// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// multipartOverhead covers boundaries and the small text fields next to the file.
const multipartOverhead = 1 << 20

// Handler serves the media endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the media router. Editor role or higher.
//
// # Endpoints
//   - GET    /?folder= : list
//   - GET    /?id=     : one item
//   - POST   /         : multipart upload (file, folder, alt_text)
//   - PUT    /?id=     : edit alt_text and folder
//   - DELETE /?id=     : delete object and row
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleEditor))

	router.Get("/", handler.read)
	router.Post("/", handler.upload)
	router.Put("/", handler.update)
	router.Delete("/", handler.delete)

	return router
}

func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	if requestutil.Query(request, FieldID) != "" {
		id, err := requestutil.RequiredID(request, FieldID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		item, err := handler.service.Get(request.Context(), id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, respond.Envelope{FieldItem: item})
		return
	}

	items, err := handler.service.List(request.Context(), requestutil.Query(request, FieldFolder))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{FieldItems: items})
}

/*
POST /api/media.

Request:
  - multipart/form-data with "file" and optional "folder" and "alt_text"

Response:
  - 201: {ok, id, item, message}
  - 400: missing file or unsupported type
  - 413: body larger than the configured limit
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	maxBytes := handler.service.MaxBytes()
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes+multipartOverhead)

	if err := request.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.PayloadTooLarge(fmt.Sprintf("File exceeds the %d byte limit", maxBytes)))
			return
		}
		respond.Error(writer, request, apperr.BadRequest("Expected a multipart form"))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	file, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("File is required",
			apperr.FieldError{Field: FieldFile, Message: "File is required"}))
		return
	}
	defer file.Close()

	item, err := handler.service.Upload(request.Context(), UploadInput{
		OriginalName: header.Filename,
		Folder:       request.FormValue(FieldFolder),
		AltText:      request.FormValue(FieldAltText),
		Body:         file,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Envelope{
		constants.FieldID:      item.ID,
		FieldItem:              item,
		constants.FieldMessage: "File uploaded",
	})
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.RequiredID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{FieldItem: item, constants.FieldMessage: "Media updated"})
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.RequiredID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{constants.FieldID: id, constants.FieldMessage: "Media deleted"})
}
