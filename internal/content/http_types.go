// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/content/form"
	"github.com/taibuivan/folio/internal/content/registry"
	"github.com/taibuivan/folio/internal/content/schema"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/pkg/convert"
)

// TypesHandler exposes the content type registry and the form renderer.
type TypesHandler struct {
	types   *registry.Registry
	service *Service
}

// NewTypesHandler constructs a [TypesHandler].
func NewTypesHandler(types *registry.Registry, service *Service) *TypesHandler {
	return &TypesHandler{types: types, service: service}
}

// Routes returns the content-types router.
//
// # Endpoints
//   - GET  /?single=true|false : definitions
//   - GET  /{slug}             : one definition
//   - GET  /{slug}/form?id=    : rendered controls, blank or for an entry (auth)
//   - POST /{slug}/validate    : required-field and type check of a payload (auth)
func (handler *TypesHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.get)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Get("/{slug}/form", handler.form)
		authed.Post("/{slug}/validate", handler.validate)
	})

	return router
}

type validateRequest struct {
	Data map[string]any `json:"data"`
}

func (handler *TypesHandler) list(writer http.ResponseWriter, request *http.Request) {
	var types []schema.ContentTypeDefinition

	switch single := requestutil.Query(request, "single"); {
	case single == "":
		types = handler.types.List()
	case convert.ToBool(single):
		types = handler.types.ListSingle()
	default:
		types = handler.types.ListCollections()
	}

	respond.OK(writer, respond.Envelope{"types": types})
}

func (handler *TypesHandler) get(writer http.ResponseWriter, request *http.Request) {
	def, err := handler.types.Lookup(chi.URLParam(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{"type": def})
}

func (handler *TypesHandler) form(writer http.ResponseWriter, request *http.Request) {
	def, err := handler.types.Lookup(chi.URLParam(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var data map[string]any
	if requestutil.Query(request, FieldID) != "" {
		id, err := requestutil.RequiredID(request, FieldID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		entry, err := handler.service.Get(request.Context(), viewerOf(request), id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		if entry.ContentType != def.Slug {
			respond.Error(writer, request, apperr.NotFound("Entry"))
			return
		}
		data = entry.Data
	}

	editor, err := form.NewEditor(def, data, nil)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{
		"type":     def.Slug,
		"controls": editor.Controls(),
		FieldData:  editor.Data(),
	})
}

func (handler *TypesHandler) validate(writer http.ResponseWriter, request *http.Request) {
	def, err := handler.types.Lookup(chi.URLParam(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input validateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Data == nil {
		input.Data = map[string]any{}
	}

	problems := schema.Conform(def, input.Data, true)
	if problems == nil {
		problems = []schema.ValidationError{}
	}

	respond.OK(writer, respond.Envelope{
		"valid":  len(problems) == 0,
		"errors": problems,
	})
}
