// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/pkg/convert"
	"github.com/taibuivan/folio/pkg/pagination"
)

// # Definitions & Constructors

// Handler serves the query-style content and versions endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the content router.
//
// # Endpoints
//   - GET    /?type=&status=&page=&limit=&all= : list
//   - GET    /?id=                              : one entry
//   - GET    /?type=&slug=                      : one entry by slug
//   - POST   /                                  : create (editor+)
//   - PUT    /?id=                              : partial update (editor+)
//   - DELETE /?id=                              : hard delete (editor+)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRoleFor(sec.RoleEditor, http.MethodPost, http.MethodPut, http.MethodDelete))

	router.Get("/", handler.read)
	router.Post("/", handler.create)
	router.Put("/", handler.update)
	router.Delete("/", handler.delete)

	return router
}

// VersionRoutes returns the versions router. Editor role or higher.
//
//   - GET  /?entry_id= : history of an entry
//   - POST /?id=       : restore a version
func (handler *Handler) VersionRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleEditor))

	router.Get("/", handler.listVersions)
	router.Post("/", handler.restoreVersion)

	return router
}

func viewerOf(request *http.Request) Viewer {
	claims := requestutil.Claims(request)
	if claims == nil {
		return Viewer{}
	}
	return Viewer{UserID: claims.UserID, Authenticated: true}
}

// # Reads

// read dispatches GET content on the query parameters present.
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	switch {
	case requestutil.Query(request, FieldID) != "":
		handler.get(writer, request)
	case requestutil.Query(request, FieldSlug) != "":
		handler.getBySlug(writer, request)
	default:
		handler.list(writer, request)
	}
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	entries, meta, err := handler.service.List(request.Context(), viewerOf(request), ListQuery{
		ContentType: requestutil.Query(request, FieldType),
		Status:      Status(requestutil.Query(request, FieldStatus)),
		Page:        params.Page,
		Limit:       params.Limit,
		All:         convert.ToBool(requestutil.Query(request, "all")),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, FieldEntries, entries, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
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

	respond.OK(writer, respond.Envelope{FieldEntry: entry})
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetBySlug(request.Context(), viewerOf(request),
		requestutil.Query(request, FieldType), requestutil.Query(request, FieldSlug),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{FieldEntry: entry})
}

// # Writes

/*
create stores a new entry.

POST /api/content

Response:
  - 201: {ok, id, message}
  - 400: VALIDATION_ERROR with per-field details
  - 404: unknown content type
  - 409: slug already used by this content type
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Create(request.Context(), viewerOf(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Envelope{
		constants.FieldID:      entry.ID,
		constants.FieldMessage: "Entry created",
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

	if _, err := handler.service.Update(request.Context(), viewerOf(request), id, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Entry updated")
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

	respond.Message(writer, "Entry deleted")
}

// # Versions

func (handler *Handler) listVersions(writer http.ResponseWriter, request *http.Request) {
	entryID, err := requestutil.RequiredID(request, FieldEntryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	versions, err := handler.service.Versions(request.Context(), entryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{FieldVersions: versions})
}

func (handler *Handler) restoreVersion(writer http.ResponseWriter, request *http.Request) {
	versionID, err := requestutil.RequiredID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Restore(request.Context(), viewerOf(request), versionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Version restored")
}
