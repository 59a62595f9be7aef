// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/pkg/convert"
	"github.com/taibuivan/folio/pkg/query"
)

// Handler serves the activity feed.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the activity router. Developer role or higher.
//
//   - GET / ?limit=&entity_type=a,b
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleDeveloper))
	router.Get("/", handler.list)
	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		Limit:       convert.ToIntD(requestutil.Query(request, "limit"), DefaultLimit),
		EntityTypes: query.StringSlice(requestutil.Query(request, "entity_type")),
	}

	items, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{FieldActivity: items})
}
