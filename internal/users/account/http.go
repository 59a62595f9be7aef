// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/auth"
)

// # Definitions & Constructors

// Handler implements the account administration endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the admin-only users router.
//
// # Endpoints
//   - GET    /       : List accounts, or one with ?id=
//   - POST   /       : Create an account
//   - PUT    /?id=   : Partial update
//   - DELETE /?id=   : Deactivate
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.get)
	router.Post("/", handler.create)
	router.Put("/", handler.update)
	router.Delete("/", handler.deactivate)

	return router
}

// # Endpoints

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	if requestutil.Query(request, FieldID) != "" {
		id, err := requestutil.RequiredID(request, FieldID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := handler.accountService.Get(request.Context(), id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, respond.Envelope{auth.FieldUser: user})
		return
	}

	users, err := handler.accountService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{FieldUsers: users})
}

/*
POST /api/users.

Response:
  - 201: {ok, id, message}
  - 400: VALIDATION_ERROR
  - 409: CONFLICT when the email is taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Envelope{FieldID: user.ID, constants.FieldMessage: "User created"})
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

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.accountService.Update(request.Context(), claims.UserID, id, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{FieldID: id, constants.FieldMessage: "User updated"})
}

func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.RequiredID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Deactivate(request.Context(), claims.UserID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Envelope{FieldID: id, constants.FieldMessage: "User deactivated"})
}
