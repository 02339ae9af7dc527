// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/civicportal/internal/platform/middleware"
	requestutil "github.com/taibuivan/civicportal/internal/platform/request"
	"github.com/taibuivan/civicportal/internal/platform/respond"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/users/auth"
	"github.com/taibuivan/civicportal/pkg/pagination"
)

// Handler implements the HTTP layer for the user directory.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the directory endpoints.
// Every route requires [sec.CapManageDirectory].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireCapability(sec.CapManageDirectory))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.replace)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.deactivate)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	profiles, total, err := handler.accountService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, profiles, params.Meta(total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id", "User")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.Create(request.Context(), input, caller)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, profile)
}

func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	handler.save(writer, request, handler.accountService.Replace)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	handler.save(writer, request, handler.accountService.Update)
}

type saveFunc func(ctx context.Context, id int64, fields auth.UserUpdate, caller *sec.Principal) (*auth.Profile, error)

func (handler *Handler) save(writer http.ResponseWriter, request *http.Request, save saveFunc) {
	id, err := requestutil.Int64Param(request, "id", "User")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var fields auth.UserUpdate
	if err := requestutil.DecodeJSON(request, &fields); err != nil {
		respond.Error(writer, request, err)
		return
	}

	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := save(request.Context(), id, fields, caller)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id", "User")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Deactivate(request.Context(), id, caller); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
