// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/civicportal/internal/platform/middleware"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	requestutil "github.com/taibuivan/civicportal/internal/platform/request"
	"github.com/taibuivan/civicportal/internal/platform/respond"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/pkg/pagination"
)

// Access is the gate in front of one action.
type Access int

const (
	// Public lets anonymous callers through.
	Public Access = iota
	// Restricted requires an authenticated caller holding the policy capability.
	Restricted
)

// Policy gates each action of a [Handler].
type Policy struct {
	List, Get, Create, Update, Delete Access

	// Capability is required by every Restricted action.
	Capability sec.Capability
}

// PublicRead is the policy of published content: anyone reads, staff write.
func PublicRead(capability sec.Capability) Policy {
	return Policy{List: Public, Get: Public, Create: Restricted, Update: Restricted, Delete: Restricted, Capability: capability}
}

// PublicSubmit is the policy of citizen submissions: anyone submits, staff read.
func PublicSubmit(capability sec.Capability) Policy {
	return Policy{List: Restricted, Get: Restricted, Create: Public, Update: Restricted, Delete: Restricted, Capability: capability}
}

// Private restricts every action.
func Private(capability sec.Capability) Policy {
	return Policy{List: Restricted, Get: Restricted, Create: Restricted, Update: Restricted, Delete: Restricted, Capability: capability}
}

// Handler exposes a [Service] over HTTP.
type Handler[T any] struct {
	service *Service[T]
	policy  Policy
}

func NewHandler[T any](service *Service[T], policy Policy) *Handler[T] {
	return &Handler[T]{service: service, policy: policy}
}

/*
Mount wires a Postgres-backed resource under path.

Parameters:
  - router: chi.Router
  - path: string (e.g. "/notices")
  - db: postgres.DBTX
  - resource: Resource[T]
  - policy: Policy
  - logger: *slog.Logger
  - opts: service options such as [WithListCache]

Returns:
  - *Service[T]: The service behind the routes
*/
func Mount[T any](router chi.Router, path string, db postgres.DBTX, resource Resource[T], policy Policy, logger *slog.Logger, opts ...Option) *Service[T] {
	service := NewService[T](NewStore(db, resource), resource, logger, opts...)
	router.Route(path, NewHandler(service, policy).RegisterRoutes)
	return service
}

// RegisterRoutes mounts the collection and item routes on router.
func (handler *Handler[T]) RegisterRoutes(router chi.Router) {
	router.With(handler.gate(handler.policy.List)...).Get("/", handler.list)
	router.With(handler.gate(handler.policy.Create)...).Post("/", handler.create)
	router.With(handler.gate(handler.policy.Get)...).Get("/{id}", handler.get)
	router.With(handler.gate(handler.policy.Update)...).Put("/{id}", handler.replace)
	router.With(handler.gate(handler.policy.Update)...).Patch("/{id}", handler.patch)
	router.With(handler.gate(handler.policy.Delete)...).Delete("/{id}", handler.delete)
}

func (handler *Handler[T]) gate(access Access) []func(http.Handler) http.Handler {
	if access == Public {
		return nil
	}
	return []func(http.Handler) http.Handler{middleware.RequireCapability(handler.policy.Capability)}
}

func (handler *Handler[T]) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	items, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, params.Meta(total))
}

func (handler *Handler[T]) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id", handler.service.resource.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler[T]) create(writer http.ResponseWriter, request *http.Request) {
	item := new(T)
	if err := requestutil.DecodeJSON(request, item); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), item, requestutil.Principal(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (handler *Handler[T]) replace(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id", handler.service.resource.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item := new(T)
	if err := requestutil.DecodeJSON(request, item); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Replace(request.Context(), id, item); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler[T]) patch(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id", handler.service.resource.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Patch(request.Context(), id, func(stored *T) error {
		return requestutil.DecodeJSON(request, stored)
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler[T]) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id", handler.service.resource.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
