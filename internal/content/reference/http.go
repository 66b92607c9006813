// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/critica/internal/platform/middleware"
	requestutil "github.com/taibuivan/critica/internal/platform/request"
	"github.com/taibuivan/critica/internal/platform/respond"
	"github.com/taibuivan/critica/internal/platform/validate"
	"github.com/taibuivan/critica/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the HTTP layer for taxonomy vocabularies.
//
// The same handler serves both vocabularies; each mounted router binds the
// [Kind] it manages.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CategoryRoutes returns the router for the category vocabulary.
func (handler *Handler) CategoryRoutes() chi.Router {
	return handler.routesFor(KindCategory)
}

// GenreRoutes returns the router for the genre vocabulary.
func (handler *Handler) GenreRoutes() chi.Router {
	return handler.routesFor(KindGenre)
}

// routesFor builds a vocabulary router bound to one [Kind].
//
// # Endpoints
//   - GET    /        : List terms (public).
//   - POST   /        : Create a term (admin).
//   - DELETE /{slug}  : Remove a term (admin).
func (handler *Handler) routesFor(kind Kind) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list(kind))

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)
		adminRoute.Post("/", handler.create(kind))
		adminRoute.Delete("/{slug}", handler.delete(kind))
	})

	return router
}

// # Request Payloads

type createTermRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Endpoints

/*
List returns a page of a vocabulary.

GET /api/v1/categories?search=&page=&limit=
GET /api/v1/genres?search=&page=&limit=

Response:
  - 200: Paginated list of terms
*/
func (handler *Handler) list(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		page := pagination.FromRequest(request)
		search := request.URL.Query().Get(fieldSearch)

		terms, total, err := handler.service.ListTerms(request.Context(), kind, search, page)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Paginated(writer, terms, pagination.NewMeta(page.Page, page.Limit, total))
	}
}

/*
Create adds a term to a vocabulary.

POST /api/v1/categories
POST /api/v1/genres

Response:
  - 201: The created term
  - 400: Validation failure or duplicate slug
  - 403: Caller lacks admin capability
*/
func (handler *Handler) create(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input createTermRequest

		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, validate.ErrInvalidJSON)
			return
		}

		term, err := handler.service.CreateTerm(request.Context(), kind, CreateTermInput{
			Name: input.Name,
			Slug: input.Slug,
		})
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Created(writer, term)
	}
}

/*
Delete removes a term from a vocabulary by slug.

DELETE /api/v1/categories/{slug}
DELETE /api/v1/genres/{slug}

Response:
  - 204: Removed
  - 403: Caller lacks admin capability
  - 404: Unknown slug
*/
func (handler *Handler) delete(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		slugValue := requestutil.Param(request, "slug")

		if err := handler.service.DeleteTerm(request.Context(), kind, slugValue); err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.NoContent(writer)
	}
}
