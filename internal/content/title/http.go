// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/critica/internal/platform/middleware"
	requestutil "github.com/taibuivan/critica/internal/platform/request"
	"github.com/taibuivan/critica/internal/platform/respond"
	"github.com/taibuivan/critica/internal/platform/validate"
	"github.com/taibuivan/critica/pkg/pagination"
	"github.com/taibuivan/critica/pkg/query"
)

// # Definitions & Constructors

// Handler implements the HTTP layer for the title catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalogue's endpoints.
//
// # Endpoints
//   - GET    /      : Browse the catalogue (public).
//   - GET    /{id}  : Fetch a title (public).
//   - POST   /      : Add a title (admin).
//   - PATCH  /{id}  : Update a title (admin).
//   - DELETE /{id}  : Remove a title (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public discovery
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Catalogue administration
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)
		adminRoute.Post("/", handler.create)
		adminRoute.Patch("/{id}", handler.update)
		adminRoute.Delete("/{id}", handler.delete)
	})

	return router
}

// # Request Payloads

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// # Endpoints

/*
List returns a filtered page of the catalogue.

GET /api/v1/titles?category=&genre=&name=&year=&page=&limit=

Response:
  - 200: Paginated list of titles with category, genres, and rating
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		CategorySlug: values.Get(FieldCategory),
		GenreSlug:    values.Get(FieldGenre),
		Name:         values.Get(FieldName),
		Year:         query.Int(values.Get(FieldYear)),
	}

	titles, total, err := handler.service.ListTitles(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
Get fetches a single title with its rating.

GET /api/v1/titles/{id}

Response:
  - 200: The title
  - 404: Unknown title
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	title, err := handler.service.GetTitle(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
Create adds a work to the catalogue.

POST /api/v1/titles

Response:
  - 201: The created title
  - 400: Validation failure or unknown taxonomy slug
  - 403: Caller lacks admin capability
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	title, err := handler.service.CreateTitle(request.Context(), CreateTitleInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

/*
Update applies a partial change to a catalogue entry.

PATCH /api/v1/titles/{id}

Response:
  - 200: The updated title
  - 400: Validation failure or unknown taxonomy slug
  - 403: Caller lacks admin capability
  - 404: Unknown title
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	title, err := handler.service.UpdateTitle(request.Context(), id, UpdateTitleInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
Delete removes a title and everything reviewed under it.

DELETE /api/v1/titles/{id}

Response:
  - 204: Removed
  - 403: Caller lacks admin capability
  - 404: Unknown title
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.service.DeleteTitle(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
