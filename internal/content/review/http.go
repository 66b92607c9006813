// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

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

// Handler implements the HTTP layer for reviews and comments.
//
// Its routes are mounted under /titles/{titleID}/reviews; the titleID URL
// parameter is inherited from the parent router.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with review and comment endpoints.
//
// # Endpoints
//   - GET    /                                   : List a title's reviews (public).
//   - POST   /                                   : Post a review (authenticated).
//   - GET    /{reviewID}                         : Fetch a review (public).
//   - PATCH  /{reviewID}                         : Edit (author/moderator/admin).
//   - DELETE /{reviewID}                         : Remove (author/moderator/admin).
//   - GET    /{reviewID}/comments                : List comments (public).
//   - POST   /{reviewID}/comments                : Post a comment (authenticated).
//   - GET    /{reviewID}/comments/{commentID}    : Fetch a comment (public).
//   - PATCH  /{reviewID}/comments/{commentID}    : Edit (author/moderator/admin).
//   - DELETE /{reviewID}/comments/{commentID}    : Remove (author/moderator/admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReviews)
	router.Route("/{reviewID}", func(reviewRoute chi.Router) {
		reviewRoute.Get("/", handler.getReview)

		reviewRoute.Get("/comments", handler.listComments)
		reviewRoute.Get("/comments/{commentID}", handler.getComment)

		reviewRoute.Group(func(authRoute chi.Router) {
			authRoute.Use(middleware.RequireAuth)
			authRoute.Patch("/", handler.updateReview)
			authRoute.Delete("/", handler.deleteReview)
			authRoute.Post("/comments", handler.createComment)
			authRoute.Patch("/comments/{commentID}", handler.updateComment)
			authRoute.Delete("/comments/{commentID}", handler.deleteComment)
		})
	})

	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)
		authRoute.Post("/", handler.createReview)
	})

	return router
}

// # Request Payloads

type createReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// # Review Endpoints

/*
ListReviews returns a page of a title's reviews.

GET /api/v1/titles/{titleID}/reviews

Response:
  - 200: Paginated list of reviews
  - 404: Unknown title
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	page := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), titleID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
GetReview fetches a single review.

GET /api/v1/titles/{titleID}/reviews/{reviewID}

Response:
  - 200: The review
  - 404: Unknown title or review
*/
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	review, err := handler.service.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
CreateReview posts the caller's review on a title.

POST /api/v1/titles/{titleID}/reviews

Response:
  - 201: The created review
  - 400: Validation failure or a second review on the same title
  - 401: Missing or invalid token
  - 404: Unknown title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.CreateReview(request.Context(),
		requestutil.Param(request, "titleID"), claims,
		CreateReviewInput{Text: input.Text, Score: input.Score},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
UpdateReview applies a partial change to a review.

PATCH /api/v1/titles/{titleID}/reviews/{reviewID}

Response:
  - 200: The updated review
  - 403: Caller is neither the author nor moderation staff
  - 404: Unknown title or review
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(),
		requestutil.Param(request, "titleID"), requestutil.Param(request, "reviewID"), claims,
		UpdateReviewInput{Text: input.Text, Score: input.Score},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DeleteReview removes a review and its comments.

DELETE /api/v1/titles/{titleID}/reviews/{reviewID}

Response:
  - 204: Removed
  - 403: Caller is neither the author nor moderation staff
  - 404: Unknown title or review
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.DeleteReview(request.Context(),
		requestutil.Param(request, "titleID"), requestutil.Param(request, "reviewID"), claims,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Endpoints

/*
ListComments returns a page of a review's comments.

GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments

Response:
  - 200: Paginated list of comments
  - 404: Unknown title or review
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(),
		requestutil.Param(request, "titleID"), requestutil.Param(request, "reviewID"), page,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
GetComment fetches a single comment.

GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}

Response:
  - 200: The comment
  - 404: Unknown title, review, or comment
*/
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.service.GetComment(request.Context(),
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		requestutil.Param(request, "commentID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
CreateComment posts a reply on a review.

POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments

Response:
  - 201: The created comment
  - 401: Missing or invalid token
  - 404: Unknown title or review
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(),
		requestutil.Param(request, "titleID"), requestutil.Param(request, "reviewID"),
		claims, input.Text,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
UpdateComment changes a comment's text.

PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}

Response:
  - 200: The updated comment
  - 403: Caller is neither the author nor moderation staff
  - 404: Unknown title, review, or comment
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(),
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		requestutil.Param(request, "commentID"),
		claims, input.Text,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
DeleteComment removes a comment.

DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}

Response:
  - 204: Removed
  - 403: Caller is neither the author nor moderation staff
  - 404: Unknown title, review, or comment
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.DeleteComment(request.Context(),
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		requestutil.Param(request, "commentID"),
		claims,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
