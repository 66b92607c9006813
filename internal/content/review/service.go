// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/critica/internal/content/title"
	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/platform/sec"
	"github.com/taibuivan/critica/internal/platform/validate"
	"github.com/taibuivan/critica/pkg/pagination"
	"github.com/taibuivan/critica/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for reviews and comments.
type Service struct {
	repo        Repository
	titles      TitleResolver
	ratingCache title.RatingCache
	logger      *slog.Logger
}

// NewService constructs a new review [Service].
func NewService(repo Repository, titles TitleResolver, ratingCache title.RatingCache, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		titles:      titles,
		ratingCache: ratingCache,
		logger:      logger,
	}
}

// # Review Lifecycle

/*
ListReviews returns a page of a title's reviews.

Parameters:
  - context: context.Context
  - titleID: string (UUID)
  - page: pagination.Params

Returns:
  - []Review: The requested page, newest first
  - int: Total count
  - error: NotFound (unknown title) or retrieval errors
*/
func (service *Service) ListReviews(context context.Context, titleID string, page pagination.Params) ([]Review, int, error) {
	if _, err := service.titles.FindByID(context, titleID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListReviews(context, titleID, page)
}

/*
GetReview retrieves a single review scoped to its title.

Parameters:
  - context: context.Context
  - titleID, reviewID: string (UUIDs)

Returns:
  - *Review: Hydrated review
  - error: NotFound or retrieval errors
*/
func (service *Service) GetReview(context context.Context, titleID, reviewID string) (*Review, error) {
	return service.repo.FindReviewByID(context, titleID, reviewID)
}

// CreateReviewInput holds the data for a new review.
type CreateReviewInput struct {
	Text  string
	Score int
}

/*
CreateReview posts a user's review on a title.

Description: A user may review each title at most once. The service checks
for an existing review first; the storage unique constraint closes the race
window, and either path surfaces the same conflict error.

Parameters:
  - context: context.Context
  - titleID: string (UUID)
  - actor: *sec.AuthClaims (The authenticated author)
  - input: CreateReviewInput

Returns:
  - *Review: The created review
  - error: NotFound (unknown title), Conflict (already reviewed), validation
    or persistence failures
*/
func (service *Service) CreateReview(context context.Context, titleID string, actor *sec.AuthClaims, input CreateReviewInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, MaxTextLength).
		Range(FieldScore, input.Score, MinScore, MaxScore)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.titles.FindByID(context, titleID); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindReviewByAuthor(context, titleID, actor.UserID); err == nil {
		return nil, apperr.Conflict("Only one review may be left per title")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	review := &Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.invalidateRating(context, titleID)

	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.String("title_id", titleID),
	)

	return review, nil
}

// UpdateReviewInput defines the mutable fields of a review. Nil fields are
// left unchanged.
type UpdateReviewInput struct {
	Text  *string
	Score *int
}

/*
UpdateReview applies a partial change to a review.

Description: Permitted for the author, a moderator, or an administrator.

Parameters:
  - context: context.Context
  - titleID, reviewID: string (UUIDs)
  - actor: *sec.AuthClaims
  - input: UpdateReviewInput

Returns:
  - *Review: The updated review
  - error: NotFound, Forbidden, validation, or persistence failures
*/
func (service *Service) UpdateReview(context context.Context, titleID, reviewID string, actor *sec.AuthClaims, input UpdateReviewInput) (*Review, error) {
	review, err := service.repo.FindReviewByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.CanActOnAuthored(http.MethodPatch, actor.UserID, review.AuthorID, actor.Capabilities()) {
		return nil, apperr.Forbidden("You do not have permission to modify this review")
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text).MaxLen(FieldText, *input.Text, MaxTextLength)
	}
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, MinScore, MaxScore)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	// Persist changes
	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.invalidateRating(context, titleID)

	service.logger.Info("review_updated", slog.String("review_id", review.ID))

	return review, nil
}

/*
DeleteReview removes a review and its comments.

Description: Permitted for the author, a moderator, or an administrator.

Parameters:
  - context: context.Context
  - titleID, reviewID: string (UUIDs)
  - actor: *sec.AuthClaims

Returns:
  - error: NotFound, Forbidden, or persistence failures
*/
func (service *Service) DeleteReview(context context.Context, titleID, reviewID string, actor *sec.AuthClaims) error {
	review, err := service.repo.FindReviewByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.CanActOnAuthored(http.MethodDelete, actor.UserID, review.AuthorID, actor.Capabilities()) {
		return apperr.Forbidden("You do not have permission to delete this review")
	}

	if err := service.repo.DeleteReview(context, reviewID); err != nil {
		return err
	}

	service.invalidateRating(context, titleID)

	service.logger.Info("review_deleted", slog.String("review_id", reviewID))

	return nil
}

// invalidateRating drops the title's cached rating after a score mutation.
// Failures are logged; the TTL bounds any resulting staleness.
func (service *Service) invalidateRating(context context.Context, titleID string) {
	if err := service.ratingCache.Invalidate(context, titleID); err != nil {
		service.logger.WarnContext(context, "review_rating_invalidate_failed",
			slog.String("title_id", titleID),
			slog.String("error", err.Error()),
		)
	}
}

// # Comment Lifecycle

/*
ListComments returns a page of a review's comments.

Parameters:
  - context: context.Context
  - titleID, reviewID: string (UUIDs)
  - page: pagination.Params

Returns:
  - []Comment: The requested page, oldest first
  - int: Total count
  - error: NotFound (unknown title or review) or retrieval errors
*/
func (service *Service) ListComments(context context.Context, titleID, reviewID string, page pagination.Params) ([]Comment, int, error) {
	if _, err := service.repo.FindReviewByID(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListComments(context, reviewID, page)
}

/*
GetComment retrieves a single comment scoped to its review.

Parameters:
  - context: context.Context
  - titleID, reviewID, commentID: string (UUIDs)

Returns:
  - *Comment: Hydrated comment
  - error: NotFound or retrieval errors
*/
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	if _, err := service.repo.FindReviewByID(context, titleID, reviewID); err != nil {
		return nil, err
	}

	return service.repo.FindCommentByID(context, reviewID, commentID)
}

/*
CreateComment posts a reply on a review.

Parameters:
  - context: context.Context
  - titleID, reviewID: string (UUIDs)
  - actor: *sec.AuthClaims (The authenticated author)
  - text: string

Returns:
  - *Comment: The created comment
  - error: NotFound, validation, or persistence failures
*/
func (service *Service) CreateComment(context context.Context, titleID, reviewID string, actor *sec.AuthClaims, text string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, text).MaxLen(FieldText, text, MaxTextLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindReviewByID(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     text,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", reviewID),
	)

	return comment, nil
}

/*
UpdateComment changes a comment's text.

Description: Permitted for the author, a moderator, or an administrator.

Parameters:
  - context: context.Context
  - titleID, reviewID, commentID: string (UUIDs)
  - actor: *sec.AuthClaims
  - text: string

Returns:
  - *Comment: The updated comment
  - error: NotFound, Forbidden, validation, or persistence failures
*/
func (service *Service) UpdateComment(context context.Context, titleID, reviewID, commentID string, actor *sec.AuthClaims, text string) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.CanActOnAuthored(http.MethodPatch, actor.UserID, comment.AuthorID, actor.Capabilities()) {
		return nil, apperr.Forbidden("You do not have permission to modify this comment")
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, text).MaxLen(FieldText, text, MaxTextLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.String("comment_id", comment.ID))

	return comment, nil
}

/*
DeleteComment removes a comment.

Description: Permitted for the author, a moderator, or an administrator.

Parameters:
  - context: context.Context
  - titleID, reviewID, commentID: string (UUIDs)
  - actor: *sec.AuthClaims

Returns:
  - error: NotFound, Forbidden, or persistence failures
*/
func (service *Service) DeleteComment(context context.Context, titleID, reviewID, commentID string, actor *sec.AuthClaims) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.CanActOnAuthored(http.MethodDelete, actor.UserID, comment.AuthorID, actor.Capabilities()) {
		return apperr.Forbidden("You do not have permission to delete this comment")
	}

	if err := service.repo.DeleteComment(context, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", commentID))

	return nil
}
