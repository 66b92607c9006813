// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/critica/internal/content/title"
	"github.com/taibuivan/critica/pkg/pagination"
)

// # Repository Contract

// Repository abstracts persistence for reviews and their comments.
type Repository interface {
	// ListReviews returns a page of a title's reviews, newest first, plus
	// the total count.
	ListReviews(ctx context.Context, titleID string, page pagination.Params) ([]Review, int, error)

	// FindReviewByID loads a review scoped to its title. A review ID under
	// the wrong title is a not-found, not a leak.
	FindReviewByID(ctx context.Context, titleID, reviewID string) (*Review, error)

	// FindReviewByAuthor loads the review a user left on a title, if any.
	FindReviewByAuthor(ctx context.Context, titleID, authorID string) (*Review, error)

	// CreateReview persists a review. The (title, author) unique constraint
	// is the race-safe guard behind the service-level check.
	CreateReview(ctx context.Context, review *Review) error

	// UpdateReview persists changes to a review's text and score.
	UpdateReview(ctx context.Context, review *Review) error

	// DeleteReview removes a review; its comments go with it by cascade.
	DeleteReview(ctx context.Context, reviewID string) error

	// ListComments returns a page of a review's comments, oldest first,
	// plus the total count.
	ListComments(ctx context.Context, reviewID string, page pagination.Params) ([]Comment, int, error)

	// FindCommentByID loads a comment scoped to its review.
	FindCommentByID(ctx context.Context, reviewID, commentID string) (*Comment, error)

	// CreateComment persists a comment.
	CreateComment(ctx context.Context, comment *Comment) error

	// UpdateComment persists changes to a comment's text.
	UpdateComment(ctx context.Context, comment *Comment) error

	// DeleteComment removes a comment.
	DeleteComment(ctx context.Context, commentID string) error
}

// # Title Resolution Contract

// TitleResolver verifies that a review target exists. The title repository
// satisfies it.
type TitleResolver interface {
	FindByID(ctx context.Context, id string) (*title.Title, error)
}
