// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/platform/dberr"
	"github.com/taibuivan/critica/pkg/pagination"
)

// # Review Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Review rows join users.account to denormalize the author's username.
const reviewColumns = `
	r.id, r.titleid, r.authorid, a.username, r.text, r.score, r.createdat, r.updatedat`

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.Author,
		&review.Text,
		&review.Score,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

/*
ListReviews returns a page of a title's reviews, newest first.

Parameters:
  - context: context.Context
  - titleID: string
  - page: pagination.Params

Returns:
  - []Review: The requested page
  - int: Total count
  - error: Execution errors
*/
func (repository *PostgresRepository) ListReviews(context context.Context, titleID string, page pagination.Params) ([]Review, int, error) {
	const query = `
		SELECT ` + reviewColumns + `
		FROM content.review r
		JOIN users.account a ON a.id = r.authorid
		WHERE r.titleid = $1
		ORDER BY r.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, titleID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_review_repo_list_failed: %w", err)
	}
	defer rows.Close()

	reviews := make([]Review, 0, page.Limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_review_repo_list_scan_failed: %w", err)
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_review_repo_list_rows_failed: %w", err)
	}

	var total int
	const countQuery = "SELECT COUNT(*) FROM content.review WHERE titleid = $1"
	if err := repository.pool.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_review_repo_count_failed: %w", err)
	}

	return reviews, total, nil
}

/*
FindReviewByID loads a review scoped to its title.

Parameters:
  - context: context.Context
  - titleID, reviewID: string

Returns:
  - *Review: Hydrated review
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindReviewByID(context context.Context, titleID, reviewID string) (*Review, error) {
	const query = `
		SELECT ` + reviewColumns + `
		FROM content.review r
		JOIN users.account a ON a.id = r.authorid
		WHERE r.id = $1 AND r.titleid = $2`

	review, err := scanReview(repository.pool.QueryRow(context, query, reviewID, titleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, fmt.Errorf("postgres_review_repo_find_by_id_failed: %w", err)
	}

	return review, nil
}

/*
FindReviewByAuthor loads the review a user left on a title, if any.

Parameters:
  - context: context.Context
  - titleID, authorID: string

Returns:
  - *Review: Hydrated review
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindReviewByAuthor(context context.Context, titleID, authorID string) (*Review, error) {
	const query = `
		SELECT ` + reviewColumns + `
		FROM content.review r
		JOIN users.account a ON a.id = r.authorid
		WHERE r.titleid = $1 AND r.authorid = $2`

	review, err := scanReview(repository.pool.QueryRow(context, query, titleID, authorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, fmt.Errorf("postgres_review_repo_find_by_author_failed: %w", err)
	}

	return review, nil
}

/*
CreateReview persists a new review.

Description: The (titleid, authorid) unique constraint turns a concurrent
duplicate into a conflict error via dberr.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: Conflict, constraint violations, or connectivity errors
*/
func (repository *PostgresRepository) CreateReview(context context.Context, review *Review) error {
	const query = `
		INSERT INTO content.review (id, titleid, authorid, text, score, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err, "review_titleid_authorid_key") {
			return apperr.Conflict("Only one review may be left per title")
		}
		return dberr.Wrap(err, "postgres_review_repo_create")
	}

	return nil
}

/*
UpdateReview persists changes to a review's text and score.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) UpdateReview(context context.Context, review *Review) error {
	const query = `
		UPDATE content.review
		SET text = $2, score = $3, updatedat = $4
		WHERE id = $1`

	review.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query, review.ID, review.Text, review.Score, review.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_review_repo_update_failed: %w", err)
	}

	return nil
}

/*
DeleteReview removes a review permanently.

Description: Comments under the review are removed through ON DELETE CASCADE.

Parameters:
  - context: context.Context
  - reviewID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) DeleteReview(context context.Context, reviewID string) error {
	const query = "DELETE FROM content.review WHERE id = $1"
	_, err := repository.pool.Exec(context, query, reviewID)
	if err != nil {
		return fmt.Errorf("postgres_review_repo_delete_failed: %w", err)
	}
	return nil
}

// # Comment Repository

const commentColumns = `
	c.id, c.reviewid, c.authorid, a.username, c.text, c.createdat, c.updatedat`

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.Author,
		&comment.Text,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

/*
ListComments returns a page of a review's comments, oldest first.

Parameters:
  - context: context.Context
  - reviewID: string
  - page: pagination.Params

Returns:
  - []Comment: The requested page
  - int: Total count
  - error: Execution errors
*/
func (repository *PostgresRepository) ListComments(context context.Context, reviewID string, page pagination.Params) ([]Comment, int, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM content.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.reviewid = $1
		ORDER BY c.createdat
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, reviewID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]Comment, 0, page.Limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_list_scan_failed: %w", err)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_rows_failed: %w", err)
	}

	var total int
	const countQuery = "SELECT COUNT(*) FROM content.comment WHERE reviewid = $1"
	if err := repository.pool.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	return comments, total, nil
}

/*
FindCommentByID loads a comment scoped to its review.

Parameters:
  - context: context.Context
  - reviewID, commentID: string

Returns:
  - *Comment: Hydrated comment
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindCommentByID(context context.Context, reviewID, commentID string) (*Comment, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM content.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.id = $1 AND c.reviewid = $2`

	comment, err := scanComment(repository.pool.QueryRow(context, query, commentID, reviewID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_by_id_failed: %w", err)
	}

	return comment, nil
}

/*
CreateComment persists a new comment.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO content.comment (id, reviewid, authorid, text, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text,
		comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_comment_repo_create")
	}

	return nil
}

/*
UpdateComment persists changes to a comment's text.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	const query = `
		UPDATE content.comment
		SET text = $2, updatedat = $3
		WHERE id = $1`

	comment.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query, comment.ID, comment.Text, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}

	return nil
}

/*
DeleteComment removes a comment permanently.

Parameters:
  - context: context.Context
  - commentID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) DeleteComment(context context.Context, commentID string) error {
	const query = "DELETE FROM content.comment WHERE id = $1"
	_, err := repository.pool.Exec(context, query, commentID)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}
	return nil
}
