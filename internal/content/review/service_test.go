// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critica/internal/content/review"
	"github.com/taibuivan/critica/internal/content/title"
	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/platform/sec"
	"github.com/taibuivan/critica/pkg/pagination"
	"github.com/taibuivan/critica/pkg/pointer"
)

// # Test Doubles

type fakeRepository struct {
	reviews  map[string]*review.Review
	comments map[string]*review.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		reviews:  make(map[string]*review.Review),
		comments: make(map[string]*review.Comment),
	}
}

func (r *fakeRepository) ListReviews(_ context.Context, titleID string, _ pagination.Params) ([]review.Review, int, error) {
	matches := make([]review.Review, 0)
	for _, entry := range r.reviews {
		if entry.TitleID == titleID {
			matches = append(matches, *entry)
		}
	}
	return matches, len(matches), nil
}

func (r *fakeRepository) FindReviewByID(_ context.Context, titleID, reviewID string) (*review.Review, error) {
	entry, ok := r.reviews[reviewID]
	if !ok || entry.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	copied := *entry
	return &copied, nil
}

func (r *fakeRepository) FindReviewByAuthor(_ context.Context, titleID, authorID string) (*review.Review, error) {
	for _, entry := range r.reviews {
		if entry.TitleID == titleID && entry.AuthorID == authorID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Review")
}

func (r *fakeRepository) CreateReview(_ context.Context, entry *review.Review) error {
	for _, existing := range r.reviews {
		if existing.TitleID == entry.TitleID && existing.AuthorID == entry.AuthorID {
			return apperr.Conflict("Only one review may be left per title")
		}
	}
	copied := *entry
	r.reviews[entry.ID] = &copied
	return nil
}

func (r *fakeRepository) UpdateReview(_ context.Context, entry *review.Review) error {
	copied := *entry
	r.reviews[entry.ID] = &copied
	return nil
}

func (r *fakeRepository) DeleteReview(_ context.Context, reviewID string) error {
	delete(r.reviews, reviewID)
	for id, comment := range r.comments {
		if comment.ReviewID == reviewID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *fakeRepository) ListComments(_ context.Context, reviewID string, _ pagination.Params) ([]review.Comment, int, error) {
	matches := make([]review.Comment, 0)
	for _, comment := range r.comments {
		if comment.ReviewID == reviewID {
			matches = append(matches, *comment)
		}
	}
	return matches, len(matches), nil
}

func (r *fakeRepository) FindCommentByID(_ context.Context, reviewID, commentID string) (*review.Comment, error) {
	comment, ok := r.comments[commentID]
	if !ok || comment.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeRepository) CreateComment(_ context.Context, comment *review.Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeRepository) UpdateComment(_ context.Context, comment *review.Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeRepository) DeleteComment(_ context.Context, commentID string) error {
	delete(r.comments, commentID)
	return nil
}

type fakeTitles struct {
	known map[string]bool
}

func (f *fakeTitles) FindByID(_ context.Context, id string) (*title.Title, error) {
	if !f.known[id] {
		return nil, apperr.NotFound("Title")
	}
	return &title.Title{ID: id}, nil
}

type fakeRatingCache struct {
	invalidated []string
}

func (c *fakeRatingCache) Get(_ context.Context, _ string) (*int, bool, error) { return nil, false, nil }
func (c *fakeRatingCache) Set(_ context.Context, _ string, _ int) error        { return nil }
func (c *fakeRatingCache) Invalidate(_ context.Context, titleID string) error {
	c.invalidated = append(c.invalidated, titleID)
	return nil
}

type fixture struct {
	repo    *fakeRepository
	cache   *fakeRatingCache
	service *review.Service
}

func newFixture(titleIDs ...string) *fixture {
	repo := newFakeRepository()
	cache := &fakeRatingCache{}
	titles := &fakeTitles{known: make(map[string]bool)}
	for _, id := range titleIDs {
		titles.known[id] = true
	}

	return &fixture{
		repo:    repo,
		cache:   cache,
		service: review.NewService(repo, titles, cache, slog.Default()),
	}
}

func claimsFor(userID, username string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: username, Role: string(role)}
}

// # Review Creation

func TestService_CreateReview_Success(t *testing.T) {
	f := newFixture("t1")
	actor := claimsFor("u1", "alice", sec.RoleUser)

	created, err := f.service.CreateReview(context.Background(), "t1", actor, review.CreateReviewInput{
		Text:  "A sprawling noir that earns its ending.",
		Score: 9,
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", created.Author)
	assert.Equal(t, 9, created.Score)
	assert.Contains(t, f.cache.invalidated, "t1")
}

func TestService_CreateReview_UnknownTitle(t *testing.T) {
	f := newFixture()
	actor := claimsFor("u1", "alice", sec.RoleUser)

	_, err := f.service.CreateReview(context.Background(), "ghost", actor, review.CreateReviewInput{
		Text:  "text",
		Score: 5,
	})

	assert.True(t, apperr.IsNotFound(err))
}

func TestService_CreateReview_ScoreBounds(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		isValid bool
	}{
		{"below_minimum", 0, false},
		{"minimum", 1, true},
		{"maximum", 10, true},
		{"above_maximum", 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture("t1")
			actor := claimsFor("u1", "alice", sec.RoleUser)

			_, err := f.service.CreateReview(context.Background(), "t1", actor, review.CreateReviewInput{
				Text:  "text",
				Score: tt.score,
			})

			if tt.isValid {
				assert.NoError(t, err)
			} else {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			}
		})
	}
}

func TestService_CreateReview_SecondReviewConflicts(t *testing.T) {
	f := newFixture("t1")
	actor := claimsFor("u1", "alice", sec.RoleUser)

	_, err := f.service.CreateReview(context.Background(), "t1", actor, review.CreateReviewInput{
		Text: "first", Score: 8,
	})
	require.NoError(t, err)

	_, err = f.service.CreateReview(context.Background(), "t1", actor, review.CreateReviewInput{
		Text: "second", Score: 3,
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)
}

func TestService_CreateReview_SameUserDifferentTitles(t *testing.T) {
	f := newFixture("t1", "t2")
	actor := claimsFor("u1", "alice", sec.RoleUser)

	_, err := f.service.CreateReview(context.Background(), "t1", actor, review.CreateReviewInput{Text: "a", Score: 8})
	require.NoError(t, err)

	_, err = f.service.CreateReview(context.Background(), "t2", actor, review.CreateReviewInput{Text: "b", Score: 6})
	assert.NoError(t, err)
}

// # Review Moderation

func postReview(t *testing.T, f *fixture, titleID string, actor *sec.AuthClaims, score int) *review.Review {
	t.Helper()
	created, err := f.service.CreateReview(context.Background(), titleID, actor, review.CreateReviewInput{
		Text:  "original text",
		Score: score,
	})
	require.NoError(t, err)
	return created
}

func TestService_UpdateReview_AuthorMayEdit(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)

	updated, err := f.service.UpdateReview(context.Background(), "t1", posted.ID, author, review.UpdateReviewInput{
		Score: pointer.To(4),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, updated.Score)
	assert.Equal(t, "original text", updated.Text)
	assert.GreaterOrEqual(t, len(f.cache.invalidated), 2, "score change must drop the cached rating")
}

func TestService_UpdateReview_StrangerForbidden(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)

	stranger := claimsFor("u2", "bob", sec.RoleUser)
	_, err := f.service.UpdateReview(context.Background(), "t1", posted.ID, stranger, review.UpdateReviewInput{
		Text: pointer.To("hijacked"),
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
	assert.Equal(t, 403, ae.HTTPStatus)
}

func TestService_DeleteReview_ModeratorMayDelete(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)

	moderator := claimsFor("u3", "mod", sec.RoleModerator)
	err := f.service.DeleteReview(context.Background(), "t1", posted.ID, moderator)

	require.NoError(t, err)
	_, err = f.service.GetReview(context.Background(), "t1", posted.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_DeleteReview_AdminMayDelete(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)

	admin := claimsFor("u4", "root", sec.RoleAdmin)
	assert.NoError(t, f.service.DeleteReview(context.Background(), "t1", posted.ID, admin))
}

func TestService_DeleteReview_StaffFlagGrantsModeration(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)

	staff := claimsFor("u5", "ops", sec.RoleUser)
	staff.Staff = true
	assert.NoError(t, f.service.DeleteReview(context.Background(), "t1", posted.ID, staff))
}

func TestService_GetReview_WrongTitleScope(t *testing.T) {
	f := newFixture("t1", "t2")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)

	_, err := f.service.GetReview(context.Background(), "t2", posted.ID)

	assert.True(t, apperr.IsNotFound(err), "a review must not be reachable under another title")
}

// # Comments

func TestService_CreateComment_Success(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)

	commenter := claimsFor("u2", "bob", sec.RoleUser)
	comment, err := f.service.CreateComment(context.Background(), "t1", posted.ID, commenter, "Couldn't agree more.")

	require.NoError(t, err)
	assert.Equal(t, "bob", comment.Author)
	assert.Equal(t, posted.ID, comment.ReviewID)
}

func TestService_CreateComment_UnknownReview(t *testing.T) {
	f := newFixture("t1")
	commenter := claimsFor("u2", "bob", sec.RoleUser)

	_, err := f.service.CreateComment(context.Background(), "t1", "ghost", commenter, "text")

	assert.True(t, apperr.IsNotFound(err))
}

func TestService_CreateComment_RequiresText(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)

	_, err := f.service.CreateComment(context.Background(), "t1", posted.ID, author, "")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_UpdateComment_StrangerForbidden(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)
	comment, err := f.service.CreateComment(context.Background(), "t1", posted.ID, author, "mine")
	require.NoError(t, err)

	stranger := claimsFor("u2", "bob", sec.RoleUser)
	_, err = f.service.UpdateComment(context.Background(), "t1", posted.ID, comment.ID, stranger, "hijacked")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestService_DeleteComment_AuthorMayDelete(t *testing.T) {
	f := newFixture("t1")
	author := claimsFor("u1", "alice", sec.RoleUser)
	posted := postReview(t, f, "t1", author, 8)
	comment, err := f.service.CreateComment(context.Background(), "t1", posted.ID, author, "mine")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteComment(context.Background(), "t1", posted.ID, comment.ID, author))

	_, err = f.service.GetComment(context.Background(), "t1", posted.ID, comment.ID)
	assert.True(t, apperr.IsNotFound(err))
}
