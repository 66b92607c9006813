// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/content/reference"
	"github.com/taibuivan/critica/pkg/pagination"
)

// # Test Doubles

type fakeRepository struct {
	terms map[reference.Kind]map[string]*reference.Term
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		terms: map[reference.Kind]map[string]*reference.Term{
			reference.KindCategory: {},
			reference.KindGenre:    {},
		},
	}
}

func (r *fakeRepository) List(_ context.Context, kind reference.Kind, search string, page pagination.Params) ([]reference.Term, int, error) {
	matches := make([]reference.Term, 0)
	for _, term := range r.terms[kind] {
		matches = append(matches, *term)
	}
	return matches, len(matches), nil
}

func (r *fakeRepository) FindBySlug(_ context.Context, kind reference.Kind, slug string) (*reference.Term, error) {
	term, ok := r.terms[kind][slug]
	if !ok {
		return nil, apperr.NotFound("Term")
	}
	copied := *term
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, kind reference.Kind, term *reference.Term) error {
	if _, exists := r.terms[kind][term.Slug]; exists {
		return apperr.Conflict("Resource already exists")
	}
	copied := *term
	r.terms[kind][term.Slug] = &copied
	return nil
}

func (r *fakeRepository) DeleteBySlug(_ context.Context, kind reference.Kind, slug string) error {
	delete(r.terms[kind], slug)
	return nil
}

func newTestService(repo *fakeRepository) *reference.Service {
	return reference.NewService(repo, slog.Default())
}

// # Term Creation

func TestService_CreateTerm_DerivesSlugFromName(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	term, err := service.CreateTerm(context.Background(), reference.KindCategory, reference.CreateTermInput{
		Name: "Science Fiction",
	})

	require.NoError(t, err)
	assert.Equal(t, "science-fiction", term.Slug)
	assert.NotEmpty(t, term.ID)
}

func TestService_CreateTerm_ExplicitSlugWins(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	term, err := service.CreateTerm(context.Background(), reference.KindGenre, reference.CreateTermInput{
		Name: "Science Fiction",
		Slug: "sci-fi",
	})

	require.NoError(t, err)
	assert.Equal(t, "sci-fi", term.Slug)
}

func TestService_CreateTerm_RejectsBadSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreateTerm(context.Background(), reference.KindGenre, reference.CreateTermInput{
		Name: "Drama",
		Slug: "Not A Slug!",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_CreateTerm_RequiresName(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreateTerm(context.Background(), reference.KindCategory, reference.CreateTermInput{})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_CreateTerm_DuplicateSlugConflicts(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreateTerm(context.Background(), reference.KindCategory, reference.CreateTermInput{Name: "Movies"})
	require.NoError(t, err)

	_, err = service.CreateTerm(context.Background(), reference.KindCategory, reference.CreateTermInput{Name: "Movies"})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)
}

func TestService_CreateTerm_VocabulariesAreIndependent(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreateTerm(context.Background(), reference.KindCategory, reference.CreateTermInput{Name: "Drama"})
	require.NoError(t, err)

	// The same slug in the other vocabulary is not a collision.
	_, err = service.CreateTerm(context.Background(), reference.KindGenre, reference.CreateTermInput{Name: "Drama"})
	assert.NoError(t, err)
}

// # Term Deletion

func TestService_DeleteTerm_UnknownSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	err := service.DeleteTerm(context.Background(), reference.KindGenre, "ghost")

	assert.True(t, apperr.IsNotFound(err))
}

func TestService_DeleteTerm_RemovesTerm(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	term, err := service.CreateTerm(context.Background(), reference.KindGenre, reference.CreateTermInput{Name: "Drama"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteTerm(context.Background(), reference.KindGenre, term.Slug))

	_, _, err = service.ListTerms(context.Background(), reference.KindGenre, "", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	_, findErr := repo.FindBySlug(context.Background(), reference.KindGenre, term.Slug)
	assert.True(t, apperr.IsNotFound(findErr))
}
