// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critica/internal/content/reference"
	"github.com/taibuivan/critica/internal/content/title"
	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/pkg/pagination"
	"github.com/taibuivan/critica/pkg/pointer"
)

// # Test Doubles

type fakeRepository struct {
	titles map[string]*title.Title
	scores map[string][]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		titles: make(map[string]*title.Title),
		scores: make(map[string][]int),
	}
}

func (r *fakeRepository) List(_ context.Context, filter title.Filter, page pagination.Params) ([]title.Title, int, error) {
	matches := make([]title.Title, 0)
	for _, entry := range r.titles {
		if filter.Year != 0 && entry.Year != filter.Year {
			continue
		}
		matches = append(matches, *entry)
	}
	return matches, len(matches), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*title.Title, error) {
	entry, ok := r.titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	copied := *entry
	copied.Rating = nil
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, entry *title.Title) error {
	copied := *entry
	r.titles[entry.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, entry *title.Title) error {
	if _, ok := r.titles[entry.ID]; !ok {
		return apperr.NotFound("Title")
	}
	copied := *entry
	r.titles[entry.ID] = &copied
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	delete(r.titles, id)
	return nil
}

func (r *fakeRepository) AverageScore(_ context.Context, titleID string) (*int, error) {
	scores := r.scores[titleID]
	if len(scores) == 0 {
		return nil, nil
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := (sum + len(scores)/2) / len(scores)
	return &avg, nil
}

type fakeTermRepository struct {
	terms map[reference.Kind]map[string]*reference.Term
}

func newFakeTermRepository() *fakeTermRepository {
	return &fakeTermRepository{
		terms: map[reference.Kind]map[string]*reference.Term{
			reference.KindCategory: {},
			reference.KindGenre:    {},
		},
	}
}

func (r *fakeTermRepository) seed(kind reference.Kind, name, slug string) {
	r.terms[kind][slug] = &reference.Term{ID: "id-" + slug, Name: name, Slug: slug}
}

func (r *fakeTermRepository) List(_ context.Context, kind reference.Kind, _ string, _ pagination.Params) ([]reference.Term, int, error) {
	return nil, 0, nil
}

func (r *fakeTermRepository) FindBySlug(_ context.Context, kind reference.Kind, slug string) (*reference.Term, error) {
	term, ok := r.terms[kind][slug]
	if !ok {
		return nil, apperr.NotFound("Term")
	}
	copied := *term
	return &copied, nil
}

func (r *fakeTermRepository) Create(_ context.Context, kind reference.Kind, term *reference.Term) error {
	r.terms[kind][term.Slug] = term
	return nil
}

func (r *fakeTermRepository) DeleteBySlug(_ context.Context, kind reference.Kind, slug string) error {
	delete(r.terms[kind], slug)
	return nil
}

type fakeRatingCache struct {
	entries     map[string]int
	invalidated []string
}

func newFakeRatingCache() *fakeRatingCache {
	return &fakeRatingCache{entries: make(map[string]int)}
}

func (c *fakeRatingCache) Get(_ context.Context, titleID string) (*int, bool, error) {
	rating, ok := c.entries[titleID]
	if !ok {
		return nil, false, nil
	}
	return &rating, true, nil
}

func (c *fakeRatingCache) Set(_ context.Context, titleID string, rating int) error {
	c.entries[titleID] = rating
	return nil
}

func (c *fakeRatingCache) Invalidate(_ context.Context, titleID string) error {
	delete(c.entries, titleID)
	c.invalidated = append(c.invalidated, titleID)
	return nil
}

type serviceFixture struct {
	repo    *fakeRepository
	terms   *fakeTermRepository
	cache   *fakeRatingCache
	service *title.Service
}

func newFixture() *serviceFixture {
	repo := newFakeRepository()
	terms := newFakeTermRepository()
	cache := newFakeRatingCache()
	terms.seed(reference.KindCategory, "Movies", "movies")
	terms.seed(reference.KindGenre, "Drama", "drama")
	terms.seed(reference.KindGenre, "Noir", "noir")

	return &serviceFixture{
		repo:    repo,
		terms:   terms,
		cache:   cache,
		service: title.NewService(repo, terms, cache, slog.Default()),
	}
}

// # Catalogue Management

func TestService_CreateTitle_ResolvesTaxonomy(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "noir"},
	})

	require.NoError(t, err)
	require.NotNil(t, created.Category)
	assert.Equal(t, "movies", created.Category.Slug)
	require.Len(t, created.Genres, 2)
	assert.Equal(t, "drama", created.Genres[0].Slug)
}

func TestService_CreateTitle_UnknownCategorySlug(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "podcasts",
		GenreSlugs:   []string{"drama"},
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, title.FieldCategory, ae.Details[0].Field)
}

func TestService_CreateTitle_UnknownGenreSlug(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
		GenreSlugs:   []string{"western"},
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_CreateTitle_RequiresAtLeastOneGenre(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, title.FieldGenre, ae.Details[0].Field)
}

func TestService_UpdateTitle_RejectsEmptyGenreList(t *testing.T) {
	f := newFixture()
	created, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "noir"},
	})
	require.NoError(t, err)

	_, err = f.service.UpdateTitle(context.Background(), created.ID, title.UpdateTitleInput{
		GenreSlugs: pointer.To([]string{}),
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, title.FieldGenre, ae.Details[0].Field)

	fetched, err := f.service.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Genres, 2)
}

func TestService_CreateTitle_RejectsFutureYear(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Unreleased",
		Year:         time.Now().Year() + 1,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama"},
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_CreateTitle_CurrentYearAllowed(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Just Released",
		Year:         time.Now().Year(),
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama"},
	})

	assert.NoError(t, err)
}

func TestService_UpdateTitle_ReplacesGenres(t *testing.T) {
	f := newFixture()
	created, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "noir"},
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateTitle(context.Background(), created.ID, title.UpdateTitleInput{
		GenreSlugs: pointer.To([]string{"noir"}),
	})

	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "noir", updated.Genres[0].Slug)
	assert.Equal(t, "Chinatown", updated.Name)
}

func TestService_DeleteTitle_DropsCachedRating(t *testing.T) {
	f := newFixture()
	created, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama"},
	})
	require.NoError(t, err)
	require.NoError(t, f.cache.Set(context.Background(), created.ID, 8))

	require.NoError(t, f.service.DeleteTitle(context.Background(), created.ID))

	assert.Contains(t, f.cache.invalidated, created.ID)
}

// # Rating Resolution

func TestService_GetTitle_RatingFromCache(t *testing.T) {
	f := newFixture()
	created, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama"},
	})
	require.NoError(t, err)
	require.NoError(t, f.cache.Set(context.Background(), created.ID, 9))

	// Storage disagrees on purpose; the cache must win.
	f.repo.scores[created.ID] = []int{1}

	fetched, err := f.service.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Rating)
	assert.Equal(t, 9, *fetched.Rating)
}

func TestService_GetTitle_RatingComputedAndCachedOnMiss(t *testing.T) {
	f := newFixture()
	created, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama"},
	})
	require.NoError(t, err)
	f.repo.scores[created.ID] = []int{7, 8}

	fetched, err := f.service.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Rating)
	assert.Equal(t, 8, *fetched.Rating)

	cached, hit, err := f.cache.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 8, *cached)
}

func TestService_GetTitle_NoReviewsNilRating(t *testing.T) {
	f := newFixture()
	created, err := f.service.CreateTitle(context.Background(), title.CreateTitleInput{
		Name:         "Chinatown",
		Year:         1974,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama"},
	})
	require.NoError(t, err)

	fetched, err := f.service.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Rating)
}

func TestService_GetTitle_Unknown(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetTitle(context.Background(), "does-not-exist")

	assert.True(t, apperr.IsNotFound(err))
}
