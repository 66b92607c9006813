// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/critica/internal/content/reference"
	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/platform/validate"
	"github.com/taibuivan/critica/pkg/pagination"
	"github.com/taibuivan/critica/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the title catalogue.
type Service struct {
	repo        Repository
	terms       reference.Repository
	ratingCache RatingCache
	logger      *slog.Logger
}

// NewService constructs a new title [Service].
func NewService(repo Repository, terms reference.Repository, ratingCache RatingCache, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		terms:       terms,
		ratingCache: ratingCache,
		logger:      logger,
	}
}

// # Catalogue Browsing

/*
ListTitles retrieves a paginated and filtered page of the catalogue.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []Title: List of titles with taxonomy and rating hydrated
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListTitles(context context.Context, filter Filter, page pagination.Params) ([]Title, int, error) {
	return service.repo.List(context, filter, page)
}

/*
GetTitle retrieves a single title with its rating resolved.

Description: The rating is served from the Redis cache when present;
otherwise it is recomputed from review storage and cached for subsequent
reads. Cache failures degrade to a recompute, never to an error.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Title: Hydrated title
  - error: NotFound or retrieval errors
*/
func (service *Service) GetTitle(context context.Context, id string) (*Title, error) {
	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	title.Rating = service.resolveRating(context, id)

	return title, nil
}

// resolveRating reads the cached rating or recomputes and caches it.
func (service *Service) resolveRating(context context.Context, titleID string) *int {
	rating, hit, err := service.ratingCache.Get(context, titleID)
	if err != nil {
		service.logger.WarnContext(context, "title_rating_cache_read_failed",
			slog.String("title_id", titleID),
			slog.String("error", err.Error()),
		)
	} else if hit {
		return rating
	}

	rating, err = service.repo.AverageScore(context, titleID)
	if err != nil {
		service.logger.WarnContext(context, "title_rating_compute_failed",
			slog.String("title_id", titleID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if rating != nil {
		if err := service.ratingCache.Set(context, titleID, *rating); err != nil {
			service.logger.WarnContext(context, "title_rating_cache_write_failed",
				slog.String("title_id", titleID),
				slog.String("error", err.Error()),
			)
		}
	}

	return rating
}

// # Catalogue Management

// CreateTitleInput holds the data for a new catalogue entry.
type CreateTitleInput struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug string
	GenreSlugs   []string
}

/*
CreateTitle adds a new work to the catalogue.

Description: Taxonomy references are provided as slugs and resolved against
the reference vocabularies; an unknown slug is a validation failure, not a
silent skip. The publication year may not lie in the future.

Parameters:
  - context: context.Context
  - input: CreateTitleInput

Returns:
  - *Title: The created title
  - error: Validation or persistence failures
*/
func (service *Service) CreateTitle(context context.Context, input CreateTitleInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Custom(FieldYear, input.Year == 0, "Year is required").
		YearNotFuture(FieldYear, input.Year).
		Required(FieldCategory, input.CategorySlug).
		Custom(FieldGenre, len(input.GenreSlugs) == 0, "At least one genre is required")

	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, MaxDescriptionLength)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	category, genres, err := service.resolveTaxonomy(context, input.CategorySlug, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	title := &Title{
		ID:          uuid.New(),
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    category,
		Genres:      genres,
	}

	if err := service.repo.Create(context, title); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.String("title_id", title.ID),
		slog.String("name", title.Name),
	)

	return title, nil
}

// UpdateTitleInput defines the mutable fields of a title. Nil fields are left
// unchanged.
type UpdateTitleInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

/*
UpdateTitle applies a partial set of changes to a catalogue entry.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - input: UpdateTitleInput

Returns:
  - *Title: The updated title
  - error: NotFound, validation, or persistence failures
*/
func (service *Service) UpdateTitle(context context.Context, id string, input UpdateTitleInput) (*Title, error) {
	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, MaxNameLength)
	}
	if input.Year != nil {
		validator.YearNotFuture(FieldYear, *input.Year)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, MaxDescriptionLength)
	}
	if input.GenreSlugs != nil {
		validator.Custom(FieldGenre, len(*input.GenreSlugs) == 0, "At least one genre is required")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}
	if input.CategorySlug != nil {
		category, err := service.terms.FindBySlug(context, reference.KindCategory, *input.CategorySlug)
		if err != nil {
			return nil, unknownTermError(FieldCategory, *input.CategorySlug, err)
		}
		title.Category = category
	}
	if input.GenreSlugs != nil {
		genres, err := service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	// Persist changes
	if err := service.repo.Update(context, title); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.String("title_id", title.ID))

	title.Rating = service.resolveRating(context, title.ID)

	return title, nil
}

/*
DeleteTitle removes a work from the catalogue.

Description: Reviews under the title disappear with it, so the cached rating
is dropped as well.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: NotFound or persistence failures
*/
func (service *Service) DeleteTitle(context context.Context, id string) error {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	if err := service.ratingCache.Invalidate(context, id); err != nil {
		service.logger.WarnContext(context, "title_rating_cache_invalidate_failed",
			slog.String("title_id", id),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("title_deleted", slog.String("title_id", id))

	return nil
}

// # Taxonomy Resolution

func (service *Service) resolveTaxonomy(context context.Context, categorySlug string, genreSlugs []string) (*reference.Term, []reference.Term, error) {
	category, err := service.terms.FindBySlug(context, reference.KindCategory, categorySlug)
	if err != nil {
		return nil, nil, unknownTermError(FieldCategory, categorySlug, err)
	}

	genres, err := service.resolveGenres(context, genreSlugs)
	if err != nil {
		return nil, nil, err
	}

	return category, genres, nil
}

func (service *Service) resolveGenres(context context.Context, slugs []string) ([]reference.Term, error) {
	genres := make([]reference.Term, 0, len(slugs))
	for _, slugValue := range slugs {
		genre, err := service.terms.FindBySlug(context, reference.KindGenre, slugValue)
		if err != nil {
			return nil, unknownTermError(FieldGenre, slugValue, err)
		}
		genres = append(genres, *genre)
	}
	return genres, nil
}

// unknownTermError maps a missing taxonomy term on a write path to a field
// validation failure rather than a 404.
func unknownTermError(field, slugValue string, err error) error {
	if apperr.IsNotFound(err) {
		return apperr.ValidationError("Unknown taxonomy reference", apperr.FieldError{
			Field:   field,
			Message: fmt.Sprintf("No %s exists with slug %q", field, slugValue),
		})
	}
	return err
}
