// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"

	"github.com/taibuivan/critica/internal/platform/validate"
	"github.com/taibuivan/critica/pkg/pagination"
	"github.com/taibuivan/critica/pkg/slug"
	"github.com/taibuivan/critica/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for taxonomy vocabularies.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new reference [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
ListTerms retrieves a paginated, optionally filtered page of a vocabulary.

Parameters:
  - context: context.Context
  - kind: Kind (category or genre)
  - search: string (Optional case-insensitive name substring filter)
  - page: pagination.Params

Returns:
  - []Term: The requested page
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListTerms(context context.Context, kind Kind, search string, page pagination.Params) ([]Term, int, error) {
	return service.repo.List(context, kind, search, page)
}

// CreateTermInput holds the data for a new vocabulary term.
type CreateTermInput struct {
	Name string
	Slug string
}

/*
CreateTerm adds a new term to a vocabulary.

Description: The slug may be supplied explicitly or left blank, in which case
it is derived from the name. Either way the slug must be unique within its
vocabulary; a collision is a conflict, not a silent suffix.

Parameters:
  - context: context.Context
  - kind: Kind
  - input: CreateTermInput

Returns:
  - *Term: The created term
  - error: Validation, conflict, or persistence failures
*/
func (service *Service) CreateTerm(context context.Context, kind Kind, input CreateTermInput) (*Term, error) {
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Required(FieldSlug, input.Slug).
		Slug(FieldSlug, input.Slug).
		MaxLen(FieldSlug, input.Slug, MaxSlugLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	term := &Term{
		ID:   uuid.New(),
		Name: input.Name,
		Slug: input.Slug,
	}

	if err := service.repo.Create(context, kind, term); err != nil {
		return nil, err
	}

	service.logger.Info("taxonomy_term_created",
		slog.String("kind", string(kind)),
		slog.String("slug", term.Slug),
	)

	return term, nil
}

/*
DeleteTerm removes a term from a vocabulary by slug.

Parameters:
  - context: context.Context
  - kind: Kind
  - slugValue: string

Returns:
  - error: NotFound or persistence failures
*/
func (service *Service) DeleteTerm(context context.Context, kind Kind, slugValue string) error {
	if _, err := service.repo.FindBySlug(context, kind, slugValue); err != nil {
		return err
	}

	if err := service.repo.DeleteBySlug(context, kind, slugValue); err != nil {
		return err
	}

	service.logger.Info("taxonomy_term_deleted",
		slog.String("kind", string(kind)),
		slog.String("slug", slugValue),
	)

	return nil
}
