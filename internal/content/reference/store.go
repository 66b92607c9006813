// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"

	"github.com/taibuivan/critica/pkg/pagination"
)

// # Repository Contract

/*
Repository abstracts persistence for taxonomy vocabularies.

Every method takes the [Kind] discriminator; implementations route it to the
backing table for that vocabulary.
*/
type Repository interface {
	// List returns a page of terms ordered by name, optionally filtered by
	// a case-insensitive name substring search, plus the total count.
	List(ctx context.Context, kind Kind, search string, page pagination.Params) ([]Term, int, error)

	// FindBySlug loads a single term by its slug.
	FindBySlug(ctx context.Context, kind Kind, slug string) (*Term, error)

	// Create persists a new term. A duplicate slug surfaces as a conflict.
	Create(ctx context.Context, kind Kind, term *Term) error

	// DeleteBySlug removes a term. Implementations report how catalogue
	// titles referencing the term are treated (detach for genres, null out
	// for categories).
	DeleteBySlug(ctx context.Context, kind Kind, slug string) error
}
