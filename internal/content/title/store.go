// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/taibuivan/critica/pkg/pagination"
)

// # Repository Contract

// Repository abstracts persistence for catalogue titles.
type Repository interface {
	// List returns a filtered page of titles ordered by name, with category,
	// genres, and rating hydrated, plus the total count.
	List(ctx context.Context, filter Filter, page pagination.Params) ([]Title, int, error)

	// FindByID loads a single title with category and genres hydrated.
	// The rating is left nil; callers resolve it through the rating cache.
	FindByID(ctx context.Context, id string) (*Title, error)

	// Create persists a title and its genre links. Category and Genres must
	// carry resolved term IDs.
	Create(ctx context.Context, title *Title) error

	// Update persists a title's fields and rewrites its genre links.
	Update(ctx context.Context, title *Title) error

	// Delete removes a title. Its reviews and genre links are removed by
	// cascade rules.
	Delete(ctx context.Context, id string) error

	// AverageScore computes the rounded review score average for a title,
	// or nil when it has no reviews.
	AverageScore(ctx context.Context, titleID string) (*int, error)
}

// # Rating Cache Contract

// RatingCache abstracts the volatile per-title rating store.
type RatingCache interface {
	// Get returns the cached rating and whether a cache entry was present.
	Get(ctx context.Context, titleID string) (*int, bool, error)

	// Set stores a computed rating for a title.
	Set(ctx context.Context, titleID string, rating int) error

	// Invalidate drops the cached rating after a review mutation.
	Invalidate(ctx context.Context, titleID string) error
}
