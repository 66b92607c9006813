// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the Critica catalogue of reviewable works.

A [Title] is the central entity users write reviews against. Each title
belongs to at most one category, carries any number of genres, and exposes a
derived rating aggregated from its review scores.

# Core Responsibility

  - Catalogue: CRUD over titles with taxonomy links (admin-gated writes).
  - Discovery: Filtered, paginated listing by category, genre, name, and year.
  - Rating: Serves the averaged review score, cached in Redis per title.

Titles are never authored content: there is no owner, and deleting one
cascades to its reviews.
*/
package title

import (
	"time"

	"github.com/taibuivan/critica/internal/content/reference"
)

// # Core Entities

// Title represents a single reviewable work in the catalogue.
type Title struct {
	ID          string  `json:"id"` // UUIDv7
	Name        string  `json:"name"`
	Year        int     `json:"year"`
	Description *string `json:"description,omitempty"`

	// Category is nil when the title's category was deleted or never set.
	Category *reference.Term  `json:"category"`
	Genres   []reference.Term `json:"genre"`

	// Rating is the review score average rounded to the nearest integer,
	// or nil when the title has no reviews yet.
	Rating *int `json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Search & Filtering

// Filter holds parameters for browsing the catalogue. Zero values mean
// "not filtered".
type Filter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)

// # Input Limits

const (
	MaxNameLength        = 256
	MaxDescriptionLength = 4000
)
