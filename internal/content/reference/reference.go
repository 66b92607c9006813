// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the taxonomic foundations of the Critica catalogue.

It handles the two classification vocabularies every title is described with:

  - Category: The single work type of a title (e.g. "Movies", "Books").
  - Genre: Free-form thematic labels, many per title (e.g. "Drama", "Noir").

Both vocabularies share one entity shape (a display name plus a URL-safe slug)
and one access model: anyone may browse them, only administrators may change
them.

This package provides the "Common Language" used by the catalogue to
categorize content.
*/
package reference

import "time"

// # Vocabulary Kinds

// Kind discriminates which taxonomy vocabulary a term belongs to.
type Kind string

const (
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
)

// # Core Entities

// Term is a single entry in a taxonomy vocabulary.
//
// Terms are addressed externally by slug, never by ID; the slug doubles as
// the stable public identifier.
type Term struct {
	ID        string    `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldName   = "name"
	FieldSlug   = "slug"
	fieldSearch = "search"
)

// # Input Limits

const (
	MaxNameLength = 256
	MaxSlugLength = 50
)
