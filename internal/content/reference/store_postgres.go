// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

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

// # Reference Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// tableFor resolves the backing table for a vocabulary. Both tables share the
// same column shape.
func tableFor(kind Kind) string {
	if kind == KindGenre {
		return "content.genre"
	}
	return "content.category"
}

/*
List returns a page of terms ordered by name.

Parameters:
  - context: context.Context
  - kind: Kind
  - search: string
  - page: pagination.Params

Returns:
  - []Term: The requested page
  - int: Total matches
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, kind Kind, search string, page pagination.Params) ([]Term, int, error) {
	query := `
		SELECT id, name, slug, createdat
		FROM ` + tableFor(kind) + `
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, search, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_reference_repo_list_failed: %w", err)
	}
	defer rows.Close()

	terms := make([]Term, 0, page.Limit)
	for rows.Next() {
		var term Term
		if err := rows.Scan(&term.ID, &term.Name, &term.Slug, &term.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres_reference_repo_list_scan_failed: %w", err)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_reference_repo_list_rows_failed: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM ` + tableFor(kind) + `
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_reference_repo_count_failed: %w", err)
	}

	return terms, total, nil
}

/*
FindBySlug loads a single term by its slug.

Parameters:
  - context: context.Context
  - kind: Kind
  - slug: string

Returns:
  - *Term: Hydrated term
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, kind Kind, slug string) (*Term, error) {
	query := `
		SELECT id, name, slug, createdat
		FROM ` + tableFor(kind) + `
		WHERE slug = $1`

	term := &Term{}
	err := repository.pool.QueryRow(context, query, slug).Scan(&term.ID, &term.Name, &term.Slug, &term.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if kind == KindGenre {
				return nil, apperr.NotFound("Genre")
			}
			return nil, apperr.NotFound("Category")
		}
		return nil, fmt.Errorf("postgres_reference_repo_find_by_slug_failed: %w", err)
	}

	return term, nil
}

/*
Create persists a new term.

Parameters:
  - context: context.Context
  - kind: Kind
  - term: *Term

Returns:
  - error: Conflict (duplicate slug) or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, kind Kind, term *Term) error {
	query := `
		INSERT INTO ` + tableFor(kind) + ` (id, name, slug, createdat)
		VALUES ($1, $2, $3, $4)`

	if term.CreatedAt.IsZero() {
		term.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query, term.ID, term.Name, term.Slug, term.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_reference_repo_create")
	}

	return nil
}

/*
DeleteBySlug removes a term by its slug.

Description: Titles referencing a deleted category keep existing with a null
category; genre links are removed through the join table's cascade rule.

Parameters:
  - context: context.Context
  - kind: Kind
  - slug: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) DeleteBySlug(context context.Context, kind Kind, slug string) error {
	query := `DELETE FROM ` + tableFor(kind) + ` WHERE slug = $1`

	_, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		return fmt.Errorf("postgres_reference_repo_delete_failed: %w", err)
	}

	return nil
}
