// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/critica/internal/content/reference"
	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/platform/dberr"
	"github.com/taibuivan/critica/pkg/pagination"
	"github.com/taibuivan/critica/pkg/slice"
)

// # Title Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// listFilterClause is shared between the page query and the count query so
// the two can never disagree.
const listFilterClause = `
	WHERE ($1 = '' OR c.slug = $1)
	  AND ($2 = '' OR EXISTS (
			SELECT 1 FROM content.titlegenre tg
			JOIN content.genre g ON g.id = tg.genreid
			WHERE tg.titleid = t.id AND g.slug = $2))
	  AND ($3 = '' OR t.name ILIKE '%' || $3 || '%')
	  AND ($4 = 0 OR t.year = $4)`

/*
List returns a filtered page of titles ordered by name.

Description: Category and rating are hydrated in the page query; genres are
loaded with one follow-up query for the whole page to avoid per-row fan-out.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []Title: The requested page
  - int: Total matches
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]Title, int, error) {
	const query = `
		SELECT t.id, t.name, t.year, t.description,
		       c.id, c.name, c.slug,
		       r.rating,
		       t.createdat, t.updatedat
		FROM content.title t
		LEFT JOIN content.category c ON c.id = t.categoryid
		LEFT JOIN LATERAL (
			SELECT ROUND(AVG(score))::int AS rating
			FROM content.review
			WHERE titleid = t.id
		) r ON TRUE` + listFilterClause + `
		ORDER BY t.name
		LIMIT $5 OFFSET $6`

	rows, err := repository.pool.Query(context, query,
		filter.CategorySlug, filter.GenreSlug, filter.Name, filter.Year,
		page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_title_repo_list_failed: %w", err)
	}
	defer rows.Close()

	titles := make([]Title, 0, page.Limit)
	for rows.Next() {
		var title Title
		var categoryID, categoryName, categorySlug *string

		err := rows.Scan(
			&title.ID, &title.Name, &title.Year, &title.Description,
			&categoryID, &categoryName, &categorySlug,
			&title.Rating,
			&title.CreatedAt, &title.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_title_repo_list_scan_failed: %w", err)
		}

		if categoryID != nil {
			title.Category = &reference.Term{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
		}
		title.Genres = []reference.Term{}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_title_repo_list_rows_failed: %w", err)
	}

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	const countQuery = `
		SELECT COUNT(*)
		FROM content.title t
		LEFT JOIN content.category c ON c.id = t.categoryid` + listFilterClause

	var total int
	err = repository.pool.QueryRow(context, countQuery,
		filter.CategorySlug, filter.GenreSlug, filter.Name, filter.Year,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_title_repo_count_failed: %w", err)
	}

	return titles, total, nil
}

// attachGenres hydrates the Genres slice for every title in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := slice.Map(titles, func(entry Title) string { return entry.ID })
	index := make(map[string]*Title, len(titles))
	for i := range titles {
		index[titles[i].ID] = &titles[i]
	}

	const query = `
		SELECT tg.titleid, g.id, g.name, g.slug
		FROM content.titlegenre tg
		JOIN content.genre g ON g.id = tg.genreid
		WHERE tg.titleid = ANY($1)
		ORDER BY g.name`

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_genres_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID string
		var genre reference.Term
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			return fmt.Errorf("postgres_title_repo_genres_scan_failed: %w", err)
		}
		if title, ok := index[titleID]; ok {
			title.Genres = append(title.Genres, genre)
		}
	}

	return rows.Err()
}

/*
FindByID loads a single title with category and genres hydrated.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Title: Hydrated title, Rating left nil
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Title, error) {
	const query = `
		SELECT t.id, t.name, t.year, t.description,
		       c.id, c.name, c.slug,
		       t.createdat, t.updatedat
		FROM content.title t
		LEFT JOIN content.category c ON c.id = t.categoryid
		WHERE t.id = $1`

	title := &Title{}
	var categoryID, categoryName, categorySlug *string

	err := repository.pool.QueryRow(context, query, id).Scan(
		&title.ID, &title.Name, &title.Year, &title.Description,
		&categoryID, &categoryName, &categorySlug,
		&title.CreatedAt, &title.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, fmt.Errorf("postgres_title_repo_find_by_id_failed: %w", err)
	}

	if categoryID != nil {
		title.Category = &reference.Term{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}

	titles := []Title{*title}
	if err := repository.attachGenres(context, titles); err != nil {
		return nil, err
	}

	return &titles[0], nil
}

/*
Create persists a title and its genre links.

Parameters:
  - context: context.Context
  - title: *Title (Category and Genres carry resolved term IDs)

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	now := time.Now()
	if title.CreatedAt.IsZero() {
		title.CreatedAt = now
	}
	title.UpdatedAt = now

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_create_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const query = `
		INSERT INTO content.title (id, name, year, description, categoryid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var categoryID *string
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	_, err = transaction.Exec(context, query,
		title.ID, title.Name, title.Year, title.Description, categoryID,
		title.CreatedAt, title.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_title_repo_create")
	}

	if err := insertGenreLinks(context, transaction, title.ID, title.Genres); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_title_repo_create_commit_failed: %w", err)
	}

	return nil
}

/*
Update persists a title's fields and rewrites its genre links.

Parameters:
  - context: context.Context
  - title: *Title

Returns:
  - error: Constraint violations or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, title *Title) error {
	title.UpdatedAt = time.Now()

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_update_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const query = `
		UPDATE content.title
		SET name = $2, year = $3, description = $4, categoryid = $5, updatedat = $6
		WHERE id = $1`

	var categoryID *string
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	_, err = transaction.Exec(context, query,
		title.ID, title.Name, title.Year, title.Description, categoryID, title.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_title_repo_update")
	}

	if _, err := transaction.Exec(context, "DELETE FROM content.titlegenre WHERE titleid = $1", title.ID); err != nil {
		return fmt.Errorf("postgres_title_repo_update_unlink_failed: %w", err)
	}

	if err := insertGenreLinks(context, transaction, title.ID, title.Genres); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_title_repo_update_commit_failed: %w", err)
	}

	return nil
}

func insertGenreLinks(context context.Context, transaction pgx.Tx, titleID string, genres []reference.Term) error {
	for _, genre := range genres {
		const query = "INSERT INTO content.titlegenre (titleid, genreid) VALUES ($1, $2)"
		if _, err := transaction.Exec(context, query, titleID, genre.ID); err != nil {
			return dberr.Wrap(err, "postgres_title_repo_link_genre")
		}
	}
	return nil
}

/*
Delete removes a title permanently.

Description: Reviews, comments, and genre links under the title are removed
through ON DELETE CASCADE foreign keys.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM content.title WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_delete_failed: %w", err)
	}
	return nil
}

/*
AverageScore computes the rounded review score average for a title.

Parameters:
  - context: context.Context
  - titleID: string

Returns:
  - *int: Rounded average, nil when the title has no reviews
  - error: Execution errors
*/
func (repository *PostgresRepository) AverageScore(context context.Context, titleID string) (*int, error) {
	const query = `
		SELECT ROUND(AVG(score))::int
		FROM content.review
		WHERE titleid = $1`

	var rating *int
	if err := repository.pool.QueryRow(context, query, titleID).Scan(&rating); err != nil {
		return nil, fmt.Errorf("postgres_title_repo_average_score_failed: %w", err)
	}

	return rating, nil
}
