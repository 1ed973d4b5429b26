// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
	"github.com/AliceG32/project-frontend-movies/internal/platform/dberr"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// # Movie Repository

// MovieRepository implements [store.MovieRepository] using pgx.
type MovieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository creates a new PostgreSQL implementation of the MovieRepository.
func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

/*
List returns one ordered page of movies and the exact total.

Parameters:
  - context: context.Context
  - order: store.Order
  - page: store.Page

Returns:
  - []store.Movie: Page rows
  - int: Total row count
  - error: Database execution errors
*/
func (repository *MovieRepository) List(context context.Context, order store.Order, page store.Page) ([]store.Movie, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s m`, movieColumns("m"), schema.Movies.Table) +
		orderClause("m", order) + ` OFFSET $1 LIMIT $2`

	movies, total, err := repository.queryPage(context, query, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_movie_repo_list_failed")
	}

	// Past the last page the window function yields no row to read the total from.
	if len(movies) == 0 && page.Offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Movies.Table)
		if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_movie_repo_count_failed")
		}
	}

	return movies, total, nil
}

func (repository *MovieRepository) queryPage(context context.Context, query string, args ...any) ([]store.Movie, int, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	movies := []store.Movie{}
	total := 0
	for rows.Next() {
		movie, err := scanMovie(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		movies = append(movies, movie)
	}
	return movies, total, rows.Err()
}

/*
Search calls the ranked full-text search function.

Parameters:
  - context: context.Context
  - text: string (Committed search term)
  - page: store.Page

Returns:
  - []store.RankedMovie: Rows ordered by rank
  - error: Function execution errors
*/
func (repository *MovieRepository) Search(context context.Context, text string, page store.Page) ([]store.RankedMovie, error) {
	query := fmt.Sprintf(`SELECT %s, s.%s FROM %s($1, $2, $3) s`, movieColumns("s"), schema.ColumnRank, schema.RPCSearchMovies)

	rows, err := repository.pool.Query(context, query, text, page.Offset, page.Limit)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_movie_repo_search_failed")
	}
	defer rows.Close()

	ranked := []store.RankedMovie{}
	for rows.Next() {
		var rank float32
		movie, err := scanMovie(rows, &rank)
		if err != nil {
			return nil, dberr.Wrap(err, "postgres_movie_repo_search_scan_failed")
		}
		ranked = append(ranked, store.RankedMovie{Movie: movie, Rank: float64(rank)})
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_movie_repo_search_failed")
	}
	return ranked, nil
}

// SearchCount calls the ranked search count function.
func (repository *MovieRepository) SearchCount(context context.Context, text string) (int, error) {
	query := fmt.Sprintf(`SELECT %s($1)`, schema.RPCSearchMoviesCount)

	var count int64
	if err := repository.pool.QueryRow(context, query, text).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "postgres_movie_repo_search_count_failed")
	}
	return int(count), nil
}

// SearchByTitle pages case-insensitive title matches with their exact total.
func (repository *MovieRepository) SearchByTitle(context context.Context, text string, order store.Order, page store.Page) ([]store.Movie, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s m WHERE m.%s ILIKE $1`,
		movieColumns("m"), schema.Movies.Table, schema.Movies.Title) +
		orderClause("m", order) + ` OFFSET $2 LIMIT $3`

	movies, total, err := repository.queryPage(context, query, likePattern(text), page.Offset, page.Limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_movie_repo_search_title_failed")
	}

	if len(movies) == 0 && page.Offset > 0 {
		if total, err = repository.CountByTitle(context, text); err != nil {
			return nil, 0, err
		}
	}
	return movies, total, nil
}

// CountByTitle counts case-insensitive title matches.
func (repository *MovieRepository) CountByTitle(context context.Context, text string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s ILIKE $1`, schema.Movies.Table, schema.Movies.Title)

	var count int
	if err := repository.pool.QueryRow(context, query, likePattern(text)).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "postgres_movie_repo_count_title_failed")
	}
	return count, nil
}

// FindByID returns one movie or apperr.NotFound.
func (repository *MovieRepository) FindByID(context context.Context, id string) (*store.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s m WHERE m.%s = $1`, movieColumns("m"), schema.Movies.Table, schema.Movies.ID)

	movie, err := scanMovie(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, wrapRow(err, "postgres_movie_repo_find_failed", "Movie")
	}
	return &movie, nil
}

// FindByIDs returns the movies with the given ids, ordered when order is set.
func (repository *MovieRepository) FindByIDs(context context.Context, ids []string, order *store.Order) ([]store.Movie, error) {
	if len(ids) == 0 {
		return []store.Movie{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s m WHERE m.%s = ANY($1::uuid[])`, movieColumns("m"), schema.Movies.Table, schema.Movies.ID)
	if order != nil {
		query += orderClause("m", *order)
	}

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_movie_repo_find_many_failed")
	}
	defer rows.Close()

	movies := make([]store.Movie, 0, len(ids))
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "postgres_movie_repo_find_many_scan_failed")
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_movie_repo_find_many_failed")
	}
	return movies, nil
}

/*
Create inserts a movie row and returns it as stored.

Parameters:
  - context: context.Context
  - input: store.MovieInput (validated before the insert)

Returns:
  - *store.Movie: Stored row
  - error: Validation, constraint or connectivity errors
*/
func (repository *MovieRepository) Create(context context.Context, input store.MovieInput) (*store.Movie, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s AS m (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.Movies.Table,
		schema.Movies.Title,
		schema.Movies.ReleaseYear,
		schema.Movies.DurationMinutes,
		schema.Movies.Description,
		schema.Movies.Rating,
		schema.Movies.Subtitles,
		movieColumns("m"),
	)

	movie, err := scanMovie(repository.pool.QueryRow(context, query,
		input.Title,
		input.ReleaseYear,
		input.DurationMinutes,
		input.Description,
		input.Rating,
		input.Subtitles,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_movie_repo_create_failed")
	}
	return &movie, nil
}

// Update writes only the changed columns and bumps updated_at.
func (repository *MovieRepository) Update(context context.Context, id string, patch store.MoviePatch) (*store.Movie, error) {
	columns := patch.Columns()
	if len(columns) == 0 {
		return repository.FindByID(context, id)
	}

	var assignments []string
	var args []any
	argID := 1
	for _, column := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column.Column, argID))
		args = append(args, column.Value)
		argID++
	}
	assignments = append(assignments, fmt.Sprintf("%s = now()", schema.Movies.UpdatedAt))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s AS m SET %s WHERE m.%s = $%d RETURNING %s`,
		schema.Movies.Table, strings.Join(assignments, ", "), schema.Movies.ID, argID, movieColumns("m"))

	movie, err := scanMovie(repository.pool.QueryRow(context, query, args...))
	if err != nil {
		return nil, wrapRow(err, "postgres_movie_repo_update_failed", "Movie")
	}
	return &movie, nil
}

// Delete removes the movie row only.
func (repository *MovieRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Movies.Table, schema.Movies.ID)
	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "postgres_movie_repo_delete_failed")
	}
	return nil
}
