// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgres implements the remote store contract directly on PostgreSQL.

It uses the pgxpool connection manager and the schema applied by the
migrations, including the authenticate_user, search_movies and
search_movies_count SQL functions.

  - Window Function: page queries use COUNT(*) OVER() for the exact total.
  - Batched Counts: comment counts are a single GROUP BY over the page ids.
  - Error Mapping: driver errors go through [dberr.Wrap].
*/
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
	"github.com/AliceG32/project-frontend-movies/internal/platform/dberr"
	pgpool "github.com/AliceG32/project-frontend-movies/internal/platform/postgres"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// NewBackend wires every repository over one pool.
func NewBackend(pool *pgxpool.Pool) store.Backend {
	return store.Backend{
		Movies:    NewMovieRepository(pool),
		Favorites: NewFavoriteRepository(pool),
		Comments:  NewCommentRepository(pool),
		Auth:      NewAuthenticator(pool),
		Ping: func(context context.Context) error {
			return pgpool.Ping(context, pool)
		},
	}
}

// # Query Helpers

// movieColumns renders the qualified movie column list in scan order.
func movieColumns(alias string) string {
	columns := schema.Movies.Columns()
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

// orderClause renders ORDER BY for a validated sort field.
func orderClause(alias string, order store.Order) string {
	direction := "DESC"
	if order.Ascending() {
		direction = "ASC"
	}
	field := store.ParseSortField(string(order.Field))
	return fmt.Sprintf(" ORDER BY %s.%s %s, %s.%s ASC", alias, field, direction, alias, schema.Movies.ID)
}

// scanMovie reads one row in [schema.MoviesTable.Columns] order plus any extra targets.
func scanMovie(row pgx.Row, extra ...any) (store.Movie, error) {
	var movie store.Movie
	targets := append([]any{
		&movie.ID,
		&movie.Title,
		&movie.ReleaseYear,
		&movie.DurationMinutes,
		&movie.Description,
		&movie.Rating,
		&movie.Subtitles,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	}, extra...)
	err := row.Scan(targets...)
	return movie, err
}

// likePattern escapes LIKE wildcards in user input and wraps it for substring matching.
func likePattern(text string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(text)) + "%"
}

// wrapRow maps a single-row miss to NotFound for resource and anything else through dberr.
func wrapRow(err error, action, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return dberr.Wrap(err, action)
}
