// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
	"github.com/AliceG32/project-frontend-movies/internal/platform/dberr"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// # Favorite Repository

// FavoriteRepository implements [store.FavoriteRepository] using pgx.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository creates a new PostgreSQL implementation of the FavoriteRepository.
func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func favoriteColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s",
		schema.Favorites.ID, schema.Favorites.UserID, schema.Favorites.MovieID, schema.Favorites.CreatedAt)
}

// ListByUser returns every mark of the user ordered by created_at.
func (repository *FavoriteRepository) ListByUser(context context.Context, userID string, direction store.SortDirection) ([]store.Favorite, error) {
	sortDirection := "DESC"
	if direction == store.Asc {
		sortDirection = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s %s, %s ASC`,
		favoriteColumns(), schema.Favorites.Table, schema.Favorites.UserID,
		schema.Favorites.CreatedAt, sortDirection, schema.Favorites.ID)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_favorite_repo_list_failed")
	}
	defer rows.Close()

	favorites := []store.Favorite{}
	for rows.Next() {
		var favorite store.Favorite
		if err := rows.Scan(&favorite.ID, &favorite.UserID, &favorite.MovieID, &favorite.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "postgres_favorite_repo_scan_failed")
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_favorite_repo_list_failed")
	}
	return favorites, nil
}

// Exists reports whether the (user, movie) mark is present.
func (repository *FavoriteRepository) Exists(context context.Context, userID, movieID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Favorites.Table, schema.Favorites.UserID, schema.Favorites.MovieID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, movieID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "postgres_favorite_repo_exists_failed")
	}
	return exists, nil
}

// Create inserts a mark. A duplicate surfaces as apperr.Conflict.
func (repository *FavoriteRepository) Create(context context.Context, userID, movieID string) (*store.Favorite, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.Favorites.Table, schema.Favorites.UserID, schema.Favorites.MovieID, favoriteColumns())

	var favorite store.Favorite
	err := repository.pool.QueryRow(context, query, userID, movieID).
		Scan(&favorite.ID, &favorite.UserID, &favorite.MovieID, &favorite.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_favorite_repo_create_failed")
	}
	return &favorite, nil
}

// Delete removes the (user, movie) mark.
func (repository *FavoriteRepository) Delete(context context.Context, userID, movieID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Favorites.Table, schema.Favorites.UserID, schema.Favorites.MovieID)

	if _, err := repository.pool.Exec(context, query, userID, movieID); err != nil {
		return dberr.Wrap(err, "postgres_favorite_repo_delete_failed")
	}
	return nil
}

// DeleteByMovie removes every mark of a movie.
func (repository *FavoriteRepository) DeleteByMovie(context context.Context, movieID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Favorites.Table, schema.Favorites.MovieID)

	if _, err := repository.pool.Exec(context, query, movieID); err != nil {
		return dberr.Wrap(err, "postgres_favorite_repo_delete_by_movie_failed")
	}
	return nil
}

// CountByUser returns the exact number of marks of a user.
func (repository *FavoriteRepository) CountByUser(context context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.Favorites.Table, schema.Favorites.UserID)

	var count int
	if err := repository.pool.QueryRow(context, query, userID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "postgres_favorite_repo_count_failed")
	}
	return count, nil
}
