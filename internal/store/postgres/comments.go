// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
	"github.com/AliceG32/project-frontend-movies/internal/platform/dberr"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// # Comment Repository

// CommentRepository implements [store.CommentRepository] using pgx.
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of the CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// commentSelect joins the author name. A deleted author leaves it NULL.
func commentSelect() string {
	return fmt.Sprintf(`SELECT c.%s, c.%s, COALESCE(c.%s::text, ''), c.%s, c.%s, c.%s, COALESCE(u.%s, '')
		FROM %s c LEFT JOIN %s u ON u.%s = c.%s`,
		schema.Comments.ID, schema.Comments.MovieID, schema.Comments.UserID, schema.Comments.Comment,
		schema.Comments.CreatedAt, schema.Comments.UpdatedAt, schema.Users.Name,
		schema.Comments.Table, schema.Users.Table, schema.Users.ID, schema.Comments.UserID)
}

func scanComment(row pgx.Row) (store.Comment, error) {
	var comment store.Comment
	err := row.Scan(
		&comment.ID,
		&comment.MovieID,
		&comment.UserID,
		&comment.Text,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.AuthorName,
	)
	return comment, err
}

// ListByMovie returns the comments of a movie, newest first.
func (repository *CommentRepository) ListByMovie(context context.Context, movieID string) ([]store.Comment, error) {
	query := commentSelect() + fmt.Sprintf(` WHERE c.%s = $1 ORDER BY c.%s DESC, c.%s ASC`,
		schema.Comments.MovieID, schema.Comments.CreatedAt, schema.Comments.ID)

	rows, err := repository.pool.Query(context, query, movieID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_comment_repo_list_failed")
	}
	defer rows.Close()

	comments := []store.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "postgres_comment_repo_scan_failed")
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_comment_repo_list_failed")
	}
	return comments, nil
}

/*
CountByMovies counts the comments of several movies in one round trip.

Parameters:
  - context: context.Context
  - movieIDs: []string

Returns:
  - map[string]int: Count per movie id, movies without comments are absent
  - error: Database execution errors
*/
func (repository *CommentRepository) CountByMovies(context context.Context, movieIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(movieIDs))
	if len(movieIDs) == 0 {
		return counts, nil
	}

	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s WHERE %s = ANY($1::uuid[]) GROUP BY %s`,
		schema.Comments.MovieID, schema.Comments.Table, schema.Comments.MovieID, schema.Comments.MovieID)

	rows, err := repository.pool.Query(context, query, movieIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_comment_repo_count_failed")
	}
	defer rows.Close()

	for rows.Next() {
		var movieID string
		var count int
		if err := rows.Scan(&movieID, &count); err != nil {
			return nil, dberr.Wrap(err, "postgres_comment_repo_count_scan_failed")
		}
		counts[movieID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_comment_repo_count_failed")
	}
	return counts, nil
}

// Create inserts a comment and reads it back with its author name.
func (repository *CommentRepository) Create(context context.Context, movieID, userID, text string) (*store.Comment, error) {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING *
		)
		SELECT c.%s, c.%s, COALESCE(c.%s::text, ''), c.%s, c.%s, c.%s, COALESCE(u.%s, '')
		FROM inserted c LEFT JOIN %s u ON u.%s = c.%s`,
		schema.Comments.Table, schema.Comments.MovieID, schema.Comments.UserID, schema.Comments.Comment,
		schema.Comments.ID, schema.Comments.MovieID, schema.Comments.UserID, schema.Comments.Comment,
		schema.Comments.CreatedAt, schema.Comments.UpdatedAt, schema.Users.Name,
		schema.Users.Table, schema.Users.ID, schema.Comments.UserID)

	comment, err := scanComment(repository.pool.QueryRow(context, query, movieID, userID, text))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_comment_repo_create_failed")
	}
	return &comment, nil
}

// UpdateText replaces the text and sets updated_at.
func (repository *CommentRepository) UpdateText(context context.Context, id, text string, updatedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.Comments.Table, schema.Comments.Comment, schema.Comments.UpdatedAt, schema.Comments.ID)

	tag, err := repository.pool.Exec(context, query, text, updatedAt, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_comment_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return wrapRow(pgx.ErrNoRows, "postgres_comment_repo_update_failed", "Comment")
	}
	return nil
}

// Delete removes one comment.
func (repository *CommentRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Comments.Table, schema.Comments.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "postgres_comment_repo_delete_failed")
	}
	return nil
}

// DeleteByMovie removes every comment of a movie.
func (repository *CommentRepository) DeleteByMovie(context context.Context, movieID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Comments.Table, schema.Comments.MovieID)

	if _, err := repository.pool.Exec(context, query, movieID); err != nil {
		return dberr.Wrap(err, "postgres_comment_repo_delete_by_movie_failed")
	}
	return nil
}
