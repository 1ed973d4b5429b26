// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgrest

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// # Favorite Repository

// FavoriteRepository implements [store.FavoriteRepository] over PostgREST.
type FavoriteRepository struct {
	client *Client
}

// ListByUser returns every mark of the user ordered by created_at.
func (repository *FavoriteRepository) ListByUser(context context.Context, userID string, direction store.SortDirection) ([]store.Favorite, error) {
	if direction != store.Asc {
		direction = store.Desc
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set(schema.Favorites.UserID, eq(userID))
	query.Set("order", schema.Favorites.CreatedAt+"."+string(direction)+","+schema.Favorites.ID+".asc")

	response, err := repository.client.do(context, call{method: http.MethodGet, path: tablePath(schema.Favorites.Table), query: query})
	if err != nil {
		return nil, err
	}

	favorites := []store.Favorite{}
	if err := response.decode(&favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Exists reports whether the (user, movie) mark is present.
func (repository *FavoriteRepository) Exists(context context.Context, userID, movieID string) (bool, error) {
	query := url.Values{}
	query.Set("select", schema.Favorites.ID)
	query.Set(schema.Favorites.UserID, eq(userID))
	query.Set(schema.Favorites.MovieID, eq(movieID))
	query.Set("limit", "1")

	response, err := repository.client.do(context, call{method: http.MethodGet, path: tablePath(schema.Favorites.Table), query: query})
	if err != nil {
		return false, err
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := response.decode(&rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Create inserts a mark. A duplicate surfaces as apperr.Conflict.
func (repository *FavoriteRepository) Create(context context.Context, userID, movieID string) (*store.Favorite, error) {
	response, err := repository.client.do(context, call{
		method: http.MethodPost,
		path:   tablePath(schema.Favorites.Table),
		body: map[string]string{
			schema.Favorites.UserID:  userID,
			schema.Favorites.MovieID: movieID,
		},
		prefer: []string{preferReturn},
	})
	if err != nil {
		return nil, err
	}

	var favorites []store.Favorite
	if err := response.decode(&favorites); err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, apperr.Remote("empty insert response", nil)
	}
	return &favorites[0], nil
}

// Delete removes the (user, movie) mark.
func (repository *FavoriteRepository) Delete(context context.Context, userID, movieID string) error {
	query := url.Values{}
	query.Set(schema.Favorites.UserID, eq(userID))
	query.Set(schema.Favorites.MovieID, eq(movieID))

	_, err := repository.client.do(context, call{method: http.MethodDelete, path: tablePath(schema.Favorites.Table), query: query})
	return err
}

// DeleteByMovie removes every mark of a movie.
func (repository *FavoriteRepository) DeleteByMovie(context context.Context, movieID string) error {
	query := url.Values{}
	query.Set(schema.Favorites.MovieID, eq(movieID))

	_, err := repository.client.do(context, call{method: http.MethodDelete, path: tablePath(schema.Favorites.Table), query: query})
	return err
}

// CountByUser returns the exact number of marks of a user.
func (repository *FavoriteRepository) CountByUser(context context.Context, userID string) (int, error) {
	query := url.Values{}
	query.Set("select", schema.Favorites.ID)
	query.Set(schema.Favorites.UserID, eq(userID))

	response, err := repository.client.do(context, call{
		method: http.MethodHead,
		path:   tablePath(schema.Favorites.Table),
		query:  query,
		prefer: []string{preferCount},
	})
	if err != nil {
		return 0, err
	}
	return response.total()
}

// # Comment Repository

// CommentRepository implements [store.CommentRepository] over PostgREST.
type CommentRepository struct {
	client *Client
}

// commentSelect embeds the author through the user_id foreign key.
var commentSelect = "*," + schema.Users.Table + "(" + schema.Users.Name + ")"

// commentRow is a comment with its embedded author. A deleted author embeds as null.
type commentRow struct {
	store.Comment
	UserID *string `json:"user_id"`
	Users  *struct {
		Name string `json:"name"`
	} `json:"users"`
}

func (row commentRow) comment() store.Comment {
	comment := row.Comment
	if row.UserID != nil {
		comment.UserID = *row.UserID
	}
	if row.Users != nil {
		comment.AuthorName = row.Users.Name
	}
	return comment
}

// ListByMovie returns the comments of a movie, newest first, with author names.
func (repository *CommentRepository) ListByMovie(context context.Context, movieID string) ([]store.Comment, error) {
	query := url.Values{}
	query.Set("select", commentSelect)
	query.Set(schema.Comments.MovieID, eq(movieID))
	query.Set("order", schema.Comments.CreatedAt+".desc,"+schema.Comments.ID+".asc")

	response, err := repository.client.do(context, call{method: http.MethodGet, path: tablePath(schema.Comments.Table), query: query})
	if err != nil {
		return nil, err
	}

	var rows []commentRow
	if err := response.decode(&rows); err != nil {
		return nil, err
	}

	comments := make([]store.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.comment())
	}
	return comments, nil
}

// CountByMovies selects the movie ids of matching comments and counts them client-side.
func (repository *CommentRepository) CountByMovies(context context.Context, movieIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(movieIDs))
	if len(movieIDs) == 0 {
		return counts, nil
	}

	query := url.Values{}
	query.Set("select", schema.Comments.MovieID)
	query.Set(schema.Comments.MovieID, in(movieIDs))

	response, err := repository.client.do(context, call{method: http.MethodGet, path: tablePath(schema.Comments.Table), query: query})
	if err != nil {
		return nil, err
	}

	var rows []struct {
		MovieID string `json:"movie_id"`
	}
	if err := response.decode(&rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.MovieID]++
	}
	return counts, nil
}

// Create inserts a comment and returns it with its author name.
func (repository *CommentRepository) Create(context context.Context, movieID, userID, text string) (*store.Comment, error) {
	query := url.Values{}
	query.Set("select", commentSelect)

	response, err := repository.client.do(context, call{
		method: http.MethodPost,
		path:   tablePath(schema.Comments.Table),
		query:  query,
		body: map[string]string{
			schema.Comments.MovieID: movieID,
			schema.Comments.UserID:  userID,
			schema.Comments.Comment: text,
		},
		prefer: []string{preferReturn},
	})
	if err != nil {
		return nil, err
	}

	var rows []commentRow
	if err := response.decode(&rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.Remote("empty insert response", nil)
	}
	comment := rows[0].comment()
	return &comment, nil
}

// UpdateText replaces the text and sets updated_at.
func (repository *CommentRepository) UpdateText(context context.Context, id, text string, updatedAt time.Time) error {
	query := url.Values{}
	query.Set(schema.Comments.ID, eq(id))

	_, err := repository.client.do(context, call{
		method: http.MethodPatch,
		path:   tablePath(schema.Comments.Table),
		query:  query,
		body: map[string]any{
			schema.Comments.Comment:   text,
			schema.Comments.UpdatedAt: updatedAt.UTC(),
		},
	})
	return err
}

// Delete removes one comment.
func (repository *CommentRepository) Delete(context context.Context, id string) error {
	query := url.Values{}
	query.Set(schema.Comments.ID, eq(id))

	_, err := repository.client.do(context, call{method: http.MethodDelete, path: tablePath(schema.Comments.Table), query: query})
	return err
}

// DeleteByMovie removes every comment of a movie.
func (repository *CommentRepository) DeleteByMovie(context context.Context, movieID string) error {
	query := url.Values{}
	query.Set(schema.Comments.MovieID, eq(movieID))

	_, err := repository.client.do(context, call{method: http.MethodDelete, path: tablePath(schema.Comments.Table), query: query})
	return err
}

// # Authenticator

// Authenticator implements [store.Authenticator] with the authenticate_user procedure.
type Authenticator struct {
	client *Client
}

// Authenticate returns the matching identities. Rejected credentials yield none.
func (authenticator *Authenticator) Authenticate(context context.Context, username, password string) ([]store.Identity, error) {
	response, err := authenticator.client.do(context, call{
		method: http.MethodPost,
		path:   rpcPath(schema.RPCAuthenticateUser),
		body: map[string]string{
			schema.ParamUsername: username,
			schema.ParamPassword: password,
		},
	})
	if err != nil {
		return nil, err
	}

	identities := []store.Identity{}
	if err := response.decode(&identities); err != nil {
		return nil, err
	}
	return identities, nil
}
