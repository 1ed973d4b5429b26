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

// # Movie Repository

// MovieRepository implements [store.MovieRepository] over PostgREST.
type MovieRepository struct {
	client *Client
}

// List returns one ordered page of movies and the exact total.
func (repository *MovieRepository) List(context context.Context, order store.Order, page store.Page) ([]store.Movie, int, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", orderValue(order))
	pageValues(query, page)

	return repository.page(context, query)
}

func (repository *MovieRepository) page(context context.Context, query url.Values) ([]store.Movie, int, error) {
	response, err := repository.client.do(context, call{
		method: http.MethodGet,
		path:   tablePath(schema.Movies.Table),
		query:  query,
		prefer: []string{preferCount},
	})
	if err != nil {
		return nil, 0, err
	}

	movies := []store.Movie{}
	if err := response.decode(&movies); err != nil {
		return nil, 0, err
	}

	total, err := response.total()
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// count issues a HEAD request and reads the exact total only.
func (repository *MovieRepository) count(context context.Context, query url.Values) (int, error) {
	response, err := repository.client.do(context, call{
		method: http.MethodHead,
		path:   tablePath(schema.Movies.Table),
		query:  query,
		prefer: []string{preferCount},
	})
	if err != nil {
		return 0, err
	}
	return response.total()
}

// Search calls the ranked search procedure.
func (repository *MovieRepository) Search(context context.Context, text string, page store.Page) ([]store.RankedMovie, error) {
	response, err := repository.client.do(context, call{
		method: http.MethodPost,
		path:   rpcPath(schema.RPCSearchMovies),
		body: map[string]any{
			schema.ParamSearchText: text,
			schema.ParamOffset:     page.Offset,
			schema.ParamLimit:      page.Limit,
		},
	})
	if err != nil {
		return nil, err
	}

	ranked := []store.RankedMovie{}
	if err := response.decode(&ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

// SearchCount calls the ranked search count procedure.
func (repository *MovieRepository) SearchCount(context context.Context, text string) (int, error) {
	response, err := repository.client.do(context, call{
		method: http.MethodPost,
		path:   rpcPath(schema.RPCSearchMoviesCount),
		body:   map[string]any{schema.ParamSearchText: text},
	})
	if err != nil {
		return 0, err
	}

	var count int
	if err := response.decode(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SearchByTitle pages case-insensitive title matches with their exact total.
func (repository *MovieRepository) SearchByTitle(context context.Context, text string, order store.Order, page store.Page) ([]store.Movie, int, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set(schema.Movies.Title, ilike(text))
	query.Set("order", orderValue(order))
	pageValues(query, page)

	return repository.page(context, query)
}

// CountByTitle counts case-insensitive title matches.
func (repository *MovieRepository) CountByTitle(context context.Context, text string) (int, error) {
	query := url.Values{}
	query.Set("select", schema.Movies.ID)
	query.Set(schema.Movies.Title, ilike(text))

	return repository.count(context, query)
}

// FindByID reads one movie with the singular object media type.
func (repository *MovieRepository) FindByID(context context.Context, id string) (*store.Movie, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set(schema.Movies.ID, eq(id))

	response, err := repository.client.do(context, call{
		method: http.MethodGet,
		path:   tablePath(schema.Movies.Table),
		query:  query,
		accept: mediaObjectJSON,
	})
	if err != nil {
		return nil, notFoundAs(err, "Movie")
	}

	var movie store.Movie
	if err := response.decode(&movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindByIDs returns the movies with the given ids, ordered when order is set.
func (repository *MovieRepository) FindByIDs(context context.Context, ids []string, order *store.Order) ([]store.Movie, error) {
	if len(ids) == 0 {
		return []store.Movie{}, nil
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set(schema.Movies.ID, in(ids))
	if order != nil {
		query.Set("order", orderValue(*order))
	}

	response, err := repository.client.do(context, call{method: http.MethodGet, path: tablePath(schema.Movies.Table), query: query})
	if err != nil {
		return nil, err
	}

	movies := []store.Movie{}
	if err := response.decode(&movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Create inserts a movie and returns the stored representation.
func (repository *MovieRepository) Create(context context.Context, input store.MovieInput) (*store.Movie, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	response, err := repository.client.do(context, call{
		method: http.MethodPost,
		path:   tablePath(schema.Movies.Table),
		body:   input,
		prefer: []string{preferReturn},
	})
	if err != nil {
		return nil, err
	}
	return singleMovie(response)
}

// Update patches the changed columns and stamps updated_at.
func (repository *MovieRepository) Update(context context.Context, id string, patch store.MoviePatch) (*store.Movie, error) {
	columns := patch.Columns()
	if len(columns) == 0 {
		return repository.FindByID(context, id)
	}

	body := make(map[string]any, len(columns)+1)
	for _, column := range columns {
		body[column.Column] = column.Value
	}
	body[schema.Movies.UpdatedAt] = time.Now().UTC()

	query := url.Values{}
	query.Set(schema.Movies.ID, eq(id))

	response, err := repository.client.do(context, call{
		method: http.MethodPatch,
		path:   tablePath(schema.Movies.Table),
		query:  query,
		body:   body,
		prefer: []string{preferReturn},
	})
	if err != nil {
		return nil, err
	}
	return singleMovie(response)
}

// Delete removes the movie row only.
func (repository *MovieRepository) Delete(context context.Context, id string) error {
	query := url.Values{}
	query.Set(schema.Movies.ID, eq(id))

	_, err := repository.client.do(context, call{method: http.MethodDelete, path: tablePath(schema.Movies.Table), query: query})
	return err
}

// singleMovie reads the one-element representation array of a write.
func singleMovie(response *response) (*store.Movie, error) {
	var movies []store.Movie
	if err := response.decode(&movies); err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, apperr.NotFound("Movie")
	}
	return &movies[0], nil
}
