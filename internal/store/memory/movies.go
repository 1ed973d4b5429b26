// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/uuid"
)

// MovieRepository implements [store.MovieRepository] over a [Store].
type MovieRepository struct {
	memory *Store
}

func (repository *MovieRepository) all() []store.Movie {
	movies := make([]store.Movie, 0, len(repository.memory.movies))
	for _, movie := range repository.memory.movies {
		movies = append(movies, movie)
	}
	return movies
}

func (repository *MovieRepository) List(_ context.Context, order store.Order, page store.Page) ([]store.Movie, int, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieList); err != nil {
		return nil, 0, err
	}

	movies := repository.all()
	sortMovies(movies, order)
	return window(movies, page), len(movies), nil
}

// Search ranks title matches above description matches.
func (repository *MovieRepository) Search(_ context.Context, text string, page store.Page) ([]store.RankedMovie, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieSearch); err != nil {
		return nil, err
	}

	ranked := repository.rank(text)
	return window(ranked, page), nil
}

func (repository *MovieRepository) SearchCount(_ context.Context, text string) (int, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieSearchCount); err != nil {
		return 0, err
	}
	return len(repository.rank(text)), nil
}

func (repository *MovieRepository) rank(text string) []store.RankedMovie {
	needle := repository.memory.fold(strings.TrimSpace(text))

	var ranked []store.RankedMovie
	for _, movie := range repository.memory.movies {
		rank := 0.0
		if strings.Contains(repository.memory.fold(movie.Title), needle) {
			rank += 1
		}
		if strings.Contains(repository.memory.fold(movie.Description), needle) {
			rank += 0.5
		}
		if rank > 0 {
			ranked = append(ranked, store.RankedMovie{Movie: movie, Rank: rank})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rank != ranked[j].Rank {
			return ranked[i].Rank > ranked[j].Rank
		}
		return ranked[i].UpdatedAt.After(ranked[j].UpdatedAt)
	})
	return ranked
}

func (repository *MovieRepository) SearchByTitle(_ context.Context, text string, order store.Order, page store.Page) ([]store.Movie, int, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieSearchByTitle); err != nil {
		return nil, 0, err
	}

	matches := repository.titleMatches(text)
	sortMovies(matches, order)
	return window(matches, page), len(matches), nil
}

func (repository *MovieRepository) CountByTitle(_ context.Context, text string) (int, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieCountByTitle); err != nil {
		return 0, err
	}
	return len(repository.titleMatches(text)), nil
}

func (repository *MovieRepository) titleMatches(text string) []store.Movie {
	needle := repository.memory.fold(strings.TrimSpace(text))
	var matches []store.Movie
	for _, movie := range repository.memory.movies {
		if repository.memory.titleMatches(movie, needle) {
			matches = append(matches, movie)
		}
	}
	return matches
}

func (repository *MovieRepository) FindByID(_ context.Context, id string) (*store.Movie, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieFind); err != nil {
		return nil, err
	}

	movie, ok := repository.memory.movies[id]
	if !ok {
		return nil, apperr.NotFound("Movie")
	}
	return &movie, nil
}

func (repository *MovieRepository) FindByIDs(_ context.Context, ids []string, order *store.Order) ([]store.Movie, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieFindMany); err != nil {
		return nil, err
	}

	movies := make([]store.Movie, 0, len(ids))
	for _, id := range ids {
		if movie, ok := repository.memory.movies[id]; ok {
			movies = append(movies, movie)
		}
	}
	if order != nil {
		sortMovies(movies, *order)
	}
	return movies, nil
}

func (repository *MovieRepository) Create(_ context.Context, input store.MovieInput) (*store.Movie, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieCreate); err != nil {
		return nil, err
	}

	now := repository.memory.now()
	movie := store.Movie{
		ID:              uuid.New(),
		Title:           input.Title,
		ReleaseYear:     input.ReleaseYear,
		DurationMinutes: input.DurationMinutes,
		Description:     input.Description,
		Rating:          input.Rating,
		Subtitles:       input.Subtitles,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	repository.memory.movies[movie.ID] = movie
	return &movie, nil
}

func (repository *MovieRepository) Update(_ context.Context, id string, patch store.MoviePatch) (*store.Movie, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieUpdate); err != nil {
		return nil, err
	}

	movie, ok := repository.memory.movies[id]
	if !ok {
		return nil, apperr.NotFound("Movie")
	}

	updated := patch.Apply(movie)
	updated.UpdatedAt = repository.memory.now()
	repository.memory.movies[id] = updated
	return &updated, nil
}

func (repository *MovieRepository) Delete(_ context.Context, id string) error {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpMovieDelete); err != nil {
		return err
	}
	delete(repository.memory.movies, id)
	return nil
}
