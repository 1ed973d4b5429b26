// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memory implements the remote store contract in process.

It backs local development (with demo seed data) and the container tests.
Operations can be made to fail with [Store.Fail] to exercise degraded paths.
*/
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/sec"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/uuid"
)

// # Failure Injection

// Op names an operation that can be made to fail.
type Op string

const (
	OpMovieList          Op = "movies.list"
	OpMovieSearch        Op = "movies.search"
	OpMovieSearchCount   Op = "movies.search_count"
	OpMovieSearchByTitle Op = "movies.search_by_title"
	OpMovieCountByTitle  Op = "movies.count_by_title"
	OpMovieFind          Op = "movies.find"
	OpMovieFindMany      Op = "movies.find_many"
	OpMovieCreate        Op = "movies.create"
	OpMovieUpdate        Op = "movies.update"
	OpMovieDelete        Op = "movies.delete"
	OpFavoriteList       Op = "favorites.list"
	OpFavoriteExists     Op = "favorites.exists"
	OpFavoriteCreate     Op = "favorites.create"
	OpFavoriteDelete     Op = "favorites.delete"
	OpFavoriteDeleteAll  Op = "favorites.delete_by_movie"
	OpFavoriteCount      Op = "favorites.count"
	OpCommentList        Op = "comments.list"
	OpCommentCount       Op = "comments.count"
	OpCommentCreate      Op = "comments.create"
	OpCommentUpdate      Op = "comments.update"
	OpCommentDelete      Op = "comments.delete"
	OpCommentDeleteAll   Op = "comments.delete_by_movie"
	OpAuthenticate       Op = "auth.authenticate"
)

type user struct {
	store.Identity
	passwordHash string
}

// Store is an in-process remote store. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	users     map[string]user
	movies    map[string]store.Movie
	favorites map[string]store.Favorite
	comments  map[string]store.Comment
	failures  map[Op]error
	calls     map[Op]int
	lastTime  time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:     map[string]user{},
		movies:    map[string]store.Movie{},
		favorites: map[string]store.Favorite{},
		comments:  map[string]store.Comment{},
		failures:  map[Op]error{},
		calls:     map[Op]int{},
	}
}

// Backend exposes the store through the repository contracts.
func (memory *Store) Backend() store.Backend {
	return store.Backend{
		Movies:    &MovieRepository{memory},
		Favorites: &FavoriteRepository{memory},
		Comments:  &CommentRepository{memory},
		Auth:      &Authenticator{memory},
		Ping:      func(context.Context) error { return nil },
	}
}

// Fail makes every later call of op return err. A nil err clears the failure.
func (memory *Store) Fail(op Op, err error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if err == nil {
		delete(memory.failures, op)
		return
	}
	memory.failures[op] = err
}

// Calls returns how many times op was invoked, failed calls included.
func (memory *Store) Calls(op Op) int {
	memory.mu.RLock()
	defer memory.mu.RUnlock()
	return memory.calls[op]
}

// TotalCalls returns the number of invocations across all operations.
func (memory *Store) TotalCalls() int {
	memory.mu.RLock()
	defer memory.mu.RUnlock()
	total := 0
	for _, count := range memory.calls {
		total += count
	}
	return total
}

// begin records a call of op and returns its injected failure. Callers hold mu.
func (memory *Store) begin(op Op) error {
	memory.calls[op]++
	if err, ok := memory.failures[op]; ok {
		return apperr.Remote(err.Error(), err)
	}
	return nil
}

// now returns a strictly increasing timestamp so created_at orders are total.
func (memory *Store) now() time.Time {
	current := time.Now().UTC()
	if !current.After(memory.lastTime) {
		current = memory.lastTime.Add(time.Microsecond)
	}
	memory.lastTime = current
	return current
}

// fold case-folds for matching. A Caser is stateful, so one is built per call.
func (memory *Store) fold(value string) string {
	return cases.Fold().String(value)
}

func (memory *Store) titleMatches(movie store.Movie, needle string) bool {
	return strings.Contains(memory.fold(movie.Title), needle)
}

// # Seeding

// AddUser registers a user with a bcrypt-hashed password.
func (memory *Store) AddUser(name, password string) (store.Identity, error) {
	hash, err := sec.HashPassword(password)
	if err != nil {
		return store.Identity{}, err
	}

	memory.mu.Lock()
	defer memory.mu.Unlock()

	for _, existing := range memory.users {
		if existing.Name == name {
			return store.Identity{}, apperr.Conflict("User already exists")
		}
	}

	identity := store.Identity{ID: uuid.New(), Name: name}
	memory.users[identity.ID] = user{Identity: identity, passwordHash: hash}
	return identity, nil
}

// AddMovie inserts a movie without validation, for fixtures.
func (memory *Store) AddMovie(movie store.Movie) store.Movie {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	if movie.ID == "" {
		movie.ID = uuid.New()
	}
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = memory.now()
	}
	if movie.UpdatedAt.IsZero() {
		movie.UpdatedAt = movie.CreatedAt
	}
	memory.movies[movie.ID] = movie
	return movie
}

// # Sorting Helpers

func sortMovies(movies []store.Movie, order store.Order) {
	sort.SliceStable(movies, func(i, j int) bool {
		if order.Ascending() {
			return lessMovie(movies[i], movies[j], order.Field)
		}
		return lessMovie(movies[j], movies[i], order.Field)
	})
}

func lessMovie(a, b store.Movie, field store.SortField) bool {
	switch field {
	case store.SortTitle:
		return a.Title < b.Title
	case store.SortReleaseYear:
		return a.ReleaseYear < b.ReleaseYear
	case store.SortDuration:
		return a.DurationMinutes < b.DurationMinutes
	case store.SortRating:
		return a.Rating < b.Rating
	case store.SortCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return a.UpdatedAt.Before(b.UpdatedAt)
	}
}

func window[T any](items []T, page store.Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	end := page.End()
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[page.Offset:end]...)
}
