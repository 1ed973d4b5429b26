// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package store defines the contract of the remote store the state containers
talk to: CRUD over movies, favorites and comments plus the credential check
and ranked search procedures.

Implementations live in sub-packages:

  - postgres: direct PostgreSQL access through pgxpool.
  - postgrest: a PostgREST/Supabase REST endpoint.
  - memory: an in-process store for development and tests.

Every implementation reports a missing single row as [apperr.NotFound] and
any other failure as an [apperr.AppError] whose message can be shown to the user.
*/
package store

import (
	"context"
	"time"
)

// # Repository Contracts

// MovieRepository covers the movies table and the search procedures.
type MovieRepository interface {
	// List returns one ordered page of movies and the exact total count.
	List(context context.Context, order Order, page Page) ([]Movie, int, error)

	// Search calls the ranked search procedure.
	Search(context context.Context, text string, page Page) ([]RankedMovie, error)

	// SearchCount calls the ranked search count procedure.
	SearchCount(context context.Context, text string) (int, error)

	// SearchByTitle is the case-insensitive title match used when ranked
	// search fails. It returns one ordered page and the exact total count.
	SearchByTitle(context context.Context, text string, order Order, page Page) ([]Movie, int, error)

	// CountByTitle counts case-insensitive title matches.
	CountByTitle(context context.Context, text string) (int, error)

	// FindByID returns one movie or apperr.NotFound.
	FindByID(context context.Context, id string) (*Movie, error)

	// FindByIDs returns the movies with the given ids. When order is nil the
	// result order is unspecified.
	FindByIDs(context context.Context, ids []string, order *Order) ([]Movie, error)

	// Create inserts a movie and returns the stored row.
	Create(context context.Context, input MovieInput) (*Movie, error)

	// Update applies patch and returns the stored row.
	Update(context context.Context, id string, patch MoviePatch) (*Movie, error)

	// Delete removes a movie row. Related rows are not touched.
	Delete(context context.Context, id string) error
}

// FavoriteRepository covers the favorites table.
type FavoriteRepository interface {
	// ListByUser returns every mark of the user ordered by created_at.
	ListByUser(context context.Context, userID string, direction SortDirection) ([]Favorite, error)

	// Exists reports whether the (user, movie) mark is present.
	Exists(context context.Context, userID, movieID string) (bool, error)

	// Create inserts a mark and returns the stored row.
	Create(context context.Context, userID, movieID string) (*Favorite, error)

	// Delete removes the (user, movie) mark.
	Delete(context context.Context, userID, movieID string) error

	// DeleteByMovie removes every mark of a movie.
	DeleteByMovie(context context.Context, movieID string) error

	// CountByUser returns the exact number of marks of a user.
	CountByUser(context context.Context, userID string) (int, error)
}

// CommentRepository covers the comments table.
type CommentRepository interface {
	// ListByMovie returns the comments of a movie, newest first, with author names.
	ListByMovie(context context.Context, movieID string) ([]Comment, error)

	// CountByMovies counts comments of several movies in one round trip.
	// Movies without comments may be absent from the result.
	CountByMovies(context context.Context, movieIDs []string) (map[string]int, error)

	// Create inserts a comment and returns the stored row with its author name.
	Create(context context.Context, movieID, userID, text string) (*Comment, error)

	// UpdateText replaces the text and sets updated_at.
	UpdateText(context context.Context, id, text string, updatedAt time.Time) error

	// Delete removes one comment.
	Delete(context context.Context, id string) error

	// DeleteByMovie removes every comment of a movie.
	DeleteByMovie(context context.Context, movieID string) error
}

// Authenticator calls the credential check procedure. Zero rows means the
// credentials were rejected.
type Authenticator interface {
	Authenticate(context context.Context, username, password string) ([]Identity, error)
}

// # Aggregate

// Backend bundles the repositories of one store implementation.
type Backend struct {
	Movies    MovieRepository
	Favorites FavoriteRepository
	Comments  CommentRepository
	Auth      Authenticator

	// Ping checks connectivity for the readiness probe.
	Ping func(context context.Context) error
}
