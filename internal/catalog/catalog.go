// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog owns the paginated, sorted and searchable movie list, the
per-row comment counts and the current user's favorite-id set.

Every cursor-driven load takes a generation token. A load that resolves after
a newer one was issued is discarded with [ErrSuperseded] so an old page never
clobbers a newer one.
*/
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/pointer"
	"github.com/AliceG32/project-frontend-movies/pkg/slice"
)

// ErrSuperseded is returned by a load whose result was dropped because a newer load was issued.
var ErrSuperseded = errors.New("catalog: superseded by a newer request")

// # State

// Row is a movie annotated for display. Rank and CommentCount are never persisted.
type Row struct {
	store.Movie
	Rank         *float64 `json:"rank,omitempty"`
	CommentCount int      `json:"comment_count"`
}

// State is a consistent copy of the container.
type State struct {
	Movies           []Row    `json:"movies"`
	TotalCount       int      `json:"total_count"`
	Loading          bool     `json:"loading"`
	Error            string   `json:"error,omitempty"`
	Cursor           Cursor   `json:"cursor"`
	FavoriteIDs      []string `json:"favorite_ids"`
	FavoritesLoading []string `json:"favorites_loading"`
}

// # Container

// Container is safe for concurrent use. The lock is never held across a remote call.
type Container struct {
	movies    store.MovieRepository
	favorites store.FavoriteRepository
	comments  store.CommentRepository
	notifier  notify.Sink
	confirmer confirm.Confirmer
	logger    *slog.Logger

	mu          sync.Mutex
	rows        []Row
	total       int
	loading     bool
	err         string
	cursor      Cursor
	favoriteIDs map[string]struct{}
	toggling    map[string]struct{}
	generation  uint64

	// idsGeneration drops favorite-id loads that resolve after ClearFavorites.
	idsGeneration uint64
}

// New constructs a [Container] over the store backend.
func New(backend store.Backend, notifier notify.Sink, confirmer confirm.Confirmer, logger *slog.Logger) *Container {
	return &Container{
		movies:      backend.Movies,
		favorites:   backend.Favorites,
		comments:    backend.Comments,
		notifier:    notifier,
		confirmer:   confirmer,
		logger:      logger,
		rows:        []Row{},
		cursor:      NewCursor(),
		favoriteIDs: map[string]struct{}{},
		toggling:    map[string]struct{}{},
	}
}

// Snapshot returns a deep copy of the current state.
func (container *Container) Snapshot() State {
	container.mu.Lock()
	defer container.mu.Unlock()

	rows := make([]Row, len(container.rows))
	for i, row := range container.rows {
		rows[i] = cloneRow(row)
	}

	return State{
		Movies:           rows,
		TotalCount:       container.total,
		Loading:          container.loading,
		Error:            container.err,
		Cursor:           container.cursor,
		FavoriteIDs:      sortedKeys(container.favoriteIDs),
		FavoritesLoading: sortedKeys(container.toggling),
	}
}

// IsFavorite reports whether movieID is in the favorite-id set.
func (container *Container) IsFavorite(movieID string) bool {
	container.mu.Lock()
	defer container.mu.Unlock()
	_, ok := container.favoriteIDs[movieID]
	return ok
}

// # Cursor Mutators

// Cursor returns the current cursor.
func (container *Container) Cursor() Cursor {
	container.mu.Lock()
	defer container.mu.Unlock()
	return container.cursor
}

func (container *Container) mutate(change func(Cursor) Cursor) Cursor {
	container.mu.Lock()
	defer container.mu.Unlock()
	container.cursor = change(container.cursor)
	return container.cursor
}

// SetSearchText updates the staged text only.
func (container *Container) SetSearchText(text string) Cursor {
	return container.mutate(func(cursor Cursor) Cursor { return cursor.WithStaged(text) })
}

// CommitSearch submits the staged text and resets to page 1.
func (container *Container) CommitSearch() Cursor {
	return container.mutate(Cursor.Committed)
}

// ClearSearch empties staged and committed text and resets to page 1.
func (container *Container) ClearSearch() Cursor {
	return container.mutate(Cursor.Cleared)
}

// SetPage changes the page only.
func (container *Container) SetPage(page int) Cursor {
	return container.mutate(func(cursor Cursor) Cursor { return cursor.WithPage(page) })
}

// SetSort changes the order and resets to page 1.
func (container *Container) SetSort(order store.Order) Cursor {
	return container.mutate(func(cursor Cursor) Cursor { return cursor.WithSort(order) })
}

// ClearSort restores the default order and resets to page 1.
func (container *Container) ClearSort() Cursor {
	return container.mutate(Cursor.WithDefaultSort)
}

// # Loading

/*
LoadPage fetches the page described by cursor and commits it.

Description: With a committed term the ranked search procedure is tried
first and a plain title match is the fallback. Totals come from the search
count procedure, falling back to a title count. Every row is annotated with
its comment count through one batched lookup.

Parameters:
  - context: context.Context
  - cursor: Cursor

Returns:
  - error: The remote failure (also recorded in State.Error) or ErrSuperseded
*/
func (container *Container) LoadPage(context context.Context, cursor Cursor) error {
	container.mu.Lock()
	container.generation++
	token := container.generation
	container.loading = true
	container.err = ""
	container.mu.Unlock()

	rows, total, err := container.fetch(context, cursor)

	container.mu.Lock()
	defer container.mu.Unlock()

	if token != container.generation {
		container.logger.DebugContext(context, "catalog_load_superseded", slog.Uint64("token", token))
		return ErrSuperseded
	}

	container.loading = false
	if err != nil {
		container.err = i18n.T(context, i18n.DatabaseFailed, apperr.Message(err))
		container.rows = []Row{}
		container.total = 0
		return err
	}

	container.rows = rows
	container.total = total
	return nil
}

func (container *Container) fetch(context context.Context, cursor Cursor) ([]Row, int, error) {
	window := cursor.Window()
	term := cursor.Term()

	var rows []Row
	var total int

	switch {
	case term == "":
		movies, count, err := container.movies.List(context, cursor.Sort, window)
		if err != nil {
			return nil, 0, err
		}
		rows, total = plainRows(movies, nil), count

	default:
		ranked, err := container.movies.Search(context, term, window)
		if err == nil {
			rows = slice.Map(ranked, func(movie store.RankedMovie) Row {
				return Row{Movie: movie.Movie, Rank: pointer.To(movie.Rank)}
			})
			total = container.searchCount(context, term)
			break
		}

		container.logger.WarnContext(context, "catalog_ranked_search_failed",
			slog.String("term", term),
			slog.Any("error", err),
		)

		movies, count, err := container.movies.SearchByTitle(context, term, cursor.Sort, window)
		if err != nil {
			return nil, 0, err
		}
		rows, total = plainRows(movies, pointer.To(0.0)), count
	}

	container.annotate(context, rows)
	return rows, total, nil
}

// searchCount prefers the search count procedure and degrades to a title count, then to 0.
func (container *Container) searchCount(context context.Context, term string) int {
	count, err := container.movies.SearchCount(context, term)
	if err == nil {
		return count
	}

	container.logger.WarnContext(context, "catalog_search_count_failed", slog.Any("error", err))

	count, err = container.movies.CountByTitle(context, term)
	if err != nil {
		container.logger.WarnContext(context, "catalog_title_count_failed", slog.Any("error", err))
		return 0
	}
	return count
}

// annotate fills comment counts with one lookup for the whole page. A failed lookup leaves zeros.
func (container *Container) annotate(context context.Context, rows []Row) {
	if len(rows) == 0 {
		return
	}

	ids := slice.Map(rows, func(row Row) string { return row.ID })
	counts, err := container.comments.CountByMovies(context, ids)
	if err != nil {
		container.logger.WarnContext(context, "catalog_comment_counts_failed", slog.Any("error", err))
		return
	}

	for i := range rows {
		rows[i].CommentCount = counts[rows[i].ID]
	}
}

/*
LoadFavoriteIDs replaces the favorite-id set with every movie the user marked.

A failure degrades to an empty set and is not recorded as an error.
*/
func (container *Container) LoadFavoriteIDs(context context.Context, userID string) {
	container.mu.Lock()
	token := container.idsGeneration
	container.mu.Unlock()

	favorites, err := container.favorites.ListByUser(context, userID, store.Desc)

	ids := make(map[string]struct{}, len(favorites))
	if err != nil {
		container.logger.WarnContext(context, "catalog_favorite_ids_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	} else {
		for _, favorite := range favorites {
			ids[favorite.MovieID] = struct{}{}
		}
	}

	container.mu.Lock()
	if token == container.idsGeneration {
		container.favoriteIDs = ids
	}
	container.mu.Unlock()
}

// ClearFavorites forgets the favorite-id set of the previous user. Loads still
// in flight are dropped when they resolve.
func (container *Container) ClearFavorites() {
	container.mu.Lock()
	defer container.mu.Unlock()

	container.idsGeneration++
	container.favoriteIDs = map[string]struct{}{}
}

// # Helpers

func plainRows(movies []store.Movie, rank *float64) []Row {
	rows := make([]Row, len(movies))
	for i, movie := range movies {
		rows[i] = Row{Movie: movie}
		if rank != nil {
			rows[i].Rank = pointer.To(*rank)
		}
	}
	return rows
}

func cloneRow(row Row) Row {
	if row.Rank != nil {
		row.Rank = pointer.To(*row.Rank)
	}
	if row.Subtitles != nil {
		row.Subtitles = pointer.To(*row.Subtitles)
	}
	return row
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
