// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favorites owns the paginated list of movies the current user marked.

All marks are loaded first so the page window can be cut client-side; only the
movie rows of that window are fetched. Loads carry a generation token like the
catalog container.
*/
package favorites

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/pointer"
	"github.com/AliceG32/project-frontend-movies/pkg/slice"
)

var (
	// ErrSuperseded is returned by a load whose result was dropped because a newer load was issued.
	ErrSuperseded = errors.New("favorites: superseded by a newer request")

	// ErrRemoveInFlight rejects a removal for a movie whose previous removal has not resolved.
	ErrRemoveInFlight = errors.New("favorites: removal already in flight")
)

// # State

// Entry is a favorited movie with the time it was marked.
type Entry struct {
	store.Movie
	FavoritedAt time.Time `json:"favorited_at"`
}

// State is a consistent copy of the container.
type State struct {
	Movies     []Entry  `json:"movies"`
	TotalCount int      `json:"total_count"`
	Loading    bool     `json:"loading"`
	Error      string   `json:"error,omitempty"`
	Cursor     Cursor   `json:"cursor"`
	Removing   []string `json:"removing"`
}

// Container is safe for concurrent use. The lock is never held across a remote call.
type Container struct {
	favorites store.FavoriteRepository
	movies    store.MovieRepository
	notifier  notify.Sink
	confirmer confirm.Confirmer
	logger    *slog.Logger

	mu         sync.Mutex
	entries    []Entry
	total      int
	loading    bool
	err        string
	cursor     Cursor
	removing   map[string]struct{}
	generation uint64
}

// New constructs a [Container] over the store backend.
func New(backend store.Backend, notifier notify.Sink, confirmer confirm.Confirmer, logger *slog.Logger) *Container {
	return &Container{
		favorites: backend.Favorites,
		movies:    backend.Movies,
		notifier:  notifier,
		confirmer: confirmer,
		logger:    logger,
		entries:   []Entry{},
		cursor:    NewCursor(),
		removing:  map[string]struct{}{},
	}
}

// Snapshot returns a deep copy of the current state.
func (container *Container) Snapshot() State {
	container.mu.Lock()
	defer container.mu.Unlock()

	entries := make([]Entry, len(container.entries))
	for i, entry := range container.entries {
		if entry.Subtitles != nil {
			entry.Subtitles = pointer.To(*entry.Subtitles)
		}
		entries[i] = entry
	}

	removing := make([]string, 0, len(container.removing))
	for id := range container.removing {
		removing = append(removing, id)
	}
	sort.Strings(removing)

	return State{
		Movies:     entries,
		TotalCount: container.total,
		Loading:    container.loading,
		Error:      container.err,
		Cursor:     container.cursor,
		Removing:   removing,
	}
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

// SetPage changes the page only.
func (container *Container) SetPage(page int) Cursor {
	return container.mutate(func(cursor Cursor) Cursor { return cursor.WithPage(page) })
}

// SetSort changes the order and resets to page 1.
func (container *Container) SetSort(order store.Order) Cursor {
	return container.mutate(func(cursor Cursor) Cursor { return cursor.WithSort(order) })
}

// ClearSort restores created_at desc and resets to page 1.
func (container *Container) ClearSort() Cursor {
	return container.mutate(Cursor.WithDefaultSort)
}

// # Loading

/*
LoadPage fetches the favorites page described by cursor and commits it.

Description: Every mark of the user is listed in mark order, the id list is
cut to the page window, then only those movie rows are fetched. With the
default created_at sort the rows are put back into mark order; with a movie
column sort the row fetch itself is ordered. Marks whose movie no longer
exists are skipped.

Parameters:
  - context: context.Context
  - userID: string
  - cursor: Cursor

Returns:
  - error: The remote failure (also recorded in State.Error) or ErrSuperseded
*/
func (container *Container) LoadPage(context context.Context, userID string, cursor Cursor) error {
	container.mu.Lock()
	container.generation++
	token := container.generation
	container.loading = true
	container.err = ""
	container.mu.Unlock()

	entries, total, err := container.fetch(context, userID, cursor)

	container.mu.Lock()
	defer container.mu.Unlock()

	if token != container.generation {
		container.logger.DebugContext(context, "favorites_load_superseded", slog.Uint64("token", token))
		return ErrSuperseded
	}

	container.loading = false
	if err != nil {
		container.err = i18n.T(context, i18n.FavoriteLoadFailed, apperr.Message(err))
		container.entries = []Entry{}
		container.total = 0
		return err
	}

	container.entries = entries
	container.total = total
	return nil
}

func (container *Container) fetch(context context.Context, userID string, cursor Cursor) ([]Entry, int, error) {
	direction := store.Desc
	if cursor.ByMarkTime() {
		direction = cursor.Sort.Direction
	}

	marks, err := container.favorites.ListByUser(context, userID, direction)
	if err != nil {
		return nil, 0, err
	}

	window := cursor.Window()
	if window.Offset >= len(marks) {
		return []Entry{}, len(marks), nil
	}
	pageMarks := marks[window.Offset:min(window.End(), len(marks))]

	ids := slice.Map(pageMarks, func(mark store.Favorite) string { return mark.MovieID })

	var order *store.Order
	if !cursor.ByMarkTime() {
		order = pointer.To(cursor.Sort)
	}

	movies, err := container.movies.FindByIDs(context, ids, order)
	if err != nil {
		return nil, 0, err
	}

	markedAt := make(map[string]time.Time, len(pageMarks))
	for _, mark := range pageMarks {
		markedAt[mark.MovieID] = mark.CreatedAt
	}

	if !cursor.ByMarkTime() {
		entries := slice.Map(movies, func(movie store.Movie) Entry {
			return Entry{Movie: movie, FavoritedAt: markedAt[movie.ID]}
		})
		return entries, len(marks), nil
	}

	byID := make(map[string]store.Movie, len(movies))
	for _, movie := range movies {
		byID[movie.ID] = movie
	}

	entries := make([]Entry, 0, len(pageMarks))
	for _, mark := range pageMarks {
		movie, ok := byID[mark.MovieID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{Movie: movie, FavoritedAt: mark.CreatedAt})
	}
	return entries, len(marks), nil
}

// # Removal

/*
RemoveFavorite deletes the (user, movie) mark after confirmation.

Description: A declined prompt returns confirm.ErrDeclined and changes
nothing. On success the movie leaves the current page. When refresh is not
nil the page at refresh is reloaded afterwards.

Parameters:
  - context: context.Context
  - userID: string
  - movieID: string
  - title: string (Used in notifications only)
  - refresh: *Cursor (Optional)

Returns:
  - error: ErrRemoveInFlight, confirm.ErrDeclined, the remote failure or the reload failure
*/
func (container *Container) RemoveFavorite(context context.Context, userID, movieID, title string, refresh *Cursor) error {
	if !container.begin(movieID) {
		container.notifier.Notify(context, notify.KindInfo, i18n.T(context, i18n.TitleInfo), i18n.T(context, i18n.FavoriteToggleBusy, title))
		return ErrRemoveInFlight
	}

	err := container.remove(context, userID, movieID, title)
	container.finish(movieID)
	if err != nil || refresh == nil {
		return err
	}

	if err := container.LoadPage(context, userID, *refresh); err != nil && !errors.Is(err, ErrSuperseded) {
		return err
	}
	return nil
}

func (container *Container) remove(context context.Context, userID, movieID, title string) error {
	if !container.confirmer.Confirm(context, i18n.T(context, i18n.FavoriteConfirmRemove, title)) {
		return confirm.ErrDeclined
	}

	if err := container.favorites.Delete(context, userID, movieID); err != nil {
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleDeleteError), i18n.T(context, i18n.FavoriteRemoveFailed, apperr.Message(err)))
		return err
	}

	container.mu.Lock()
	kept := slice.Filter(container.entries, func(entry Entry) bool { return entry.ID != movieID })
	if len(kept) != len(container.entries) {
		container.total--
	}
	container.entries = kept
	container.mu.Unlock()

	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.FavoriteRemoved, title))
	container.logger.InfoContext(context, "favorite_removed", slog.String("user_id", userID), slog.String("movie_id", movieID))
	return nil
}

func (container *Container) begin(movieID string) bool {
	container.mu.Lock()
	defer container.mu.Unlock()

	if _, busy := container.removing[movieID]; busy {
		return false
	}
	container.removing[movieID] = struct{}{}
	return true
}

func (container *Container) finish(movieID string) {
	container.mu.Lock()
	delete(container.removing, movieID)
	container.mu.Unlock()
}

// Clear drops the loaded page and restores the default cursor. Loads still in
// flight are discarded when they resolve.
func (container *Container) Clear() {
	container.mu.Lock()
	defer container.mu.Unlock()

	container.generation++
	container.entries = []Entry{}
	container.total = 0
	container.loading = false
	container.err = ""
	container.cursor = NewCursor()
}
