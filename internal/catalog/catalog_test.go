// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliceG32/project-frontend-movies/internal/catalog"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/internal/store/memory"
)

type fixture struct {
	memory    *memory.Store
	backend   store.Backend
	notes     *notify.Buffer
	confirmer *confirm.Recorder
	container *catalog.Container
	userID    string
}

func newFixture(t *testing.T, movies int) *fixture {
	t.Helper()

	memoryStore := memory.New()
	identity, err := memoryStore.AddUser("demo", "demo1234")
	require.NoError(t, err)

	for i := 1; i <= movies; i++ {
		memoryStore.AddMovie(store.Movie{
			Title:           fmt.Sprintf("Фильм %02d", i),
			ReleaseYear:     1990 + i,
			DurationMinutes: 90 + i,
			Description:     "Описание",
			Rating:          float64(i%10) + 0.5,
		})
	}

	f := &fixture{
		memory:    memoryStore,
		backend:   memoryStore.Backend(),
		notes:     notify.NewBuffer(),
		confirmer: &confirm.Recorder{Answer: true},
		userID:    identity.ID,
	}
	f.container = catalog.New(f.backend, f.notes, f.confirmer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

/*
TestCursor_Mutators verifies which mutations reset the page.
*/
func TestCursor_Mutators(t *testing.T) {
	cursor := catalog.NewCursor().WithPage(4)

	assert.Equal(t, 4, cursor.WithStaged("мат").Page)
	assert.Empty(t, cursor.WithStaged("мат").Search.Committed)

	committed := cursor.WithStaged("  Матрица ").Committed()
	assert.Equal(t, 1, committed.Page)
	assert.Equal(t, "Матрица", committed.Search.Committed)

	sorted := committed.WithPage(3).WithSort(store.Order{Field: store.SortRating, Direction: store.Asc})
	assert.Equal(t, 1, sorted.Page)
	assert.Equal(t, "Матрица", sorted.Search.Committed)

	paged := sorted.WithPage(2)
	assert.Equal(t, sorted.Sort, paged.Sort)
	assert.Equal(t, sorted.Search, paged.Search)

	assert.Equal(t, catalog.DefaultSort(), paged.WithDefaultSort().Sort)
	assert.Equal(t, catalog.Search{}, paged.Cleared().Search)
	assert.Equal(t, 1, paged.Cleared().Page)
}

func TestCursor_UnknownSortFieldFallsBack(t *testing.T) {
	cursor := catalog.NewCursor().WithSort(store.Order{Field: "popularity", Direction: "sideways"})
	assert.Equal(t, store.SortUpdatedAt, cursor.Sort.Field)
	assert.Equal(t, store.Desc, cursor.Sort.Direction)
}

/*
TestLoadPage_Plain covers the unsearched page: bounded size, exact total and comment counts.
*/
func TestLoadPage_Plain(t *testing.T) {
	f := newFixture(t, 12)
	ctx := context.Background()

	first := f.container.Snapshot()
	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))

	state := f.container.Snapshot()
	assert.Len(t, state.Movies, 10)
	assert.Equal(t, 12, state.TotalCount)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	assert.Empty(t, first.Movies)

	movieID := state.Movies[0].ID
	_, err := f.backend.Comments.Create(ctx, movieID, f.userID, "первый")
	require.NoError(t, err)
	_, err = f.backend.Comments.Create(ctx, movieID, f.userID, "второй")
	require.NoError(t, err)

	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor().WithPage(1)))
	state = f.container.Snapshot()
	assert.Equal(t, 2, state.Movies[0].CommentCount)
	assert.Equal(t, 0, state.Movies[1].CommentCount)
	assert.Nil(t, state.Movies[0].Rank)
	assert.Equal(t, 1, f.memory.Calls(memory.OpCommentCount))

	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor().WithPage(2)))
	assert.Len(t, f.container.Snapshot().Movies, 2)
}

func TestLoadPage_RankedSearch(t *testing.T) {
	f := newFixture(t, 12)
	ctx := context.Background()

	cursor := catalog.NewCursor().WithStaged("фильм 1").Committed()
	require.NoError(t, f.container.LoadPage(ctx, cursor))

	state := f.container.Snapshot()
	assert.Equal(t, 3, state.TotalCount)
	require.Len(t, state.Movies, 3)
	require.NotNil(t, state.Movies[0].Rank)
	assert.Greater(t, *state.Movies[0].Rank, 0.0)
	assert.Zero(t, f.memory.Calls(memory.OpMovieSearchByTitle))
}

/*
TestLoadPage_SearchFallbacks covers the ranked search and count procedures failing.
*/
func TestLoadPage_SearchFallbacks(t *testing.T) {
	t.Run("ranked_search_fails", func(t *testing.T) {
		f := newFixture(t, 12)
		f.memory.Fail(memory.OpMovieSearch, errors.New("function search_movies does not exist"))

		cursor := catalog.NewCursor().WithStaged("ФИЛЬМ 1").Committed()
		require.NoError(t, f.container.LoadPage(context.Background(), cursor))

		state := f.container.Snapshot()
		assert.Equal(t, 3, state.TotalCount)
		require.Len(t, state.Movies, 3)
		require.NotNil(t, state.Movies[0].Rank)
		assert.Equal(t, 0.0, *state.Movies[0].Rank)
		assert.Equal(t, 1, f.memory.Calls(memory.OpMovieSearchByTitle))
	})

	t.Run("count_procedure_fails", func(t *testing.T) {
		f := newFixture(t, 12)
		f.memory.Fail(memory.OpMovieSearchCount, errors.New("boom"))

		cursor := catalog.NewCursor().WithStaged("фильм 1").Committed()
		require.NoError(t, f.container.LoadPage(context.Background(), cursor))

		assert.Equal(t, 3, f.container.Snapshot().TotalCount)
		assert.Equal(t, 1, f.memory.Calls(memory.OpMovieCountByTitle))
	})

	t.Run("every_count_fails", func(t *testing.T) {
		f := newFixture(t, 12)
		f.memory.Fail(memory.OpMovieSearchCount, errors.New("boom"))
		f.memory.Fail(memory.OpMovieCountByTitle, errors.New("boom"))

		cursor := catalog.NewCursor().WithStaged("фильм 1").Committed()
		require.NoError(t, f.container.LoadPage(context.Background(), cursor))

		assert.Zero(t, f.container.Snapshot().TotalCount)
		assert.Len(t, f.container.Snapshot().Movies, 3)
	})

	t.Run("comment_counts_fail", func(t *testing.T) {
		f := newFixture(t, 3)
		f.memory.Fail(memory.OpCommentCount, errors.New("boom"))

		require.NoError(t, f.container.LoadPage(context.Background(), catalog.NewCursor()))
		for _, row := range f.container.Snapshot().Movies {
			assert.Zero(t, row.CommentCount)
		}
	})
}

func TestLoadPage_FailureRecordsError(t *testing.T) {
	f := newFixture(t, 3)
	require.NoError(t, f.container.LoadPage(context.Background(), catalog.NewCursor()))

	f.memory.Fail(memory.OpMovieList, errors.New("connection refused"))
	err := f.container.LoadPage(context.Background(), catalog.NewCursor())
	require.Error(t, err)

	state := f.container.Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Movies)
	assert.Zero(t, state.TotalCount)
	assert.Equal(t, "Ошибка базы данных: connection refused", state.Error)

	f.memory.Fail(memory.OpMovieList, nil)
	require.NoError(t, f.container.LoadPage(context.Background(), catalog.NewCursor()))
	assert.Empty(t, f.container.Snapshot().Error)
}

// gatedMovies blocks List until release is closed.
type gatedMovies struct {
	store.MovieRepository
	entered chan struct{}
	release chan struct{}
}

func (gated *gatedMovies) List(ctx context.Context, order store.Order, page store.Page) ([]store.Movie, int, error) {
	gated.entered <- struct{}{}
	<-gated.release
	return gated.MovieRepository.List(ctx, order, page)
}

/*
TestLoadPage_StaleResponseDiscarded verifies that an older load resolving last does not win.
*/
func TestLoadPage_StaleResponseDiscarded(t *testing.T) {
	f := newFixture(t, 12)
	gated := &gatedMovies{MovieRepository: f.backend.Movies, entered: make(chan struct{}), release: make(chan struct{})}
	f.backend.Movies = gated
	container := catalog.New(f.backend, f.notes, f.confirmer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	staleErr := make(chan error, 1)
	go func() {
		staleErr <- container.LoadPage(context.Background(), catalog.NewCursor().WithPage(2))
	}()
	<-gated.entered

	// The newer load is served by the ungated search path.
	newer := catalog.NewCursor().WithStaged("фильм 0").Committed()
	require.NoError(t, container.LoadPage(context.Background(), newer))

	close(gated.release)
	assert.ErrorIs(t, <-staleErr, catalog.ErrSuperseded)

	state := container.Snapshot()
	assert.Equal(t, 9, state.TotalCount)
	assert.False(t, state.Loading)
}

func TestLoadFavoriteIDs(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))
	movieID := f.container.Snapshot().Movies[0].ID

	_, err := f.backend.Favorites.Create(ctx, f.userID, movieID)
	require.NoError(t, err)

	f.container.LoadFavoriteIDs(ctx, f.userID)
	assert.Equal(t, []string{movieID}, f.container.Snapshot().FavoriteIDs)
	assert.True(t, f.container.IsFavorite(movieID))

	f.memory.Fail(memory.OpFavoriteList, errors.New("boom"))
	f.container.LoadFavoriteIDs(ctx, f.userID)

	state := f.container.Snapshot()
	assert.Empty(t, state.FavoriteIDs)
	assert.Empty(t, state.Error)
}

/*
TestToggleFavorite_AddTwice verifies that a second add is rejected and never duplicates a mark.
*/
func TestToggleFavorite_AddTwice(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))
	movieID := f.container.Snapshot().Movies[0].ID

	require.NoError(t, f.container.ToggleFavorite(ctx, f.userID, movieID, "Фильм 01", catalog.ActionAdd))
	err := f.container.ToggleFavorite(ctx, f.userID, movieID, "Фильм 01", catalog.ActionAdd)
	assert.ErrorIs(t, err, catalog.ErrAlreadyFavorite)

	count, err := f.backend.Favorites.CountByUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	state := f.container.Snapshot()
	assert.Equal(t, []string{movieID}, state.FavoriteIDs)
	assert.Empty(t, state.FavoritesLoading)

	notes := f.notes.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, notify.KindSuccess, notes[0].Kind)
	assert.Equal(t, `Фильм "Фильм 01" добавлен в избранное.`, notes[0].Message)
	assert.Equal(t, notify.KindWarning, notes[1].Kind)
	assert.Equal(t, `"Фильм 01" уже в избранном!`, notes[1].Message)
}

func TestToggleFavorite_Remove(t *testing.T) {
	tests := []struct {
		name        string
		answer      bool
		wantErr     error
		wantMarked  bool
		wantDeletes int
	}{
		{name: "confirmed", answer: true, wantMarked: false, wantDeletes: 1},
		{name: "declined", answer: false, wantErr: confirm.ErrDeclined, wantMarked: true, wantDeletes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1)
			ctx := context.Background()
			require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))
			movieID := f.container.Snapshot().Movies[0].ID
			require.NoError(t, f.container.ToggleFavorite(ctx, f.userID, movieID, "Фильм 01", catalog.ActionAdd))
			f.notes.Drain()

			before := f.container.Snapshot()
			f.confirmer.Answer = tt.answer
			err := f.container.ToggleFavorite(ctx, f.userID, movieID, "Фильм 01", catalog.ActionRemove)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, f.container.Snapshot())
				assert.Empty(t, f.notes.Drain())
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantMarked, f.container.IsFavorite(movieID))
			assert.Equal(t, tt.wantDeletes, f.memory.Calls(memory.OpFavoriteDelete))
			assert.Empty(t, f.container.Snapshot().Error)
			assert.Equal(t, []string{`Вы уверены, что хотите удалить "Фильм 01" из избранного?`}, f.confirmer.Prompts())
		})
	}
}

func TestToggleFavorite_RemoteFailureClearsLoadingOnly(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))
	movieID := f.container.Snapshot().Movies[0].ID

	f.memory.Fail(memory.OpFavoriteCreate, errors.New("timeout"))
	err := f.container.ToggleFavorite(ctx, f.userID, movieID, "Фильм 01", catalog.ActionAdd)
	require.Error(t, err)

	state := f.container.Snapshot()
	assert.Empty(t, state.FavoritesLoading)
	assert.Empty(t, state.FavoriteIDs)
	assert.Empty(t, state.Error)

	notes := f.notes.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.KindError, notes[0].Kind)
	assert.Equal(t, "Ошибка при добавлении: timeout", notes[0].Message)
}

// gatedFavorites blocks Exists until release is closed.
type gatedFavorites struct {
	store.FavoriteRepository
	entered chan struct{}
	release chan struct{}
}

func (gated *gatedFavorites) Exists(ctx context.Context, userID, movieID string) (bool, error) {
	gated.entered <- struct{}{}
	<-gated.release
	return gated.FavoriteRepository.Exists(ctx, userID, movieID)
}

/*
TestToggleFavorite_SameIDSerialized verifies that a toggle on a movie already in flight is rejected.
*/
func TestToggleFavorite_SameIDSerialized(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))
	rows := f.container.Snapshot().Movies

	gated := &gatedFavorites{FavoriteRepository: f.backend.Favorites, entered: make(chan struct{}, 2), release: make(chan struct{})}
	f.backend.Favorites = gated
	container := catalog.New(f.backend, f.notes, f.confirmer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, container.ToggleFavorite(ctx, f.userID, rows[0].ID, "A", catalog.ActionAdd))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, container.ToggleFavorite(ctx, f.userID, rows[1].ID, "B", catalog.ActionAdd))
	}()
	<-gated.entered
	<-gated.entered

	assert.Len(t, container.Snapshot().FavoritesLoading, 2)
	err := container.ToggleFavorite(ctx, f.userID, rows[0].ID, "A", catalog.ActionRemove)
	assert.ErrorIs(t, err, catalog.ErrToggleInFlight)

	close(gated.release)
	wg.Wait()

	state := container.Snapshot()
	assert.Len(t, state.FavoriteIDs, 2)
	assert.Empty(t, state.FavoritesLoading)
	assert.Zero(t, f.memory.Calls(memory.OpFavoriteDelete))
}

/*
TestDeleteMovie covers confirmation, the cascade and the refreshed page.
*/
func TestDeleteMovie(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	cursor := catalog.NewCursor()
	require.NoError(t, f.container.LoadPage(ctx, cursor))
	movieID := f.container.Snapshot().Movies[0].ID

	_, err := f.backend.Favorites.Create(ctx, f.userID, movieID)
	require.NoError(t, err)
	_, err = f.backend.Comments.Create(ctx, movieID, f.userID, "комментарий")
	require.NoError(t, err)

	require.NoError(t, f.container.DeleteMovie(ctx, movieID, "Фильм 03", cursor))

	state := f.container.Snapshot()
	assert.Equal(t, 2, state.TotalCount)
	assert.Len(t, state.Movies, 2)

	exists, err := f.backend.Favorites.Exists(ctx, f.userID, movieID)
	require.NoError(t, err)
	assert.False(t, exists)

	comments, err := f.backend.Comments.ListByMovie(ctx, movieID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	notes := f.notes.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, `Фильм "Фильм 03" успешно удален.`, notes[0].Message)
}

func TestDeleteMovie_Declined(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))
	before := f.container.Snapshot()
	calls := f.memory.TotalCalls()

	f.confirmer.Answer = false
	err := f.container.DeleteMovie(ctx, before.Movies[0].ID, "Фильм 03", before.Cursor)

	assert.ErrorIs(t, err, confirm.ErrDeclined)
	assert.Equal(t, before, f.container.Snapshot())
	assert.Equal(t, calls, f.memory.TotalCalls())
	assert.Empty(t, f.notes.Drain())
}

func TestDeleteMovie_RowFailureLeavesList(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))
	before := f.container.Snapshot()

	f.memory.Fail(memory.OpMovieDelete, errors.New("permission denied"))
	err := f.container.DeleteMovie(ctx, before.Movies[0].ID, "Фильм 03", before.Cursor)
	require.Error(t, err)

	assert.Equal(t, before, f.container.Snapshot())
	assert.Zero(t, f.memory.Calls(memory.OpFavoriteDeleteAll))

	notes := f.notes.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.KindError, notes[0].Kind)
}

/*
TestDeleteMovie_PartialCascade verifies that cleanup failures are reported apart from the row deletion.
*/
func TestDeleteMovie_PartialCascade(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, f.container.LoadPage(ctx, catalog.NewCursor()))
	movieID := f.container.Snapshot().Movies[0].ID

	f.memory.Fail(memory.OpCommentDeleteAll, errors.New("boom"))
	err := f.container.DeleteMovie(ctx, movieID, "Фильм 03", catalog.NewCursor())

	var cascade *catalog.CascadeError
	require.ErrorAs(t, err, &cascade)
	assert.NoError(t, cascade.Favorites)
	assert.Error(t, cascade.Comments)

	_, err = f.backend.Movies.FindByID(ctx, movieID)
	assert.Error(t, err)
	assert.Equal(t, 2, f.container.Snapshot().TotalCount)

	notes := f.notes.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, notify.KindSuccess, notes[0].Kind)
	assert.Equal(t, notify.KindWarning, notes[1].Kind)
}
