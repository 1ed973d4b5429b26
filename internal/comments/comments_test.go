// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comments_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliceG32/project-frontend-movies/internal/comments"
	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
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
	container *comments.Container
	movie     store.Movie
	userID    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	memoryStore := memory.New()
	identity, err := memoryStore.AddUser("demo", "demo1234")
	require.NoError(t, err)

	f := &fixture{
		memory:    memoryStore,
		backend:   memoryStore.Backend(),
		notes:     notify.NewBuffer(),
		confirmer: &confirm.Recorder{Answer: true},
		movie:     memoryStore.AddMovie(store.Movie{Title: "Сталкер", ReleaseYear: 1979, DurationMinutes: 163, Rating: 8.1}),
		userID:    identity.ID,
	}
	f.container = comments.New(f.backend, f.notes, f.confirmer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

// seed stores comments oldest first and loads the thread.
func (f *fixture) seed(t *testing.T, texts ...string) []store.Comment {
	t.Helper()

	var created []store.Comment
	for _, text := range texts {
		comment, err := f.backend.Comments.Create(context.Background(), f.movie.ID, f.userID, text)
		require.NoError(t, err)
		created = append(created, *comment)
	}
	require.NoError(t, f.container.Load(context.Background(), f.movie.ID))
	return created
}

func TestLoad(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "первый", "второй")

	state := f.container.Snapshot(context.Background())
	assert.Equal(t, "Сталкер", state.MovieTitle)
	require.Len(t, state.Comments, 2)
	assert.Equal(t, "второй", state.Comments[0].Text)
	assert.Equal(t, "demo", state.Comments[0].AuthorName)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
}

func TestLoad_AnonymousAuthor(t *testing.T) {
	f := newFixture(t)
	_, err := f.backend.Comments.Create(context.Background(), f.movie.ID, "deleted-user", "без автора")
	require.NoError(t, err)

	require.NoError(t, f.container.Load(context.Background(), f.movie.ID))

	state := f.container.Snapshot(context.Background())
	require.Len(t, state.Comments, 1)
	assert.Equal(t, "Аноним", state.Comments[0].AuthorName)
}

func TestLoad_UnknownMovieTitle(t *testing.T) {
	f := newFixture(t)
	untitled := f.memory.AddMovie(store.Movie{ReleaseYear: 2000})

	require.NoError(t, f.container.Load(context.Background(), untitled.ID))
	assert.Equal(t, "Неизвестный фильм", f.container.Snapshot(context.Background()).MovieTitle)
}

/*
TestLoad_Failures verifies that either read failing empties the thread and records the message.
*/
func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name      string
		op        memory.Op
		movieID   func(f *fixture) string
		wantError string
	}{
		{"movie_missing", memory.OpMovieFind, func(f *fixture) string { return "missing" }, "Фильм не найден или ошибка базы данных."},
		{"movie_lookup_failed", memory.OpMovieFind, func(f *fixture) string { return f.movie.ID }, "Фильм не найден или ошибка базы данных."},
		{"thread_failed", memory.OpCommentList, func(f *fixture) string { return f.movie.ID }, "Ошибка при загрузке комментариев: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seed(t, "существующий")
			f.memory.Fail(tt.op, errors.New("timeout"))

			err := f.container.Load(context.Background(), tt.movieID(f))
			require.Error(t, err)

			state := f.container.Snapshot(context.Background())
			assert.Equal(t, tt.wantError, state.Error)
			assert.Empty(t, state.Comments)
			assert.False(t, state.Loading)
		})
	}
}

func TestAdd_PrependsWithoutRefetch(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "старый")
	listCalls := f.memory.Calls(memory.OpCommentList)

	comment, err := f.container.Add(context.Background(), f.movie.ID, f.userID, "новый")
	require.NoError(t, err)
	assert.Equal(t, "новый", comment.Text)

	state := f.container.Snapshot(context.Background())
	require.Len(t, state.Comments, 2)
	assert.Equal(t, "новый", state.Comments[0].Text)
	assert.False(t, state.Submitting)
	assert.Equal(t, listCalls, f.memory.Calls(memory.OpCommentList))

	notes := f.notes.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.KindSuccess, notes[0].Kind)
}

func TestAdd_Rejected(t *testing.T) {
	t.Run("blank_text", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.container.Add(context.Background(), f.movie.ID, f.userID, "   ")
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
		assert.Zero(t, f.memory.Calls(memory.OpCommentCreate))
	})

	t.Run("remote_failure", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "старый")
		f.memory.Fail(memory.OpCommentCreate, errors.New("denied"))

		_, err := f.container.Add(context.Background(), f.movie.ID, f.userID, "новый")
		require.Error(t, err)

		state := f.container.Snapshot(context.Background())
		assert.Len(t, state.Comments, 1)
		assert.Equal(t, "Не удалось добавить комментарий.", state.Error)
		notes := f.notes.Drain()
		require.Len(t, notes, 1)
		assert.Equal(t, notify.KindError, notes[0].Kind)
		assert.Equal(t, "Не удалось добавить комментарий.", notes[0].Message)
	})
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	created := f.seed(t, "опечатка")
	f.container.SetEditing(created[0].ID)

	require.NoError(t, f.container.Edit(context.Background(), created[0].ID, "исправлено"))

	state := f.container.Snapshot(context.Background())
	assert.Nil(t, state.EditingID)
	require.Len(t, state.Comments, 1)
	assert.Equal(t, "исправлено", state.Comments[0].Text)
	assert.True(t, state.Comments[0].Edited)
}

/*
TestEdit_AbsentComment verifies that an id missing from the thread leaves it
unchanged, sends nothing and still clears the edit focus.
*/
func TestEdit_AbsentComment(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "один")
	f.container.SetEditing("gone")
	before := f.container.Snapshot(context.Background())

	require.NoError(t, f.container.Edit(context.Background(), "gone", "текст"))

	after := f.container.Snapshot(context.Background())
	assert.Equal(t, before.Comments, after.Comments)
	assert.Nil(t, after.EditingID)
	assert.Zero(t, f.memory.Calls(memory.OpCommentUpdate))
}

func TestEdit_RemoteFailureKeepsFocus(t *testing.T) {
	f := newFixture(t)
	created := f.seed(t, "один")
	f.container.SetEditing(created[0].ID)
	f.memory.Fail(memory.OpCommentUpdate, errors.New("denied"))

	require.Error(t, f.container.Edit(context.Background(), created[0].ID, "два"))

	state := f.container.Snapshot(context.Background())
	require.NotNil(t, state.EditingID)
	assert.Equal(t, created[0].ID, *state.EditingID)
	assert.Equal(t, "один", state.Comments[0].Text)
	assert.Equal(t, "Не удалось обновить комментарий.", state.Error)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	created := f.seed(t, "один", "два")
	f.container.SetEditing(created[0].ID)

	require.NoError(t, f.container.Remove(context.Background(), created[0].ID))

	state := f.container.Snapshot(context.Background())
	require.Len(t, state.Comments, 1)
	assert.Equal(t, "два", state.Comments[0].Text)
	assert.Nil(t, state.EditingID)
	assert.Equal(t, []string{"Вы уверены, что хотите удалить этот комментарий?"}, f.confirmer.Prompts())
	assert.Equal(t, "Комментарий удален.", f.notes.Drain()[0].Message)
}

/*
TestRemove_Declined verifies that a declined prompt is a cancellation, not an error.
*/
func TestRemove_Declined(t *testing.T) {
	f := newFixture(t)
	created := f.seed(t, "один")
	f.confirmer.Answer = false
	before := f.container.Snapshot(context.Background())

	err := f.container.Remove(context.Background(), created[0].ID)
	assert.ErrorIs(t, err, confirm.ErrDeclined)

	after := f.container.Snapshot(context.Background())
	assert.Equal(t, before, after)
	assert.Empty(t, after.Error)
	assert.Zero(t, f.memory.Calls(memory.OpCommentDelete))
	assert.Empty(t, f.notes.Drain())
}

func TestRemove_RemoteFailure(t *testing.T) {
	f := newFixture(t)
	created := f.seed(t, "один")
	f.memory.Fail(memory.OpCommentDelete, errors.New("denied"))

	require.Error(t, f.container.Remove(context.Background(), created[0].ID))

	state := f.container.Snapshot(context.Background())
	assert.Len(t, state.Comments, 1)
	assert.Equal(t, "Не удалось удалить комментарий.", state.Error)
	assert.Equal(t, notify.KindError, f.notes.Drain()[0].Kind)

	// A successful retry clears the recorded failure.
	f.memory.Fail(memory.OpCommentDelete, nil)
	require.NoError(t, f.container.Remove(context.Background(), created[0].ID))
	state = f.container.Snapshot(context.Background())
	assert.Empty(t, state.Comments)
	assert.Empty(t, state.Error)
}
