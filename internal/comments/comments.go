// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comments owns the comment thread of one movie and its single edit focus.
package comments

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/platform/validate"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/pointer"
	"github.com/AliceG32/project-frontend-movies/pkg/slice"
)

// ErrSuperseded is returned by a load whose result was dropped because a newer load was issued.
var ErrSuperseded = errors.New("comments: superseded by a newer request")

// Entry is a comment as displayed, with its author resolved.
type Entry struct {
	store.Comment
	Edited bool `json:"edited"`
}

// State is a consistent copy of the container.
type State struct {
	MovieID    string  `json:"movie_id"`
	MovieTitle string  `json:"movie_title"`
	Comments   []Entry `json:"comments"`
	Loading    bool    `json:"loading"`
	Submitting bool    `json:"submitting"`
	Error      string  `json:"error,omitempty"`
	EditingID  *string `json:"editing_id"`
}

// Container is safe for concurrent use. The lock is never held across a remote call.
type Container struct {
	movies    store.MovieRepository
	comments  store.CommentRepository
	notifier  notify.Sink
	confirmer confirm.Confirmer
	logger    *slog.Logger

	mu         sync.Mutex
	movieID    string
	movieTitle string
	thread     []store.Comment
	loading    bool
	submitting int
	err        string
	editingID  string
	generation uint64
}

// New constructs an empty [Container] over the store backend.
func New(backend store.Backend, notifier notify.Sink, confirmer confirm.Confirmer, logger *slog.Logger) *Container {
	return &Container{
		movies:    backend.Movies,
		comments:  backend.Comments,
		notifier:  notifier,
		confirmer: confirmer,
		logger:    logger,
		thread:    []store.Comment{},
	}
}

// Snapshot returns a copy of the current state. Missing author names get the localized placeholder.
func (container *Container) Snapshot(context context.Context) State {
	container.mu.Lock()
	defer container.mu.Unlock()

	anonymous := i18n.T(context, i18n.CommentAnonymous)
	entries := slice.Map(container.thread, func(comment store.Comment) Entry {
		if comment.AuthorName == "" {
			comment.AuthorName = anonymous
		}
		return Entry{Comment: comment, Edited: comment.Edited()}
	})
	if entries == nil {
		entries = []Entry{}
	}

	state := State{
		MovieID:    container.movieID,
		MovieTitle: container.movieTitle,
		Comments:   entries,
		Loading:    container.loading,
		Submitting: container.submitting > 0,
		Error:      container.err,
	}
	if container.editingID != "" {
		state.EditingID = pointer.To(container.editingID)
	}
	return state
}

// # Loading

/*
Load reads the movie title and then the thread, newest first.

Either read failing leaves the thread empty and records the error.
*/
func (container *Container) Load(context context.Context, movieID string) error {
	container.mu.Lock()
	container.generation++
	token := container.generation
	container.movieID = movieID
	container.loading = true
	container.err = ""
	container.mu.Unlock()

	title, thread, err := container.fetch(context, movieID)

	container.mu.Lock()
	defer container.mu.Unlock()

	if token != container.generation {
		return ErrSuperseded
	}

	container.loading = false
	container.editingID = ""
	if err != nil {
		container.err = err.Error()
		container.movieTitle = ""
		container.thread = []store.Comment{}
		return err
	}

	container.movieTitle = title
	container.thread = thread
	return nil
}

func (container *Container) fetch(context context.Context, movieID string) (string, []store.Comment, error) {
	movie, err := container.movies.FindByID(context, movieID)
	if err != nil {
		container.logger.WarnContext(context, "comments_movie_lookup_failed", slog.String("movie_id", movieID), slog.Any("error", err))
		return "", nil, apperr.Remote(i18n.T(context, i18n.CommentMovieMissing), err)
	}

	title := movie.Title
	if title == "" {
		title = i18n.T(context, i18n.CommentUnknownMovie)
	}

	thread, err := container.comments.ListByMovie(context, movieID)
	if err != nil {
		return "", nil, apperr.Remote(i18n.T(context, i18n.CommentLoadFailed, apperr.Message(err)), err)
	}
	if thread == nil {
		thread = []store.Comment{}
	}
	return title, thread, nil
}

// # Mutations

// Add inserts a comment and prepends it to the thread without a refetch.
func (container *Container) Add(context context.Context, movieID, userID, text string) (*store.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validate.RequiredError("comment", i18n.T(context, i18n.CommentEmpty))
	}

	container.begin()
	comment, err := container.comments.Create(context, movieID, userID, text)
	container.end()

	if err != nil {
		container.logger.WarnContext(context, "comment_add_failed", slog.String("movie_id", movieID), slog.Any("error", err))
		container.fail(context, i18n.TitleAddError, i18n.CommentAddFailed)
		return nil, err
	}

	container.mu.Lock()
	if container.movieID == movieID {
		container.thread = append([]store.Comment{*comment}, container.thread...)
	}
	container.mu.Unlock()

	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.CommentAdded))
	return comment, nil
}

/*
Edit replaces the text of a comment in the thread and clears the edit focus.

A comment no longer in the thread is a silent no-op: nothing is sent and only
the focus is cleared.
*/
func (container *Container) Edit(context context.Context, commentID, text string) error {
	if strings.TrimSpace(text) == "" {
		return validate.RequiredError("comment", i18n.T(context, i18n.CommentEmpty))
	}

	container.mu.Lock()
	present := container.indexOf(commentID) >= 0
	if !present {
		container.editingID = ""
	}
	container.mu.Unlock()
	if !present {
		return nil
	}

	now := time.Now().UTC()

	container.begin()
	err := container.comments.UpdateText(context, commentID, text, now)
	container.end()

	if err != nil {
		container.logger.WarnContext(context, "comment_update_failed", slog.String("comment_id", commentID), slog.Any("error", err))
		container.fail(context, i18n.TitleSaveError, i18n.CommentUpdateFailed)
		return err
	}

	container.mu.Lock()
	container.editingID = ""
	if index := container.indexOf(commentID); index >= 0 {
		container.thread[index].Text = text
		container.thread[index].UpdatedAt = now
	}
	container.mu.Unlock()

	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.CommentUpdated))
	return nil
}

// Remove deletes a comment after confirmation. A declined prompt returns confirm.ErrDeclined and changes nothing.
func (container *Container) Remove(context context.Context, commentID string) error {
	if !container.confirmer.Confirm(context, i18n.T(context, i18n.CommentConfirmDelete)) {
		return confirm.ErrDeclined
	}

	container.begin()
	err := container.comments.Delete(context, commentID)
	container.end()

	if err != nil {
		container.logger.WarnContext(context, "comment_delete_failed", slog.String("comment_id", commentID), slog.Any("error", err))
		container.fail(context, i18n.TitleDeleteError, i18n.CommentDeleteFailed)
		return err
	}

	container.mu.Lock()
	container.thread = slice.Filter(container.thread, func(comment store.Comment) bool { return comment.ID != commentID })
	if container.thread == nil {
		container.thread = []store.Comment{}
	}
	if container.editingID == commentID {
		container.editingID = ""
	}
	container.mu.Unlock()

	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.CommentDeleted))
	return nil
}

// SetEditing moves the edit focus to commentID. An empty id clears it.
func (container *Container) SetEditing(commentID string) {
	container.mu.Lock()
	container.editingID = commentID
	container.mu.Unlock()
}

// # Helpers

// indexOf returns the position of commentID in the thread, or -1. Callers hold mu.
func (container *Container) indexOf(commentID string) int {
	for i, comment := range container.thread {
		if comment.ID == commentID {
			return i
		}
	}
	return -1
}

// begin marks a mutation in flight and clears the error of the previous one.
func (container *Container) begin() {
	container.mu.Lock()
	container.submitting++
	container.err = ""
	container.mu.Unlock()
}

// fail records a failed mutation in the error field and raises an error toast.
func (container *Container) fail(context context.Context, title, key string) {
	message := i18n.T(context, key)

	container.mu.Lock()
	container.err = message
	container.mu.Unlock()

	container.notifier.Notify(context, notify.KindError, i18n.T(context, title), message)
}

func (container *Container) end() {
	container.mu.Lock()
	container.submitting--
	container.mu.Unlock()
}

// Clear drops the open thread and any pending edit. Loads and mutations still
// in flight no longer match the open movie and leave the state untouched.
func (container *Container) Clear() {
	container.mu.Lock()
	defer container.mu.Unlock()

	container.generation++
	container.movieID = ""
	container.movieTitle = ""
	container.thread = []store.Comment{}
	container.loading = false
	container.err = ""
	container.editingID = ""
}
