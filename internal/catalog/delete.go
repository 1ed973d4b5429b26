// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
)

// CascadeError reports related rows left behind after the movie row itself was deleted.
type CascadeError struct {
	MovieID   string
	Favorites error
	Comments  error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("catalog: cascade for movie %s incomplete: %v", e.MovieID, errors.Join(e.Favorites, e.Comments))
}

func (e *CascadeError) Unwrap() []error {
	var causes []error
	for _, cause := range []error{e.Favorites, e.Comments} {
		if cause != nil {
			causes = append(causes, cause)
		}
	}
	return causes
}

// # Movie Deletion

/*
DeleteMovie removes a movie after confirmation and reloads the page at cursor.

Description: The movie row goes first. Its favorites and then its comments
are removed best-effort afterwards and are never rolled back. When either
cleanup fails the deletion still counts as done: a warning is shown and a
*CascadeError is returned.

Parameters:
  - context: context.Context
  - movieID: string
  - title: string
  - cursor: Cursor (Page reloaded after the deletion)

Returns:
  - error: confirm.ErrDeclined, the row deletion failure or *CascadeError
*/
func (container *Container) DeleteMovie(context context.Context, movieID, title string, cursor Cursor) error {
	if !container.confirmer.Confirm(context, i18n.T(context, i18n.MovieConfirmDelete, title)) {
		return confirm.ErrDeclined
	}

	if err := container.movies.Delete(context, movieID); err != nil {
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleDeleteError), i18n.T(context, i18n.MovieDeleteFailed, apperr.Message(err)))
		return err
	}

	cascade := &CascadeError{MovieID: movieID}
	cascade.Favorites = container.favorites.DeleteByMovie(context, movieID)
	cascade.Comments = container.comments.DeleteByMovie(context, movieID)

	// The page reload records its own failure in State.Error.
	if err := container.LoadPage(context, cursor); err != nil && !errors.Is(err, ErrSuperseded) {
		container.logger.WarnContext(context, "catalog_reload_after_delete_failed", slog.Any("error", err))
	}

	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.MovieDeleted, title))
	container.logger.InfoContext(context, "movie_deleted", slog.String("movie_id", movieID))

	if cascade.Favorites != nil || cascade.Comments != nil {
		container.logger.WarnContext(context, "movie_cascade_incomplete",
			slog.String("movie_id", movieID),
			slog.Any("favorites_error", cascade.Favorites),
			slog.Any("comments_error", cascade.Comments),
		)
		container.notifier.Notify(context, notify.KindWarning, i18n.T(context, i18n.TitleWarning), i18n.T(context, i18n.MovieCascadeFailed, title))
		return cascade
	}

	return nil
}
