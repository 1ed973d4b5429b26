// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
)

// Action selects the direction of a favorite toggle.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

var (
	// ErrAlreadyFavorite rejects an add for a movie that is already marked.
	ErrAlreadyFavorite = errors.New("catalog: movie is already a favorite")

	// ErrToggleInFlight rejects a toggle for a movie whose previous toggle has not resolved.
	ErrToggleInFlight = errors.New("catalog: favorite toggle already in flight")
)

// # Favorite Toggle

/*
ToggleFavorite adds or removes the (user, movie) mark.

Description: Toggles on distinct movies may run concurrently; a second toggle
on the same movie is rejected until the first resolves. An add checks for an
existing mark before inserting. A remove asks for confirmation first; a
declined prompt returns confirm.ErrDeclined and changes nothing.

Parameters:
  - context: context.Context
  - userID: string
  - movieID: string
  - title: string (Used in notifications only)
  - action: Action

Returns:
  - error: ErrToggleInFlight, ErrAlreadyFavorite, confirm.ErrDeclined or the remote failure
*/
func (container *Container) ToggleFavorite(context context.Context, userID, movieID, title string, action Action) error {
	if !container.begin(movieID) {
		container.notifier.Notify(context, notify.KindInfo, i18n.T(context, i18n.TitleInfo), i18n.T(context, i18n.FavoriteToggleBusy, title))
		return ErrToggleInFlight
	}
	defer container.finish(movieID)

	if action == ActionRemove {
		return container.removeFavorite(context, userID, movieID, title)
	}
	return container.addFavorite(context, userID, movieID, title)
}

func (container *Container) addFavorite(context context.Context, userID, movieID, title string) error {
	exists, err := container.favorites.Exists(context, userID, movieID)
	if err != nil {
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleAddError), i18n.T(context, i18n.FavoriteCheckFailed, apperr.Message(err)))
		return err
	}

	if exists {
		container.notifier.Notify(context, notify.KindWarning, i18n.T(context, i18n.TitleWarning), i18n.T(context, i18n.FavoriteAlready, title))
		return ErrAlreadyFavorite
	}

	if _, err := container.favorites.Create(context, userID, movieID); err != nil {
		if apperr.HasCode(err, "CONFLICT") {
			container.commitFavorite(movieID, true)
			container.notifier.Notify(context, notify.KindWarning, i18n.T(context, i18n.TitleWarning), i18n.T(context, i18n.FavoriteAlready, title))
			return ErrAlreadyFavorite
		}
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleAddError), i18n.T(context, i18n.FavoriteAddFailed, apperr.Message(err)))
		return err
	}

	container.commitFavorite(movieID, true)
	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.FavoriteAdded, title))
	container.logger.InfoContext(context, "favorite_added", slog.String("user_id", userID), slog.String("movie_id", movieID))
	return nil
}

func (container *Container) removeFavorite(context context.Context, userID, movieID, title string) error {
	if !container.confirmer.Confirm(context, i18n.T(context, i18n.FavoriteConfirmRemove, title)) {
		return confirm.ErrDeclined
	}

	if err := container.favorites.Delete(context, userID, movieID); err != nil {
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleDeleteError), i18n.T(context, i18n.FavoriteRemoveFailed, apperr.Message(err)))
		return err
	}

	container.commitFavorite(movieID, false)
	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.FavoriteRemoved, title))
	container.logger.InfoContext(context, "favorite_removed", slog.String("user_id", userID), slog.String("movie_id", movieID))
	return nil
}

// begin marks movieID as in flight. It reports false when it already was.
func (container *Container) begin(movieID string) bool {
	container.mu.Lock()
	defer container.mu.Unlock()

	if _, busy := container.toggling[movieID]; busy {
		return false
	}
	container.toggling[movieID] = struct{}{}
	return true
}

func (container *Container) finish(movieID string) {
	container.mu.Lock()
	delete(container.toggling, movieID)
	container.mu.Unlock()
}

func (container *Container) commitFavorite(movieID string, marked bool) {
	container.mu.Lock()
	defer container.mu.Unlock()

	if marked {
		container.favoriteIDs[movieID] = struct{}{}
		return
	}
	delete(container.favoriteIDs, movieID)
}
