// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"errors"
	"net/http"

	"github.com/AliceG32/project-frontend-movies/internal/auth"
	"github.com/AliceG32/project-frontend-movies/internal/catalog"
	"github.com/AliceG32/project-frontend-movies/internal/comments"
	"github.com/AliceG32/project-frontend-movies/internal/draft"
	"github.com/AliceG32/project-frontend-movies/internal/editor"
	"github.com/AliceG32/project-frontend-movies/internal/favorites"
	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	requestutil "github.com/AliceG32/project-frontend-movies/internal/platform/request"
	"github.com/AliceG32/project-frontend-movies/internal/platform/respond"
	"github.com/AliceG32/project-frontend-movies/internal/workspace"
)

// # Shared Handler Plumbing

// base resolves the workspace of the calling browser session.
type base struct {
	registry *workspace.Registry
}

func (handler base) workspace(request *http.Request) (*workspace.Workspace, error) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		return nil, err
	}
	return handler.registry.Get(sessionID), nil
}

// user returns the workspace and the logged-in user id.
func (handler base) user(request *http.Request) (*workspace.Workspace, string, error) {
	ws, err := handler.workspace(request)
	if err != nil {
		return nil, "", err
	}
	userID, err := ws.Auth.Session().RequireUser(request.Context())
	if err != nil {
		return ws, "", err
	}
	return ws, userID, nil
}

// state writes a snapshot together with the notifications raised by the request.
func state(writer http.ResponseWriter, ws *workspace.Workspace, data any) {
	respond.State(writer, data, ws.Notes.Drain())
}

// fail writes err and hands over pending notifications. ws may be nil.
func fail(writer http.ResponseWriter, request *http.Request, ws *workspace.Workspace, err error) {
	if ws == nil {
		respond.Error(writer, request, translate(err))
		return
	}
	respond.Error(writer, request, translate(err), ws.Notes.Drain()...)
}

// settled reports outcomes that still end with a usable state: the container
// already told the user what happened through a notification.
func settled(err error) bool {
	var cascade *catalog.CascadeError
	switch {
	case err == nil:
		return true
	case errors.As(err, &cascade):
		return true
	case errors.Is(err, editor.ErrNoChanges),
		errors.Is(err, draft.ErrNoResults),
		errors.Is(err, draft.ErrSubtitlesNotFound):
		return true
	}
	return false
}

// translate maps container sentinels onto client-safe errors.
func translate(err error) error {
	switch {
	case apperr.IsAppError(err):
		return err
	case errors.Is(err, confirm.ErrDeclined):
		return &apperr.AppError{
			Code:       "CONFIRMATION_REQUIRED",
			Message:    "Repeat the request with confirm=true to proceed",
			HTTPStatus: http.StatusPreconditionRequired,
		}
	case errors.Is(err, catalog.ErrToggleInFlight), errors.Is(err, favorites.ErrRemoveInFlight):
		return &apperr.AppError{Code: "IN_FLIGHT", Message: "The previous request for this movie is still running", HTTPStatus: http.StatusConflict}
	case errors.Is(err, catalog.ErrAlreadyFavorite):
		return apperr.Conflict("Movie is already a favorite")
	case errors.Is(err, catalog.ErrSuperseded),
		errors.Is(err, favorites.ErrSuperseded),
		errors.Is(err, draft.ErrSuperseded),
		errors.Is(err, editor.ErrSuperseded),
		errors.Is(err, comments.ErrSuperseded),
		errors.Is(err, auth.ErrSuperseded):
		return &apperr.AppError{Code: "SUPERSEDED", Message: "A newer request replaced this one", HTTPStatus: http.StatusConflict}
	}
	return err
}
