// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AliceG32/project-frontend-movies/internal/editor"
	requestutil "github.com/AliceG32/project-frontend-movies/internal/platform/request"
)

// MoviesHandler serves the edit page of one movie and its comment thread.
type MoviesHandler struct {
	base
}

// Routes returns the /movies routes.
//
// # Endpoints
//   - GET   /{movieID}          : Load the movie into the edit form.
//   - PATCH /{movieID}          : Save the changed form fields.
//   - GET   /{movieID}/comments : Load the comment thread.
//   - POST  /{movieID}/comments : Add a comment.
func (handler *MoviesHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{movieID}", handler.load)
	router.Patch("/{movieID}", handler.save)
	router.Get("/{movieID}/comments", handler.thread)
	router.Post("/{movieID}/comments", handler.comment)

	return router
}

func (handler *MoviesHandler) load(writer http.ResponseWriter, request *http.Request) {
	ws, _, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	if err := ws.Editor.Load(request.Context(), requestutil.Param(request, "movieID")); err != nil {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Editor.Snapshot())
}

// save answers with the refreshed state also when nothing changed; the
// notification tells the user so.
func (handler *MoviesHandler) save(writer http.ResponseWriter, request *http.Request) {
	ws, _, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	var form editor.Form
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		fail(writer, request, ws, err)
		return
	}

	if _, err := ws.Editor.Save(request.Context(), requestutil.Param(request, "movieID"), form); !settled(err) {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Editor.Snapshot())
}

func (handler *MoviesHandler) thread(writer http.ResponseWriter, request *http.Request) {
	ws, err := handler.workspace(request)
	if err != nil {
		fail(writer, request, nil, err)
		return
	}

	if err := ws.Comments.Load(request.Context(), requestutil.Param(request, "movieID")); err != nil {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Comments.Snapshot(request.Context()))
}

type commentRequest struct {
	Text string `json:"comment"`
}

func (handler *MoviesHandler) comment(writer http.ResponseWriter, request *http.Request) {
	ws, userID, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, ws, err)
		return
	}

	if _, err := ws.Comments.Add(request.Context(), requestutil.Param(request, "movieID"), userID, input.Text); err != nil {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Comments.Snapshot(request.Context()))
}

// CommentsHandler serves changes to single comments of the loaded thread.
type CommentsHandler struct {
	base
}

// Routes returns the /comments routes.
//
// # Endpoints
//   - PUT    /editing      : Move the edit focus ({"comment_id": null} clears it).
//   - PATCH  /{commentID}  : Replace the text.
//   - DELETE /{commentID}  : Delete (?confirm=true).
func (handler *CommentsHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Put("/editing", handler.focus)
	router.Patch("/{commentID}", handler.edit)
	router.Delete("/{commentID}", handler.remove)

	return router
}

type focusRequest struct {
	CommentID *string `json:"comment_id"`
}

func (handler *CommentsHandler) focus(writer http.ResponseWriter, request *http.Request) {
	ws, err := handler.workspace(request)
	if err != nil {
		fail(writer, request, nil, err)
		return
	}

	var input focusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, ws, err)
		return
	}

	commentID := ""
	if input.CommentID != nil {
		commentID = *input.CommentID
	}
	ws.Comments.SetEditing(commentID)
	state(writer, ws, ws.Comments.Snapshot(request.Context()))
}

func (handler *CommentsHandler) edit(writer http.ResponseWriter, request *http.Request) {
	ws, _, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, ws, err)
		return
	}

	if err := ws.Comments.Edit(request.Context(), requestutil.Param(request, "commentID"), input.Text); err != nil {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Comments.Snapshot(request.Context()))
}

func (handler *CommentsHandler) remove(writer http.ResponseWriter, request *http.Request) {
	ws, _, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	if err := ws.Comments.Remove(request.Context(), requestutil.Param(request, "commentID")); err != nil {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Comments.Snapshot(request.Context()))
}
