// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AliceG32/project-frontend-movies/internal/favorites"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	requestutil "github.com/AliceG32/project-frontend-movies/internal/platform/request"
	"github.com/AliceG32/project-frontend-movies/internal/platform/respond"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/pagination"
)

// FavoritesHandler serves the favorites page of the logged-in user.
type FavoritesHandler struct {
	base
}

// Routes returns the /favorites routes.
//
// # Endpoints
//   - GET    /           : Page at ?page, ?sort, ?dir.
//   - DELETE /{movieID}  : Unmark and reload the page (?confirm=true).
//   - GET    /count      : Latest polled count.
func (handler *FavoritesHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.page)
	router.Get("/count", handler.count)
	router.Delete("/{movieID}", handler.remove)

	return router
}

func favoritesCursorFrom(request *http.Request, container *favorites.Container) favorites.Cursor {
	query := request.URL.Query()

	if query.Has("sort") {
		if raw := query.Get("sort"); raw == "" {
			container.ClearSort()
		} else {
			container.SetSort(store.Order{
				Field:     store.ParseSortField(raw),
				Direction: store.ParseSortDirection(query.Get("dir"), store.Desc),
			})
		}
	}

	if query.Has("page") {
		return container.SetPage(requestutil.QueryInt(request, "page", 1))
	}
	return container.Cursor()
}

func (handler *FavoritesHandler) page(writer http.ResponseWriter, request *http.Request) {
	ws, userID, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	cursor := favoritesCursorFrom(request, ws.Favorites)
	if err := ws.Favorites.LoadPage(request.Context(), userID, cursor); err != nil {
		fail(writer, request, ws, err)
		return
	}

	snapshot := ws.Favorites.Snapshot()
	meta := pagination.NewMeta(snapshot.Cursor.Page, constants.PageSize, snapshot.TotalCount)
	respond.Paginated(writer, snapshot, meta, ws.Notes.Drain())
}

func (handler *FavoritesHandler) remove(writer http.ResponseWriter, request *http.Request) {
	ws, userID, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	movieID := requestutil.Param(request, "movieID")
	snapshot := ws.Favorites.Snapshot()

	title := ""
	for _, entry := range snapshot.Movies {
		if entry.ID == movieID {
			title = entry.Title
		}
	}

	if err := ws.Favorites.RemoveFavorite(request.Context(), userID, movieID, title, &snapshot.Cursor); err != nil {
		fail(writer, request, ws, err)
		return
	}
	ws.Counter.Refresh(request.Context(), userID)
	state(writer, ws, ws.Favorites.Snapshot())
}

type countResponse struct {
	Count int  `json:"count"`
	Known bool `json:"known"`
}

// count answers from the poller, polling once when nothing is known yet.
func (handler *FavoritesHandler) count(writer http.ResponseWriter, request *http.Request) {
	ws, userID, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	count, known := ws.Counter.Count()
	if !known {
		ws.Counter.Refresh(request.Context(), userID)
		count, known = ws.Counter.Count()
	}
	state(writer, ws, countResponse{Count: count, Known: known})
}
