// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/AliceG32/project-frontend-movies/internal/catalog"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	requestutil "github.com/AliceG32/project-frontend-movies/internal/platform/request"
	"github.com/AliceG32/project-frontend-movies/internal/platform/respond"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/pagination"
)

// CatalogHandler serves the paginated catalog and its row actions.
type CatalogHandler struct {
	base
}

// Routes returns the /catalog routes.
//
// # Endpoints
//   - GET    /                      : Page at ?page, ?sort, ?dir, ?q.
//   - POST   /favorites/{movieID}   : Mark a favorite.
//   - DELETE /favorites/{movieID}   : Unmark a favorite (?confirm=true).
//   - DELETE /movies/{movieID}      : Delete a movie and its related rows (?confirm=true).
func (handler *CatalogHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.page)
	router.Post("/favorites/{movieID}", handler.addFavorite)
	router.Delete("/favorites/{movieID}", handler.removeFavorite)
	router.Delete("/movies/{movieID}", handler.deleteMovie)

	return router
}

// cursorFrom applies the query parameters present on the request to the
// container cursor. Search and sort go first since both return to page 1.
func cursorFrom(request *http.Request, container *catalog.Container) catalog.Cursor {
	query := request.URL.Query()

	if query.Has("q") {
		if strings.TrimSpace(query.Get("q")) == "" {
			container.ClearSearch()
		} else {
			container.SetSearchText(query.Get("q"))
			container.CommitSearch()
		}
	}

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

/*
page loads the catalog page and the favorite-id set concurrently.

The favorite ids are only loaded for a logged-in session.
*/
func (handler *CatalogHandler) page(writer http.ResponseWriter, request *http.Request) {
	ws, err := handler.workspace(request)
	if err != nil {
		fail(writer, request, nil, err)
		return
	}

	cursor := cursorFrom(request, ws.Catalog)
	session := ws.Auth.Session()

	group, groupContext := errgroup.WithContext(request.Context())
	group.Go(func() error {
		return ws.Catalog.LoadPage(groupContext, cursor)
	})
	if session.Authenticated {
		group.Go(func() error {
			ws.Catalog.LoadFavoriteIDs(groupContext, session.UserID)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		fail(writer, request, ws, err)
		return
	}

	snapshot := ws.Catalog.Snapshot()
	meta := pagination.NewMeta(snapshot.Cursor.Page, constants.PageSize, snapshot.TotalCount)
	respond.Paginated(writer, snapshot, meta, ws.Notes.Drain())
}

// titleOf finds the display title of a loaded row, for notifications.
func titleOf(snapshot catalog.State, movieID string) string {
	for _, row := range snapshot.Movies {
		if row.ID == movieID {
			return row.Title
		}
	}
	return ""
}

func (handler *CatalogHandler) toggle(writer http.ResponseWriter, request *http.Request, action catalog.Action) {
	ws, userID, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	movieID := requestutil.Param(request, "movieID")
	title := titleOf(ws.Catalog.Snapshot(), movieID)

	if err := ws.Catalog.ToggleFavorite(request.Context(), userID, movieID, title, action); err != nil {
		fail(writer, request, ws, err)
		return
	}
	ws.Counter.Refresh(request.Context(), userID)
	state(writer, ws, ws.Catalog.Snapshot())
}

func (handler *CatalogHandler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, catalog.ActionAdd)
}

func (handler *CatalogHandler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, catalog.ActionRemove)
}

func (handler *CatalogHandler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	ws, _, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return
	}

	movieID := requestutil.Param(request, "movieID")
	snapshot := ws.Catalog.Snapshot()

	err = ws.Catalog.DeleteMovie(request.Context(), movieID, titleOf(snapshot, movieID), snapshot.Cursor)
	if !settled(err) {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Catalog.Snapshot())
}
