// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AliceG32/project-frontend-movies/internal/draft"
	requestutil "github.com/AliceG32/project-frontend-movies/internal/platform/request"
	"github.com/AliceG32/project-frontend-movies/internal/platform/respond"
	"github.com/AliceG32/project-frontend-movies/internal/workspace"
)

// DraftHandler serves the new-movie workflow.
type DraftHandler struct {
	base
}

// Routes returns the /draft routes.
//
// # Endpoints
//   - GET    /               : Current draft state.
//   - POST   /search         : Search the metadata provider.
//   - POST   /select         : Select a result; fetches subtitles when automatic lookup is on.
//   - PATCH  /               : Merge manual form edits.
//   - POST   /subtitles      : Fetch subtitles for the draft title and year.
//   - DELETE /subtitles      : Drop the attached subtitles.
//   - PUT    /auto-subtitles : Switch automatic subtitle lookup.
//   - POST   /save           : Persist the draft as a new movie.
//   - DELETE /               : Discard the draft.
func (handler *DraftHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.show)
	router.Patch("/", handler.update)
	router.Delete("/", handler.reset)
	router.Post("/search", handler.search)
	router.Post("/select", handler.selectCandidate)
	router.Post("/subtitles", handler.fetchSubtitles)
	router.Delete("/subtitles", handler.clearSubtitles)
	router.Put("/auto-subtitles", handler.autoSubtitles)
	router.Post("/save", handler.save)

	return router
}

// authorized resolves the workspace of a logged-in session; the draft workflow
// is only open to users.
func (handler *DraftHandler) authorized(writer http.ResponseWriter, request *http.Request) (*workspace.Workspace, bool) {
	ws, _, err := handler.user(request)
	if err != nil {
		fail(writer, request, ws, err)
		return nil, false
	}
	return ws, true
}

// reply writes the draft state for settled outcomes and the error otherwise.
func reply(writer http.ResponseWriter, request *http.Request, ws *workspace.Workspace, err error) {
	if !settled(err) {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Draft.Snapshot())
}

func (handler *DraftHandler) show(writer http.ResponseWriter, request *http.Request) {
	if ws, ok := handler.authorized(writer, request); ok {
		state(writer, ws, ws.Draft.Snapshot())
	}
}

type searchRequest struct {
	Title string `json:"title"`
}

func (handler *DraftHandler) search(writer http.ResponseWriter, request *http.Request) {
	ws, ok := handler.authorized(writer, request)
	if !ok {
		return
	}

	var input searchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, ws, err)
		return
	}
	reply(writer, request, ws, ws.Draft.Search(request.Context(), input.Title))
}

type selectRequest struct {
	ExternalID int `json:"external_id"`
}

func (handler *DraftHandler) selectCandidate(writer http.ResponseWriter, request *http.Request) {
	ws, ok := handler.authorized(writer, request)
	if !ok {
		return
	}

	var input selectRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, ws, err)
		return
	}

	if err := ws.Draft.SelectByID(request.Context(), input.ExternalID); err != nil {
		fail(writer, request, ws, err)
		return
	}

	snapshot := ws.Draft.Snapshot()
	if snapshot.AutoSubtitles && snapshot.Draft != nil && snapshot.Draft.ReleaseYear != nil {
		reply(writer, request, ws, ws.Draft.FetchSubtitles(request.Context()))
		return
	}
	state(writer, ws, snapshot)
}

func (handler *DraftHandler) update(writer http.ResponseWriter, request *http.Request) {
	ws, ok := handler.authorized(writer, request)
	if !ok {
		return
	}

	var patch draft.Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		fail(writer, request, ws, err)
		return
	}
	ws.Draft.Update(patch)
	state(writer, ws, ws.Draft.Snapshot())
}

func (handler *DraftHandler) fetchSubtitles(writer http.ResponseWriter, request *http.Request) {
	if ws, ok := handler.authorized(writer, request); ok {
		reply(writer, request, ws, ws.Draft.FetchSubtitles(request.Context()))
	}
}

func (handler *DraftHandler) clearSubtitles(writer http.ResponseWriter, request *http.Request) {
	if ws, ok := handler.authorized(writer, request); ok {
		ws.Draft.ClearSubtitles()
		state(writer, ws, ws.Draft.Snapshot())
	}
}

type autoSubtitlesRequest struct {
	Enabled bool `json:"enabled"`
}

func (handler *DraftHandler) autoSubtitles(writer http.ResponseWriter, request *http.Request) {
	ws, ok := handler.authorized(writer, request)
	if !ok {
		return
	}

	var input autoSubtitlesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, ws, err)
		return
	}
	reply(writer, request, ws, ws.Draft.SetAutoSubtitles(request.Context(), input.Enabled))
}

func (handler *DraftHandler) save(writer http.ResponseWriter, request *http.Request) {
	ws, ok := handler.authorized(writer, request)
	if !ok {
		return
	}

	movie, err := ws.Draft.Save(request.Context())
	if err != nil {
		fail(writer, request, ws, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Data: movie, Notifications: ws.Notes.Drain()})
}

func (handler *DraftHandler) reset(writer http.ResponseWriter, request *http.Request) {
	if ws, ok := handler.authorized(writer, request); ok {
		ws.Draft.Reset()
		state(writer, ws, ws.Draft.Snapshot())
	}
}
