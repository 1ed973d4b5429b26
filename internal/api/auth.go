// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/AliceG32/project-frontend-movies/internal/platform/request"
)

// AuthHandler serves login, logout and the current session.
type AuthHandler struct {
	base
}

// Routes returns the /auth routes.
//
// # Endpoints
//   - POST /login   : Verifies credentials and stores the session.
//   - POST /logout  : Clears the session. No remote call.
//   - GET  /session : Current session state.
func (handler *AuthHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Get("/session", handler.session)

	return router
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (handler *AuthHandler) login(writer http.ResponseWriter, request *http.Request) {
	ws, err := handler.workspace(request)
	if err != nil {
		fail(writer, request, nil, err)
		return
	}

	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, ws, err)
		return
	}

	if _, err := ws.Login(request.Context(), input.Username, input.Password); err != nil {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Auth.Snapshot())
}

func (handler *AuthHandler) logout(writer http.ResponseWriter, request *http.Request) {
	ws, err := handler.workspace(request)
	if err != nil {
		fail(writer, request, nil, err)
		return
	}

	if err := ws.Logout(request.Context()); err != nil {
		fail(writer, request, ws, err)
		return
	}
	state(writer, ws, ws.Auth.Snapshot())
}

func (handler *AuthHandler) session(writer http.ResponseWriter, request *http.Request) {
	ws, err := handler.workspace(request)
	if err != nil {
		fail(writer, request, nil, err)
		return
	}
	state(writer, ws, ws.Auth.Snapshot())
}
