// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxutil"
	"github.com/AliceG32/project-frontend-movies/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter holding a UUID and validates its format.
*/
func ID(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)
	validator := &validate.Validator{}
	if err := validator.UUID(name, value).Err(); err != nil {
		return "", err
	}
	return value, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
QueryInt reads an integer query parameter, returning fallback when it is
missing or malformed.
*/
func QueryInt(request *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

/*
Confirmed reports whether the caller accepted the confirmation prompt of a
destructive operation with ?confirm=true.
*/
func Confirmed(request *http.Request) bool {
	accepted, err := strconv.ParseBool(request.URL.Query().Get("confirm"))
	return err == nil && accepted
}

/*
RequiredSessionID returns the browser session id attached by the session middleware.

Returns:
  - string: Session identifier
  - error: apperr.Unauthorized if the request carries no session
*/
func RequiredSessionID(request *http.Request) (string, error) {
	claims := ctxutil.GetSession(request.Context())
	if claims == nil {
		return "", apperr.Unauthorized("Session required")
	}
	return claims.SessionID, nil
}
