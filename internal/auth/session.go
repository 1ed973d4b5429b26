// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
)

// Session is the identity of the logged-in user.
//
// It is a value: collaborators that need the current user id receive it as an
// argument instead of reading durable storage themselves.
type Session struct {
	Authenticated bool   `json:"is_authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
}

// RequireUser returns the user id, or an Unauthorized error when nobody is logged in.
func (session Session) RequireUser(context context.Context) (string, error) {
	if !session.Authenticated || session.UserID == "" {
		return "", apperr.Unauthorized(i18n.T(context, i18n.AuthRequired))
	}
	return session.UserID, nil
}
