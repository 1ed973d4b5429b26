// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth verifies credentials against the remote store and owns the
[Session] of one browser.

The session is persisted as three string keys in durable [Storage] so a
reload, or a new process backed by Redis, comes back logged in.
*/
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/platform/validate"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// ErrSuperseded is returned by a login that finished after a logout or a newer login.
var ErrSuperseded = errors.New("auth: superseded by a newer request")

// State is a copy of the container.
type State struct {
	Session
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Container is safe for concurrent use.
type Container struct {
	authenticator store.Authenticator
	storage       Storage
	notifier      notify.Sink
	logger        *slog.Logger

	mu         sync.Mutex
	session    Session
	loading    bool
	err        string
	generation uint64
}

/*
New creates a container hydrated from durable storage.

A storage read failure is logged and leaves the container logged out.
*/
func New(context context.Context, authenticator store.Authenticator, storage Storage, notifier notify.Sink, logger *slog.Logger) *Container {
	container := &Container{
		authenticator: authenticator,
		storage:       storage,
		notifier:      notifier,
		logger:        logger,
	}

	session, err := container.hydrate(context)
	if err != nil {
		logger.WarnContext(context, "auth_hydrate_failed", slog.Any("error", err))
		return container
	}
	container.session = session
	return container
}

func (container *Container) hydrate(context context.Context) (Session, error) {
	values := make(map[string]string, len(sessionKeys))
	for _, key := range sessionKeys {
		value, err := container.storage.Get(context, key)
		if err != nil {
			return Session{}, err
		}
		values[key] = value
	}

	return Session{
		Authenticated: values[constants.StorageKeyAuthenticated] == "true",
		UserID:        values[constants.StorageKeyUserID],
		Username:      values[constants.StorageKeyUsername],
	}, nil
}

// Session returns the current identity.
func (container *Container) Session() Session {
	container.mu.Lock()
	defer container.mu.Unlock()
	return container.session
}

// Snapshot returns a copy of the current state.
func (container *Container) Snapshot() State {
	container.mu.Lock()
	defer container.mu.Unlock()
	return State{Session: container.session, Loading: container.loading, Error: container.err}
}

// # Login / Logout

/*
Login calls the credential check procedure.

Description: Zero returned rows means the credentials were rejected. On success
the three session keys are written to durable storage before the session flips
to authenticated. A login overtaken by Logout writes nothing, and keys written
while a Logout ran are removed again.

Returns:
  - The new [Session].
  - A validation error for blank credentials, with no remote call.
  - An Unauthorized error for rejected credentials.
*/
func (container *Container) Login(context context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, validate.RequiredError("username", i18n.T(context, i18n.AuthCredentialsRequired))
	}

	container.mu.Lock()
	container.generation++
	token := container.generation
	container.loading = true
	container.err = ""
	container.mu.Unlock()

	session, err := container.authenticate(context, username, password)
	persisted := false
	if err == nil && container.current(token) {
		err = container.persist(context, session)
		persisted = err == nil
	}

	container.mu.Lock()
	if token != container.generation {
		// Keys written while a Logout ran would log the browser back in on the
		// next hydration. A newer login owns the keys and is left alone.
		loggedOut := !container.loading && !container.session.Authenticated
		container.mu.Unlock()
		if persisted && loggedOut {
			container.forget(context)
		}
		return Session{}, ErrSuperseded
	}
	container.loading = false
	if err != nil {
		container.err = apperr.Message(err)
		container.session = Session{}
	} else {
		container.session = session
	}
	container.mu.Unlock()

	if err != nil {
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleLoginError), apperr.Message(err))
		return Session{}, err
	}

	container.logger.InfoContext(context, "user_logged_in", slog.String("user_id", session.UserID))
	return session, nil
}

func (container *Container) authenticate(context context.Context, username, password string) (Session, error) {
	identities, err := container.authenticator.Authenticate(context, username, password)
	if err != nil {
		container.logger.WarnContext(context, "auth_rpc_failed", slog.Any("error", err))
		return Session{}, apperr.Remote(i18n.T(context, i18n.AuthServerError, apperr.Message(err)), err)
	}
	if len(identities) == 0 {
		return Session{}, apperr.Unauthorized(i18n.T(context, i18n.AuthInvalidCredentials))
	}

	identity := identities[0]
	return Session{Authenticated: true, UserID: identity.ID, Username: identity.Name}, nil
}

func (container *Container) current(token uint64) bool {
	container.mu.Lock()
	defer container.mu.Unlock()
	return token == container.generation
}

// persist writes the three session keys together.
func (container *Container) persist(context context.Context, session Session) error {
	err := container.storage.Set(context, map[string]string{
		constants.StorageKeyAuthenticated: "true",
		constants.StorageKeyUserID:        session.UserID,
		constants.StorageKeyUsername:      session.Username,
	})
	if err != nil {
		container.logger.ErrorContext(context, "auth_persist_failed", slog.Any("error", err))
		return apperr.Internal(err)
	}
	return nil
}

func (container *Container) forget(context context.Context) {
	if err := container.storage.Remove(context, sessionKeys...); err != nil {
		container.logger.ErrorContext(context, "auth_clear_failed", slog.Any("error", err))
	}
}

// Logout clears the session fields at once and removes the durable keys. No remote call is made.
func (container *Container) Logout(context context.Context) error {
	container.mu.Lock()
	container.generation++
	userID := container.session.UserID
	container.session = Session{}
	container.loading = false
	container.err = ""
	container.mu.Unlock()

	if err := container.storage.Remove(context, sessionKeys...); err != nil {
		container.logger.ErrorContext(context, "auth_clear_failed", slog.Any("error", err))
		return err
	}

	container.logger.InfoContext(context, "user_logged_out", slog.String("user_id", userID))
	return nil
}
