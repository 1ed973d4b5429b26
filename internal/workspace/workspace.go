// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package workspace keeps the state containers of every browser session.

A [Workspace] bundles one container per domain area plus the notification
buffer they report to. The [Registry] creates workspaces on first use and
evicts the idle ones, the same way the rate limiter forgets idle clients.
*/
package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/AliceG32/project-frontend-movies/internal/auth"
	"github.com/AliceG32/project-frontend-movies/internal/catalog"
	"github.com/AliceG32/project-frontend-movies/internal/comments"
	"github.com/AliceG32/project-frontend-movies/internal/draft"
	"github.com/AliceG32/project-frontend-movies/internal/editor"
	"github.com/AliceG32/project-frontend-movies/internal/favorites"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// Dependencies are shared by every workspace.
type Dependencies struct {
	Backend   store.Backend
	Metadata  draft.MetadataSearcher
	Subtitles draft.SubtitleFinder
	Storages  auth.Storages
	Confirmer confirm.Confirmer
	Logger    *slog.Logger

	// PollInterval of the favorites counter. Zero uses the default.
	PollInterval time.Duration
}

// # Workspace

// Workspace is the container set of one browser session.
type Workspace struct {
	SessionID string
	Notes     *notify.Buffer

	Auth      *auth.Container
	Catalog   *catalog.Container
	Favorites *favorites.Container
	Counter   *favorites.CountPoller
	Draft     *draft.Container
	Editor    *editor.Container
	Comments  *comments.Container

	// base outlives requests and bounds the counter goroutine.
	base     context.Context
	mu       sync.Mutex
	lastSeen time.Time
}

func newWorkspace(base context.Context, sessionID string, deps Dependencies) *Workspace {
	logger := deps.Logger.With(slog.String("session_id", sessionID))
	notes := notify.NewBuffer()
	sink := notify.Multi{notes, notify.NewLogSink(logger)}

	workspace := &Workspace{
		SessionID: sessionID,
		Notes:     notes,
		Auth:      auth.New(base, deps.Backend.Auth, deps.Storages.For(sessionID), sink, logger),
		Catalog:   catalog.New(deps.Backend, sink, deps.Confirmer, logger),
		Favorites: favorites.New(deps.Backend, sink, deps.Confirmer, logger),
		Counter:   favorites.NewCountPoller(deps.Backend.Favorites, logger, deps.PollInterval),
		Draft:     draft.New(deps.Metadata, deps.Subtitles, deps.Backend.Movies, sink, logger),
		Editor:    editor.New(deps.Backend.Movies, sink, logger),
		Comments:  comments.New(deps.Backend, sink, deps.Confirmer, logger),
		base:      base,
	}

	if session := workspace.Auth.Session(); session.Authenticated {
		workspace.Counter.Start(base, session.UserID)
	}
	return workspace
}

// Login authenticates and starts the favorites counter for the new user.
func (workspace *Workspace) Login(context context.Context, username, password string) (auth.Session, error) {
	session, err := workspace.Auth.Login(context, username, password)
	if err != nil {
		return auth.Session{}, err
	}
	workspace.Counter.Start(workspace.base, session.UserID)
	return session, nil
}

// Logout stops the counter and drops user-owned state before clearing the session.
func (workspace *Workspace) Logout(context context.Context) error {
	workspace.Counter.Stop()
	workspace.Draft.Reset()
	workspace.Editor.Clear()
	workspace.Catalog.ClearFavorites()
	workspace.Favorites.Clear()
	workspace.Comments.Clear()
	return workspace.Auth.Logout(context)
}

// Close stops background work.
func (workspace *Workspace) Close() {
	workspace.Counter.Stop()
}

func (workspace *Workspace) touch(now time.Time) {
	workspace.mu.Lock()
	workspace.lastSeen = now
	workspace.mu.Unlock()
}

func (workspace *Workspace) idleSince(now time.Time) time.Duration {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return now.Sub(workspace.lastSeen)
}

// # Registry

// Registry maps browser session ids to workspaces. Safe for concurrent use.
type Registry struct {
	deps    Dependencies
	base    context.Context
	idleTTL time.Duration
	now     func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewRegistry creates an empty registry. Counter goroutines stop when base is cancelled.
// A non-positive idleTTL uses [constants.WorkspaceIdleTTL].
func NewRegistry(base context.Context, deps Dependencies, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = constants.WorkspaceIdleTTL
	}
	return &Registry{
		deps:       deps,
		base:       base,
		idleTTL:    idleTTL,
		now:        time.Now,
		workspaces: map[string]*Workspace{},
	}
}

// Get returns the workspace of sessionID, creating and hydrating it on first use.
func (registry *Registry) Get(sessionID string) *Workspace {
	now := registry.now()

	registry.mu.Lock()
	workspace, ok := registry.workspaces[sessionID]
	registry.mu.Unlock()
	if ok {
		workspace.touch(now)
		return workspace
	}

	// Hydration reads durable storage and must not hold the lock.
	created := newWorkspace(registry.base, sessionID, registry.deps)

	registry.mu.Lock()
	workspace, ok = registry.workspaces[sessionID]
	if !ok {
		workspace = created
		registry.workspaces[sessionID] = created
	}
	registry.mu.Unlock()

	if ok {
		created.Close()
	} else {
		registry.deps.Logger.DebugContext(registry.base, "workspace_created", slog.String("session_id", sessionID))
	}
	workspace.touch(now)
	return workspace
}

// Len returns the number of live workspaces.
func (registry *Registry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.workspaces)
}

// Evict closes and forgets workspaces idle for longer than the TTL. It returns how many were removed.
func (registry *Registry) Evict() int {
	now := registry.now()

	registry.mu.Lock()
	var idle []*Workspace
	for sessionID, workspace := range registry.workspaces {
		if workspace.idleSince(now) > registry.idleTTL {
			idle = append(idle, workspace)
			delete(registry.workspaces, sessionID)
		}
	}
	registry.mu.Unlock()

	for _, workspace := range idle {
		workspace.Close()
	}
	if len(idle) > 0 {
		registry.deps.Logger.InfoContext(registry.base, "workspaces_evicted", slog.Int("count", len(idle)))
	}
	return len(idle)
}

// Run evicts idle workspaces periodically until context is cancelled, then closes the rest.
func (registry *Registry) Run(context context.Context) {
	ticker := time.NewTicker(registry.idleTTL / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			registry.Evict()
		case <-context.Done():
			registry.Close()
			return
		}
	}
}

// Close stops every workspace and empties the registry.
func (registry *Registry) Close() {
	registry.mu.Lock()
	workspaces := registry.workspaces
	registry.workspaces = map[string]*Workspace{}
	registry.mu.Unlock()

	for _, workspace := range workspaces {
		workspace.Close()
	}
}
