// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires the HTTP router, the middleware chain and the per-session
state containers into a runnable [http.Server].

Architecture:

  - Every browser session owns a workspace of state containers.
  - Handlers translate requests into container operations and answer with the
    resulting snapshot plus the notifications raised on the way.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AliceG32/project-frontend-movies/internal/platform/config"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	"github.com/AliceG32/project-frontend-movies/internal/platform/middleware"
	"github.com/AliceG32/project-frontend-movies/internal/workspace"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It reports 503 while a dependency is down.
	Readiness http.HandlerFunc

	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Favorites *FavoritesHandler
	Movies    *MoviesHandler
	Comments  *CommentsHandler
	Draft     *DraftHandler
}

// NewHandlers builds every domain handler over the workspace registry.
func NewHandlers(registry *workspace.Registry, liveness, readiness http.HandlerFunc) Handlers {
	shared := base{registry: registry}
	return Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      &AuthHandler{shared},
		Catalog:   &CatalogHandler{shared},
		Favorites: &FavoritesHandler{shared},
		Movies:    &MoviesHandler{shared},
		Comments:  &CommentsHandler{shared},
		Draft:     &DraftHandler{shared},
	}
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, tokens middleware.SessionTokens, h Handlers) *Server {
	r := chi.NewRouter()

	locale, ok := i18n.ParseTag(cfg.DefaultLocale)
	if !ok {
		locale = i18n.DefaultTag()
	}

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Language(locale))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Session(tokens, cfg.IsProduction()))
		api.Use(middleware.Confirmation())

		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/catalog", h.Catalog.Routes())
		api.Mount("/favorites", h.Favorites.Routes())
		api.Mount("/movies", h.Movies.Routes())
		api.Mount("/comments", h.Comments.Routes())
		api.Mount("/draft", h.Draft.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
