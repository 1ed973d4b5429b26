// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliceG32/project-frontend-movies/internal/api"
	"github.com/AliceG32/project-frontend-movies/internal/auth"
	"github.com/AliceG32/project-frontend-movies/internal/gateway/kinopoisk"
	"github.com/AliceG32/project-frontend-movies/internal/gateway/opensubtitles"
	"github.com/AliceG32/project-frontend-movies/internal/platform/config"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/platform/sec"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/internal/store/memory"
	"github.com/AliceG32/project-frontend-movies/internal/workspace"
	"github.com/AliceG32/project-frontend-movies/pkg/pagination"
)

type fakeMetadata struct{}

func (fakeMetadata) Search(_ context.Context, keyword string) ([]kinopoisk.Candidate, error) {
	return []kinopoisk.Candidate{{
		ExternalID: 42,
		NameRu:     keyword,
		Year:       "1999",
		FilmLength: "2:16",
		Rating:     "8.5",
		Genres:     []kinopoisk.Genre{{Genre: "фантастика"}},
	}}, nil
}

type fakeSubtitles struct{}

func (fakeSubtitles) Find(context.Context, string, int) (*opensubtitles.Subtitle, error) {
	return &opensubtitles.Subtitle{Match: opensubtitles.Match{FileName: "matrix.srt"}, Content: "1\n00:00:01,000 --> 00:00:02,000\nПривет\n"}, nil
}

type envelope struct {
	Data          json.RawMessage       `json:"data"`
	Meta          *pagination.Meta      `json:"meta"`
	Notifications []notify.Notification `json:"notifications"`
	Error         string                `json:"error"`
	Code          string                `json:"code"`
}

type harness struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	memory *memory.Store
	movies []store.Movie
	userID string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	memoryStore := memory.New()
	identity, err := memoryStore.AddUser("demo", "demo1234")
	require.NoError(t, err)

	var movies []store.Movie
	for _, title := range []string{"Брат", "Сталкер", "Солярис"} {
		movies = append(movies, memoryStore.AddMovie(store.Movie{Title: title, ReleaseYear: 1980, DurationMinutes: 100, Description: "Описание", Rating: 8}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := workspace.NewRegistry(ctx, workspace.Dependencies{
		Backend:   memoryStore.Backend(),
		Metadata:  fakeMetadata{},
		Subtitles: fakeSubtitles{},
		Storages:  auth.NewMemoryStorages(),
		Confirmer: confirm.FromContext{},
		Logger:    logger,
	}, 0)

	tokens, err := sec.NewTokenService("a-long-enough-secret", constants.AuthIssuer)
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{CheckStore: memoryStore.Backend().Ping}, logger)
	cfg := &config.Config{ServerPort: "0", Environment: "development", DefaultLocale: "ru"}
	server := api.NewServer(ctx, cfg, logger, tokens, api.NewHandlers(registry, liveness, readiness))

	httpServer := httptest.NewServer(server.Handler())
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		httpServer.Close()
		registry.Close()
		cancel()
	})

	return &harness{
		t:      t,
		server: httpServer,
		client: &http.Client{Jar: jar},
		memory: memoryStore,
		movies: movies,
		userID: identity.ID,
	}
}

func (h *harness) do(method, path string, body any) (int, envelope) {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequest(method, h.server.URL+path, reader)
	require.NoError(h.t, err)
	request.Header.Set("Content-Type", "application/json")

	response, err := h.client.Do(request)
	require.NoError(h.t, err)
	defer response.Body.Close()

	var decoded envelope
	if response.StatusCode != http.StatusNoContent {
		require.NoError(h.t, json.NewDecoder(response.Body).Decode(&decoded))
	}
	return response.StatusCode, decoded
}

func (h *harness) login() {
	h.t.Helper()
	status, _ := h.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "demo", "password": "demo1234"})
	require.Equal(h.t, http.StatusOK, status)
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(raw, &value))
	return value
}

/*
TestAuthFlow verifies the session cookie carries the login across requests.
*/
func TestAuthFlow(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[auth.State](t, body.Data).Authenticated)

	status, body = h.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "demo", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Неверное имя пользователя или пароль", body.Error)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, notify.KindError, body.Notifications[0].Kind)

	h.login()
	status, body = h.do(http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, status)
	session := decode[auth.State](t, body.Data)
	assert.True(t, session.Authenticated)
	assert.Equal(t, h.userID, session.UserID)

	status, _ = h.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = h.do(http.MethodGet, "/api/v1/favorites", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

type catalogPage struct {
	Movies []struct {
		Title string `json:"title"`
	} `json:"movies"`
	FavoriteIDs []string `json:"favorite_ids"`
}

func TestCatalogPage(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, err := h.memory.Backend().Favorites.Create(context.Background(), h.userID, h.movies[0].ID)
	require.NoError(t, err)

	status, body := h.do(http.MethodGet, "/api/v1/catalog?sort=title&dir=asc&page=1", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 3, body.Meta.Total)

	page := decode[catalogPage](t, body.Data)
	require.Len(t, page.Movies, 3)
	assert.Equal(t, "Брат", page.Movies[0].Title)
	assert.Equal(t, []string{h.movies[0].ID}, page.FavoriteIDs)

	status, body = h.do(http.MethodGet, "/api/v1/catalog?q="+url.QueryEscape("стал"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Meta.Total)
}

/*
TestDestructiveRequestsNeedConfirmation verifies ?confirm gates removals.
*/
func TestDestructiveRequestsNeedConfirmation(t *testing.T) {
	h := newHarness(t)
	h.login()

	h.do(http.MethodGet, "/api/v1/catalog", nil)
	status, _ := h.do(http.MethodPost, "/api/v1/catalog/favorites/"+h.movies[1].ID, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := h.do(http.MethodDelete, "/api/v1/catalog/favorites/"+h.movies[1].ID, nil)
	assert.Equal(t, http.StatusPreconditionRequired, status)
	assert.Equal(t, "CONFIRMATION_REQUIRED", body.Code)
	assert.Empty(t, body.Notifications)

	exists, err := h.memory.Backend().Favorites.Exists(context.Background(), h.userID, h.movies[1].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	status, _ = h.do(http.MethodDelete, "/api/v1/catalog/favorites/"+h.movies[1].ID+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = h.do(http.MethodDelete, "/api/v1/catalog/movies/"+h.movies[2].ID+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, status)
	_, err = h.memory.Backend().Movies.FindByID(context.Background(), h.movies[2].ID)
	assert.Error(t, err)
}

func TestDraftFlow(t *testing.T) {
	h := newHarness(t)
	h.login()

	status, _ := h.do(http.MethodPost, "/api/v1/draft/search", map[string]string{"title": "Матрица"})
	require.Equal(t, http.StatusOK, status)

	status, body := h.do(http.MethodPost, "/api/v1/draft/select", map[string]int{"external_id": 42})
	require.Equal(t, http.StatusOK, status)

	var selected struct {
		Draft struct {
			Title           string `json:"title"`
			DurationMinutes int    `json:"duration_minutes"`
			Subtitle        *struct {
				FileName string `json:"file_name"`
			} `json:"subtitle"`
		} `json:"draft"`
		CanSave bool `json:"can_save"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &selected))
	assert.Equal(t, "Матрица", selected.Draft.Title)
	assert.Equal(t, 136, selected.Draft.DurationMinutes)
	require.NotNil(t, selected.Draft.Subtitle, "automatic lookup attaches subtitles")
	assert.True(t, selected.CanSave)

	status, body = h.do(http.MethodPost, "/api/v1/draft/save", nil)
	require.Equal(t, http.StatusCreated, status)
	movie := decode[store.Movie](t, body.Data)
	assert.Equal(t, "Матрица", movie.Title)
	require.NotNil(t, movie.Subtitles)
}

func TestMovieEditAndComments(t *testing.T) {
	h := newHarness(t)
	h.login()
	movieID := h.movies[0].ID

	status, body := h.do(http.MethodGet, "/api/v1/movies/"+movieID, nil)
	require.Equal(t, http.StatusOK, status)
	form := decode[struct {
		Form map[string]string `json:"form"`
	}](t, body.Data).Form

	status, body = h.do(http.MethodPatch, "/api/v1/movies/"+movieID, form)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, notify.KindInfo, body.Notifications[0].Kind)
	assert.Zero(t, h.memory.Calls(memory.OpMovieUpdate))

	status, _ = h.do(http.MethodGet, "/api/v1/movies/"+movieID+"/comments", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = h.do(http.MethodPost, "/api/v1/movies/"+movieID+"/comments", map[string]string{"comment": "Отличный фильм"})
	require.Equal(t, http.StatusOK, status)

	var thread struct {
		Comments []struct {
			ID         string `json:"id"`
			AuthorName string `json:"author_name"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &thread))
	require.Len(t, thread.Comments, 1)
	assert.Equal(t, "demo", thread.Comments[0].AuthorName)

	status, body = h.do(http.MethodDelete, "/api/v1/comments/"+thread.Comments[0].ID+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &thread))
	assert.Empty(t, thread.Comments)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	status, _ := h.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := h.do(http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"status":"ready"`)
}
