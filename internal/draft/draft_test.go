// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliceG32/project-frontend-movies/internal/draft"
	"github.com/AliceG32/project-frontend-movies/internal/gateway/kinopoisk"
	"github.com/AliceG32/project-frontend-movies/internal/gateway/opensubtitles"
	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/store/memory"
	"github.com/AliceG32/project-frontend-movies/pkg/pointer"
)

// # Fakes

type fakeMetadata struct {
	mu         sync.Mutex
	candidates []kinopoisk.Candidate
	err        error
	keywords   []string
}

func (fake *fakeMetadata) Search(_ context.Context, keyword string) ([]kinopoisk.Candidate, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.keywords = append(fake.keywords, keyword)
	return fake.candidates, fake.err
}

func (fake *fakeMetadata) calls() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.keywords)
}

type fakeSubtitles struct {
	mu       sync.Mutex
	subtitle *opensubtitles.Subtitle
	err      error
	queries  []string
	gate     chan struct{}
}

func (fake *fakeSubtitles) Find(_ context.Context, title string, year int) (*opensubtitles.Subtitle, error) {
	fake.mu.Lock()
	fake.queries = append(fake.queries, fmt.Sprintf("%s %d", title, year))
	gate := fake.gate
	fake.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return fake.subtitle, fake.err
}

func (fake *fakeSubtitles) calls() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.queries)
}

type fixture struct {
	metadata  *fakeMetadata
	subtitles *fakeSubtitles
	memory    *memory.Store
	notes     *notify.Buffer
	container *draft.Container
}

func newFixture() *fixture {
	f := &fixture{
		metadata:  &fakeMetadata{},
		subtitles: &fakeSubtitles{subtitle: &opensubtitles.Subtitle{Match: opensubtitles.Match{FileName: "matrix.srt"}, Content: "1\n00:00:01,000 --> 00:00:02,000\nПривет\n"}},
		memory:    memory.New(),
		notes:     notify.NewBuffer(),
	}
	f.container = draft.New(f.metadata, f.subtitles, f.memory.Backend().Movies, f.notes, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func matrix() kinopoisk.Candidate {
	return kinopoisk.Candidate{
		ExternalID:  301,
		NameRu:      "Матрица",
		Year:        "1999",
		FilmLength:  "2:16",
		Description: "Хакер Нео узнает правду.",
		Rating:      "8.5",
	}
}

// # Search

func TestSearch_BlankTitleFailsFast(t *testing.T) {
	f := newFixture()

	err := f.container.Search(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
	assert.Zero(t, f.metadata.calls())
	assert.Equal(t, draft.PhaseEmpty, f.container.Snapshot().Phase)
}

/*
TestSearch_NoResults verifies that an empty result set is an error and never partially populates results.
*/
func TestSearch_NoResults(t *testing.T) {
	f := newFixture()
	f.metadata.candidates = []kinopoisk.Candidate{}

	err := f.container.Search(context.Background(), "Matrix")
	assert.ErrorIs(t, err, draft.ErrNoResults)

	state := f.container.Snapshot()
	assert.Empty(t, state.Results)
	assert.Equal(t, `Фильмы по запросу "Matrix" не найдены`, state.Error)
	assert.Equal(t, draft.PhaseEmpty, state.Phase)

	notes := f.notes.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.KindError, notes[0].Kind)
}

func TestSearch_ProviderFailure(t *testing.T) {
	f := newFixture()
	f.metadata.err = apperr.Remote("Kinopoisk API error: 401 Unauthorized", nil)

	err := f.container.Search(context.Background(), "Matrix")
	require.Error(t, err)

	state := f.container.Snapshot()
	assert.Empty(t, state.Results)
	assert.Equal(t, "Ошибка Kinopoisk API: Kinopoisk API error: 401 Unauthorized", state.Error)
}

func TestSearch_CapsResults(t *testing.T) {
	f := newFixture()
	for i := 0; i < 15; i++ {
		f.metadata.candidates = append(f.metadata.candidates, kinopoisk.Candidate{ExternalID: i + 1, NameRu: fmt.Sprintf("Фильм %d", i)})
	}

	require.NoError(t, f.container.Search(context.Background(), "  Фильм "))

	state := f.container.Snapshot()
	assert.Len(t, state.Results, 10)
	assert.Equal(t, draft.PhaseResultsShown, state.Phase)
	assert.Equal(t, []string{"Фильм"}, f.metadata.keywords)
}

// # Selection and subtitles

func TestSelect_MapsCandidate(t *testing.T) {
	f := newFixture()
	f.metadata.candidates = []kinopoisk.Candidate{matrix()}
	require.NoError(t, f.container.Search(context.Background(), "Матрица"))

	require.NoError(t, f.container.SelectByID(context.Background(), 301))

	state := f.container.Snapshot()
	assert.Equal(t, draft.PhaseSelected, state.Phase)
	require.NotNil(t, state.Draft)
	assert.Equal(t, "Матрица", state.Draft.Title)
	assert.Equal(t, 136, *state.Draft.DurationMinutes)
	require.NotNil(t, state.Selected)
	assert.Equal(t, 301, state.Selected.ExternalID)

	err := f.container.SelectByID(context.Background(), 999)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

func TestFetchSubtitles_RequiresTitleAndYear(t *testing.T) {
	f := newFixture()
	f.container.Update(draft.Patch{Title: pointer.To("Матрица")})

	err := f.container.FetchSubtitles(context.Background())
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
	assert.Zero(t, f.subtitles.calls())
}

/*
TestFetchSubtitles covers the committed body and every degraded outcome.
*/
func TestFetchSubtitles(t *testing.T) {
	tests := []struct {
		name     string
		subtitle *opensubtitles.Subtitle
		err      error
		wantErr  error
		wantKind notify.Kind
	}{
		{
			name:     "found",
			subtitle: &opensubtitles.Subtitle{Match: opensubtitles.Match{FileName: "a.srt"}, Content: "text"},
			wantKind: notify.KindSuccess,
		},
		{
			name:     "not_found",
			err:      opensubtitles.ErrNotFound,
			wantErr:  draft.ErrSubtitlesNotFound,
			wantKind: notify.KindInfo,
		},
		{
			name:     "timeout",
			err:      context.DeadlineExceeded,
			wantErr:  draft.ErrSubtitlesNotFound,
			wantKind: notify.KindInfo,
		},
		{
			name:     "empty_body",
			subtitle: &opensubtitles.Subtitle{Content: "  \n"},
			wantErr:  draft.ErrSubtitlesNotFound,
			wantKind: notify.KindInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.subtitles.subtitle, f.subtitles.err = tt.subtitle, tt.err
			f.container.Select(context.Background(), matrix())
			f.notes.Drain()

			err := f.container.FetchSubtitles(context.Background())

			state := f.container.Snapshot()
			assert.Equal(t, draft.PhaseReady, state.Phase)
			assert.Empty(t, state.Error)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, state.Draft.Subtitle)
			} else {
				require.NoError(t, err)
				require.NotNil(t, state.Draft.Subtitle)
				assert.Equal(t, "a.srt", state.Draft.Subtitle.FileName)
			}

			notes := f.notes.Drain()
			require.Len(t, notes, 1)
			assert.Equal(t, tt.wantKind, notes[0].Kind)
			assert.Equal(t, []string{"Матрица 1999"}, f.subtitles.queries)
		})
	}
}

func TestFetchSubtitles_DiscardedAfterReset(t *testing.T) {
	f := newFixture()
	f.subtitles.gate = make(chan struct{})
	f.container.Select(context.Background(), matrix())

	done := make(chan error, 1)
	go func() { done <- f.container.FetchSubtitles(context.Background()) }()

	require.Eventually(t, func() bool { return f.subtitles.calls() == 1 }, time.Second, time.Millisecond)
	f.container.Reset()
	close(f.subtitles.gate)

	assert.ErrorIs(t, <-done, draft.ErrSuperseded)
	state := f.container.Snapshot()
	assert.Nil(t, state.Draft)
	assert.Equal(t, draft.PhaseEmpty, state.Phase)
}

func TestSetAutoSubtitles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.container.SetAutoSubtitles(ctx, false))
	f.container.Select(ctx, matrix())
	assert.Zero(t, f.subtitles.calls())
	assert.False(t, f.container.Snapshot().AutoSubtitles)

	require.NoError(t, f.container.SetAutoSubtitles(ctx, true))
	assert.Equal(t, 1, f.subtitles.calls())
	assert.NotNil(t, f.container.Snapshot().Draft.Subtitle)

	// A subtitle is already attached.
	require.NoError(t, f.container.SetAutoSubtitles(ctx, false))
	require.NoError(t, f.container.SetAutoSubtitles(ctx, true))
	assert.Equal(t, 1, f.subtitles.calls())
}

// # Save

func TestSave_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		patch draft.Patch
	}{
		{"nothing", draft.Patch{}},
		{"no_description", draft.Patch{Title: pointer.To("A"), Rating: pointer.To(5.0)}},
		{"zero_rating", draft.Patch{Title: pointer.To("A"), Description: pointer.To("B"), Rating: pointer.To(0.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.container.Update(tt.patch)

			_, err := f.container.Save(context.Background())
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
			assert.Zero(t, f.memory.TotalCalls())
		})
	}
}

/*
TestSave_Success verifies that the subtitle body is persisted and the draft is discarded.
*/
func TestSave_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.metadata.candidates = []kinopoisk.Candidate{matrix()}

	require.NoError(t, f.container.Search(ctx, "Матрица"))
	require.NoError(t, f.container.SelectByID(ctx, 301))
	require.NoError(t, f.container.FetchSubtitles(ctx))

	movie, err := f.container.Save(ctx)
	require.NoError(t, err)
	require.NotNil(t, movie.Subtitles)
	assert.Contains(t, *movie.Subtitles, "Привет")

	state := f.container.Snapshot()
	assert.Equal(t, draft.PhaseSaved, state.Phase)
	assert.Nil(t, state.Draft)
	assert.Nil(t, state.Selected)
	assert.Empty(t, state.Results)
	require.NotNil(t, state.Saved)
	assert.Equal(t, movie.ID, state.Saved.ID)

	stored, err := f.memory.Backend().Movies.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 136, stored.DurationMinutes)
}

func TestSave_FailureKeepsDraft(t *testing.T) {
	f := newFixture()
	f.container.Select(context.Background(), matrix())
	f.memory.Fail(memory.OpMovieCreate, errors.New("permission denied"))

	_, err := f.container.Save(context.Background())
	require.Error(t, err)

	state := f.container.Snapshot()
	assert.Equal(t, draft.PhaseSaveFailed, state.Phase)
	require.NotNil(t, state.Draft)
	assert.Equal(t, "Матрица", state.Draft.Title)
	assert.Equal(t, "Ошибка базы данных при добавлении: permission denied", state.Error)

	f.memory.Fail(memory.OpMovieCreate, nil)
	_, err = f.container.Save(context.Background())
	assert.NoError(t, err)
}

func TestUpdateAndClear(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.metadata.candidates = []kinopoisk.Candidate{matrix()}
	require.NoError(t, f.container.Search(ctx, "Матрица"))

	f.container.ClearResults()
	state := f.container.Snapshot()
	assert.Empty(t, state.Results)
	assert.Equal(t, draft.PhaseEmpty, state.Phase)

	f.container.Update(draft.Patch{Title: pointer.To("Брат"), ReleaseYear: pointer.To(1997), DurationMinutes: pointer.To(0)})
	state = f.container.Snapshot()
	assert.Equal(t, draft.PhaseReady, state.Phase)
	assert.Equal(t, 1997, *state.Draft.ReleaseYear)
	assert.Nil(t, state.Draft.DurationMinutes)

	require.NoError(t, f.container.FetchSubtitles(ctx))
	f.container.ClearSubtitles()
	assert.Nil(t, f.container.Snapshot().Draft.Subtitle)

	f.container.Reset()
	state = f.container.Snapshot()
	assert.Nil(t, state.Draft)
	assert.True(t, state.AutoSubtitles)
}
