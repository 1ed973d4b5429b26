// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package draft assembles a new movie before it is saved.

A draft is filled from a metadata search result or by hand, optionally
enriched with Russian subtitles, then persisted as a new movie row. The
container walks through the phases:

	Empty → Searching → ResultsShown → Selected → FetchingSubtitles → Ready → Saving → Saved | SaveFailed

Operations that replace the draft take a generation token, so a subtitle
download that resolves after the draft was replaced is discarded. Searches
carry their own token.
*/
package draft

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/AliceG32/project-frontend-movies/internal/gateway/kinopoisk"
	"github.com/AliceG32/project-frontend-movies/internal/gateway/opensubtitles"
	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/internal/platform/validate"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/pointer"
)

var (
	// ErrNoResults means the metadata search matched nothing.
	ErrNoResults = errors.New("draft: no metadata results")

	// ErrSubtitlesNotFound is the degraded outcome of a subtitle lookup. The draft stays usable.
	ErrSubtitlesNotFound = errors.New("draft: subtitles not found")

	// ErrSuperseded is returned when the draft was replaced while a call was in flight.
	ErrSuperseded = errors.New("draft: superseded by a newer request")
)

// # Collaborators

// MetadataSearcher finds movie candidates by title.
type MetadataSearcher interface {
	Search(context context.Context, keyword string) ([]kinopoisk.Candidate, error)
}

// SubtitleFinder finds and downloads subtitles for a title and year.
type SubtitleFinder interface {
	Find(context context.Context, title string, year int) (*opensubtitles.Subtitle, error)
}

// # Types

// Phase is the step the creation flow is in.
type Phase string

const (
	PhaseEmpty             Phase = "empty"
	PhaseSearching         Phase = "searching"
	PhaseResultsShown      Phase = "results_shown"
	PhaseSelected          Phase = "selected"
	PhaseFetchingSubtitles Phase = "fetching_subtitles"
	PhaseReady             Phase = "ready"
	PhaseSaving            Phase = "saving"
	PhaseSaved             Phase = "saved"
	PhaseSaveFailed        Phase = "save_failed"
)

// Subtitle is the downloaded subtitle file attached to a draft.
type Subtitle struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

/*
Draft is a movie that has not been persisted yet.

Title, Description and a nonzero Rating are required to save. ReleaseYear and
DurationMinutes stay nil until known so the form can ask for them.
*/
type Draft struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Rating          *float64  `json:"rating"`
	ReleaseYear     *int      `json:"release_year"`
	DurationMinutes *int      `json:"duration_minutes"`
	Subtitle        *Subtitle `json:"subtitle"`
}

// Clone returns a deep copy.
func (draft Draft) Clone() Draft {
	if draft.Rating != nil {
		draft.Rating = pointer.To(*draft.Rating)
	}
	if draft.ReleaseYear != nil {
		draft.ReleaseYear = pointer.To(*draft.ReleaseYear)
	}
	if draft.DurationMinutes != nil {
		draft.DurationMinutes = pointer.To(*draft.DurationMinutes)
	}
	if draft.Subtitle != nil {
		draft.Subtitle = pointer.To(*draft.Subtitle)
	}
	return draft
}

// Saveable reports whether the required fields are present.
func (draft Draft) Saveable() bool {
	return strings.TrimSpace(draft.Title) != "" &&
		strings.TrimSpace(draft.Description) != "" &&
		pointer.Val(draft.Rating) != 0
}

// Input returns the row to insert, with the subtitle body or null.
func (draft Draft) Input() store.MovieInput {
	input := store.MovieInput{
		Title:           strings.TrimSpace(draft.Title),
		ReleaseYear:     pointer.Val(draft.ReleaseYear),
		DurationMinutes: pointer.Val(draft.DurationMinutes),
		Description:     strings.TrimSpace(draft.Description),
		Rating:          pointer.Val(draft.Rating),
	}
	if draft.Subtitle != nil && draft.Subtitle.Content != "" {
		input.Subtitles = pointer.To(draft.Subtitle.Content)
	}
	return input
}

// Patch carries manual form edits. Nil fields are left untouched.
type Patch struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	ReleaseYear     *int     `json:"release_year,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
}

func (patch Patch) apply(draft Draft) Draft {
	if patch.Title != nil {
		draft.Title = *patch.Title
	}
	if patch.Description != nil {
		draft.Description = *patch.Description
	}
	if patch.Rating != nil {
		draft.Rating = pointer.To(*patch.Rating)
	}
	if patch.ReleaseYear != nil {
		draft.ReleaseYear = nil
		if *patch.ReleaseYear > 0 {
			draft.ReleaseYear = pointer.To(*patch.ReleaseYear)
		}
	}
	if patch.DurationMinutes != nil {
		draft.DurationMinutes = nil
		if *patch.DurationMinutes > 0 {
			draft.DurationMinutes = pointer.To(*patch.DurationMinutes)
		}
	}
	return draft
}

// State is a consistent copy of the container.
type State struct {
	Phase         Phase                 `json:"phase"`
	Draft         *Draft                `json:"draft"`
	Results       []kinopoisk.Candidate `json:"results"`
	Selected      *kinopoisk.Candidate  `json:"selected,omitempty"`
	AutoSubtitles bool                  `json:"auto_subtitles"`
	CanSave       bool                  `json:"can_save"`
	Error         string                `json:"error,omitempty"`
	Saved         *store.Movie          `json:"saved,omitempty"`
}

// # Container

// Container is safe for concurrent use. The lock is never held across a remote call.
type Container struct {
	metadata  MetadataSearcher
	subtitles SubtitleFinder
	movies    store.MovieRepository
	notifier  notify.Sink
	logger    *slog.Logger

	mu            sync.Mutex
	phase         Phase
	draft         *Draft
	results       []kinopoisk.Candidate
	selected      *kinopoisk.Candidate
	autoSubtitles bool
	err           string
	saved         *store.Movie
	generation    uint64
	searches      uint64
}

// New constructs an empty [Container] with automatic subtitle lookup switched on.
func New(metadata MetadataSearcher, subtitles SubtitleFinder, movies store.MovieRepository, notifier notify.Sink, logger *slog.Logger) *Container {
	return &Container{
		metadata:      metadata,
		subtitles:     subtitles,
		movies:        movies,
		notifier:      notifier,
		logger:        logger,
		phase:         PhaseEmpty,
		results:       []kinopoisk.Candidate{},
		autoSubtitles: true,
	}
}

// Snapshot returns a deep copy of the current state.
func (container *Container) Snapshot() State {
	container.mu.Lock()
	defer container.mu.Unlock()

	state := State{
		Phase:         container.phase,
		Results:       append([]kinopoisk.Candidate{}, container.results...),
		AutoSubtitles: container.autoSubtitles,
		Error:         container.err,
	}
	if container.draft != nil {
		state.Draft = pointer.To(container.draft.Clone())
		state.CanSave = container.draft.Saveable()
	}
	if container.selected != nil {
		state.Selected = pointer.To(*container.selected)
	}
	if container.saved != nil {
		state.Saved = pointer.To(*container.saved)
	}
	return state
}

// resting is the phase to fall back to after a failed call. Callers hold mu.
func (container *Container) resting() Phase {
	if container.draft == nil {
		return PhaseEmpty
	}
	return PhaseReady
}

// # Metadata Search

/*
Search looks title up in the metadata provider.

Description: A blank title fails before any remote call. An empty result set
is reported as an error and leaves Results empty. At most
[constants.SearchResultsLimit] candidates are kept.

Parameters:
  - context: context.Context
  - title: string

Returns:
  - error: A validation error, ErrNoResults, the provider failure or ErrSuperseded
*/
func (container *Container) Search(context context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return validate.RequiredError(schema.Movies.Title, i18n.T(context, i18n.DraftSearchBlank))
	}

	container.mu.Lock()
	container.searches++
	token := container.searches
	container.phase = PhaseSearching
	container.err = ""
	container.results = []kinopoisk.Candidate{}
	container.selected = nil
	container.mu.Unlock()

	candidates, err := container.metadata.Search(context, title)
	if err == nil && len(candidates) == 0 {
		err = ErrNoResults
	}

	container.mu.Lock()
	defer container.mu.Unlock()

	if token != container.searches {
		return ErrSuperseded
	}

	if err != nil {
		message := i18n.T(context, i18n.DraftNotFound, title)
		if !errors.Is(err, ErrNoResults) {
			message = i18n.T(context, i18n.DraftProviderFailed, apperr.Message(err))
			container.logger.WarnContext(context, "draft_metadata_search_failed", slog.String("title", title), slog.Any("error", err))
		}
		container.err = message
		container.phase = container.resting()
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleSearchError), message)
		return err
	}

	if len(candidates) > constants.SearchResultsLimit {
		candidates = candidates[:constants.SearchResultsLimit]
	}
	container.results = candidates
	container.phase = PhaseResultsShown
	return nil
}

// # Selection

// Select replaces the draft with the mapped candidate.
func (container *Container) Select(context context.Context, candidate kinopoisk.Candidate) {
	draft := FromCandidate(candidate)

	container.mu.Lock()
	container.generation++
	container.draft = &draft
	container.selected = pointer.To(candidate)
	container.saved = nil
	container.err = ""
	container.phase = PhaseSelected
	container.mu.Unlock()

	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.DraftSelected, draft.Title))
}

// SelectByID selects one of the current results by its external id.
func (container *Container) SelectByID(context context.Context, externalID int) error {
	container.mu.Lock()
	var found *kinopoisk.Candidate
	for i := range container.results {
		if container.results[i].ExternalID == externalID {
			found = pointer.To(container.results[i])
			break
		}
	}
	container.mu.Unlock()

	if found == nil {
		return apperr.NotFound("Candidate")
	}
	container.Select(context, *found)
	return nil
}

// Update merges manual form edits into the draft, starting one when there is none.
func (container *Container) Update(patch Patch) {
	container.mu.Lock()
	defer container.mu.Unlock()

	current := Draft{}
	if container.draft != nil {
		current = *container.draft
	}
	updated := patch.apply(current)
	container.draft = &updated

	if container.phase == PhaseEmpty || container.phase == PhaseSaved {
		container.phase = PhaseReady
		container.saved = nil
	}
}

// # Subtitles

/*
FetchSubtitles downloads Russian subtitles for the draft title and year.

Description: Missing title or year fails before any remote call. Any gateway
failure, including a leg timeout, resolves to ErrSubtitlesNotFound with an
informational notice. Only a non-empty body is committed.

Parameters:
  - context: context.Context

Returns:
  - error: A validation error, ErrSubtitlesNotFound or ErrSuperseded
*/
func (container *Container) FetchSubtitles(context context.Context) error {
	container.mu.Lock()
	current := pointer.Val(container.draft)
	validator := &validate.Validator{}
	validator.Required(schema.Movies.Title, current.Title, i18n.T(context, i18n.FormTitleRequired))
	validator.Custom(schema.Movies.ReleaseYear, current.ReleaseYear == nil, i18n.T(context, i18n.FormYearMin, constants.MinReleaseYear))
	if err := validator.ErrWithMessage(i18n.T(context, i18n.DraftTitleYearRequired)); err != nil {
		container.mu.Unlock()
		return err
	}
	title := strings.TrimSpace(container.draft.Title)
	year := *container.draft.ReleaseYear
	container.generation++
	token := container.generation
	container.phase = PhaseFetchingSubtitles
	container.err = ""
	container.draft.Subtitle = nil
	container.mu.Unlock()

	subtitle, err := container.subtitles.Find(context, title, year)
	if err == nil && (subtitle == nil || strings.TrimSpace(subtitle.Content) == "") {
		err = opensubtitles.ErrNotFound
	}

	container.mu.Lock()
	if token != container.generation {
		container.mu.Unlock()
		return ErrSuperseded
	}
	container.phase = PhaseReady
	if err == nil {
		container.draft.Subtitle = &Subtitle{FileName: subtitle.FileName, Content: subtitle.Content}
	}
	container.mu.Unlock()

	if err != nil {
		if !errors.Is(err, opensubtitles.ErrNotFound) {
			container.logger.WarnContext(context, "draft_subtitles_failed",
				slog.String("title", title),
				slog.Int("year", year),
				slog.Any("error", err),
			)
		}
		container.notifier.Notify(context, notify.KindInfo, i18n.T(context, i18n.TitleSubtitlesMissing), i18n.T(context, i18n.SubtitlesMissing, title))
		return ErrSubtitlesNotFound
	}

	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.SubtitlesFound, title))
	return nil
}

/*
SetAutoSubtitles switches automatic subtitle lookup.

Switching it on while the draft has a title and year but no subtitle runs
[Container.FetchSubtitles] immediately and returns its outcome.
*/
func (container *Container) SetAutoSubtitles(context context.Context, on bool) error {
	container.mu.Lock()
	container.autoSubtitles = on
	pending := on && container.draft != nil &&
		strings.TrimSpace(container.draft.Title) != "" &&
		container.draft.ReleaseYear != nil &&
		container.draft.Subtitle == nil
	container.mu.Unlock()

	if !pending {
		return nil
	}
	return container.FetchSubtitles(context)
}

// # Persistence

/*
Save persists the draft as a new movie.

Description: Title, description and a nonzero rating are required before any
remote call. On success the whole draft is discarded. On failure the draft is
kept so the user can retry.

Parameters:
  - context: context.Context

Returns:
  - *store.Movie: The stored row
  - error: A validation error or the remote failure
*/
func (container *Container) Save(context context.Context) (*store.Movie, error) {
	container.mu.Lock()
	current := pointer.Val(container.draft)
	validator := &validate.Validator{}
	validator.Required(schema.Movies.Title, current.Title, i18n.T(context, i18n.FormTitleRequired))
	validator.Required(schema.Movies.Description, current.Description, i18n.T(context, i18n.FormDescriptionRequired))
	validator.Custom(schema.Movies.Rating, pointer.Val(current.Rating) == 0, i18n.T(context, i18n.FormRatingRequired))
	if err := validator.ErrWithMessage(i18n.T(context, i18n.MovieRequired)); err != nil {
		container.mu.Unlock()
		return nil, err
	}
	input := container.draft.Input()
	container.phase = PhaseSaving
	container.err = ""
	container.mu.Unlock()

	movie, err := container.movies.Create(context, input)

	container.mu.Lock()
	if err != nil {
		message := i18n.T(context, i18n.MovieAddFailed, apperr.Message(err))
		container.phase = PhaseSaveFailed
		container.err = message
		container.mu.Unlock()

		container.logger.WarnContext(context, "draft_save_failed", slog.String("title", input.Title), slog.Any("error", err))
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleAddError), message)
		return nil, err
	}

	container.generation++
	container.draft = nil
	container.results = []kinopoisk.Candidate{}
	container.selected = nil
	container.saved = pointer.To(*movie)
	container.phase = PhaseSaved
	container.mu.Unlock()

	container.logger.InfoContext(context, "movie_created", slog.String("movie_id", movie.ID))
	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.MovieAdded, movie.Title))
	return movie, nil
}

// # Teardown

// ClearResults drops the search results and the selection. The draft is kept.
func (container *Container) ClearResults() {
	container.mu.Lock()
	defer container.mu.Unlock()

	container.results = []kinopoisk.Candidate{}
	container.selected = nil
	if container.phase == PhaseResultsShown {
		container.phase = container.resting()
	}
}

// ClearSubtitles drops the attached subtitle.
func (container *Container) ClearSubtitles() {
	container.mu.Lock()
	defer container.mu.Unlock()

	if container.draft != nil {
		container.draft.Subtitle = nil
	}
}

// Reset discards everything except the automatic subtitle preference.
func (container *Container) Reset() {
	container.mu.Lock()
	defer container.mu.Unlock()

	container.generation++
	container.searches++
	container.phase = PhaseEmpty
	container.draft = nil
	container.results = []kinopoisk.Candidate{}
	container.selected = nil
	container.err = ""
	container.saved = nil
}
