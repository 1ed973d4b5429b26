// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package editor loads one movie and saves edits to it.

A save compares every form field with the last loaded row as text, with null
equal to the empty string, and sends only the fields that differ. The row the
store returns replaces the baseline.
*/
package editor

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

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
	// ErrNoChanges means the form matched the loaded row. No remote call was made.
	ErrNoChanges = errors.New("editor: no changes to save")

	// ErrSuperseded is returned by a load whose result was dropped because a newer load was issued.
	ErrSuperseded = errors.New("editor: superseded by a newer request")
)

// # Form

// Form holds the edit form values as typed by the user.
type Form struct {
	Title           string `json:"title"`
	ReleaseYear     string `json:"release_year"`
	DurationMinutes string `json:"duration_minutes"`
	Description     string `json:"description"`
	Rating          string `json:"rating"`
	Subtitles       string `json:"subtitles"`
}

// FormOf seeds a form from a stored row.
func FormOf(movie store.Movie) Form {
	return Form{
		Title:           movie.Title,
		ReleaseYear:     strconv.Itoa(movie.ReleaseYear),
		DurationMinutes: strconv.Itoa(movie.DurationMinutes),
		Description:     movie.Description,
		Rating:          strconv.FormatFloat(movie.Rating, 'f', -1, 64),
		Subtitles:       pointer.Val(movie.Subtitles),
	}
}

// Validate checks the persistence constraints before any remote call.
func (form Form) Validate(context context.Context) error {
	year, yearErr := strconv.Atoi(strings.TrimSpace(form.ReleaseYear))
	duration, durationErr := strconv.Atoi(strings.TrimSpace(form.DurationMinutes))
	rating, ratingErr := strconv.ParseFloat(strings.TrimSpace(form.Rating), 64)

	validator := &validate.Validator{}
	validator.Required(schema.Movies.Title, form.Title, i18n.T(context, i18n.FormTitleRequired))
	validator.Custom(schema.Movies.ReleaseYear, yearErr != nil || year < constants.MinReleaseYear, i18n.T(context, i18n.FormYearMin, constants.MinReleaseYear))
	validator.Custom(schema.Movies.DurationMinutes, durationErr != nil || duration <= 0, i18n.T(context, i18n.FormDurationPositive))
	validator.Custom(schema.Movies.Rating, ratingErr != nil || rating < 0 || rating > constants.MaxRating, i18n.T(context, i18n.FormRatingRange))
	return validator.Err()
}

// Diff returns the fields of form that differ from baseline.
func (form Form) Diff(baseline store.Movie) store.MoviePatch {
	seed := FormOf(baseline)
	var patch store.MoviePatch

	if form.Title != seed.Title {
		patch.Title = pointer.To(form.Title)
	}
	if form.ReleaseYear != seed.ReleaseYear {
		if year, err := strconv.Atoi(strings.TrimSpace(form.ReleaseYear)); err == nil {
			patch.ReleaseYear = pointer.To(year)
		}
	}
	if form.DurationMinutes != seed.DurationMinutes {
		if duration, err := strconv.Atoi(strings.TrimSpace(form.DurationMinutes)); err == nil {
			patch.DurationMinutes = pointer.To(duration)
		}
	}
	if form.Description != seed.Description {
		patch.Description = pointer.To(form.Description)
	}
	if form.Rating != seed.Rating {
		if rating, err := strconv.ParseFloat(strings.TrimSpace(form.Rating), 64); err == nil {
			patch.Rating = pointer.To(rating)
		}
	}
	if form.Subtitles != seed.Subtitles {
		patch.Subtitles = pointer.To(form.Subtitles)
	}

	return patch
}

// # Container

// State is a consistent copy of the container.
type State struct {
	Movie   *store.Movie `json:"movie"`
	Form    *Form        `json:"form"`
	Loading bool         `json:"loading"`
	Saving  bool         `json:"saving"`
	Error   string       `json:"error,omitempty"`
}

// Container is safe for concurrent use. The lock is never held across a remote call.
type Container struct {
	movies   store.MovieRepository
	notifier notify.Sink
	logger   *slog.Logger

	mu         sync.Mutex
	movie      *store.Movie
	loading    bool
	saving     bool
	err        string
	generation uint64
}

// New constructs an empty [Container].
func New(movies store.MovieRepository, notifier notify.Sink, logger *slog.Logger) *Container {
	return &Container{movies: movies, notifier: notifier, logger: logger}
}

// Snapshot returns a deep copy of the current state.
func (container *Container) Snapshot() State {
	container.mu.Lock()
	defer container.mu.Unlock()

	state := State{Loading: container.loading, Saving: container.saving, Error: container.err}
	if container.movie != nil {
		movie := *container.movie
		if movie.Subtitles != nil {
			movie.Subtitles = pointer.To(*movie.Subtitles)
		}
		state.Movie = &movie
		state.Form = pointer.To(FormOf(movie))
	}
	return state
}

/*
Load fetches one movie and makes it the edit baseline.

A missing row or a remote failure is recorded as the error and leaves no movie loaded.
*/
func (container *Container) Load(context context.Context, movieID string) error {
	container.mu.Lock()
	container.generation++
	token := container.generation
	container.loading = true
	container.err = ""
	container.mu.Unlock()

	movie, err := container.movies.FindByID(context, movieID)

	container.mu.Lock()
	if token != container.generation {
		container.mu.Unlock()
		return ErrSuperseded
	}
	container.loading = false

	if err != nil {
		message := i18n.T(context, i18n.MovieLoadFailed, apperr.Message(err))
		if apperr.HasCode(err, "NOT_FOUND") {
			message = i18n.T(context, i18n.MovieNotFound)
		}
		container.err = message
		container.movie = nil
		container.mu.Unlock()

		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleLoadError), message)
		return err
	}

	container.movie = movie
	container.mu.Unlock()
	return nil
}

/*
Save sends the fields of form that differ from the loaded row.

Description: The form is validated first. When nothing differs an info notice
is shown and ErrNoChanges is returned without any remote call. On success the
returned row replaces the baseline.

Parameters:
  - context: context.Context
  - movieID: string
  - form: Form

Returns:
  - *store.Movie: The stored row
  - error: A validation error, ErrNoChanges or the remote failure
*/
func (container *Container) Save(context context.Context, movieID string, form Form) (*store.Movie, error) {
	container.mu.Lock()
	if container.movie == nil || container.movie.ID != movieID {
		container.mu.Unlock()
		return nil, apperr.NotFound("Movie")
	}
	baseline := *container.movie
	container.mu.Unlock()

	if err := form.Validate(context); err != nil {
		return nil, err
	}

	patch := form.Diff(baseline)
	if patch.IsEmpty() {
		container.notifier.Notify(context, notify.KindInfo, i18n.T(context, i18n.TitleInfo), i18n.T(context, i18n.MovieNoChanges))
		return nil, ErrNoChanges
	}

	container.mu.Lock()
	container.saving = true
	container.err = ""
	container.mu.Unlock()

	movie, err := container.movies.Update(context, movieID, patch)

	container.mu.Lock()
	container.saving = false
	if err != nil {
		message := i18n.T(context, i18n.MovieUpdateFailed, apperr.Message(err))
		container.err = message
		container.mu.Unlock()

		container.logger.WarnContext(context, "movie_update_failed", slog.String("movie_id", movieID), slog.Any("error", err))
		container.notifier.Notify(context, notify.KindError, i18n.T(context, i18n.TitleSaveError), message)
		return nil, err
	}
	container.movie = movie
	container.mu.Unlock()

	container.logger.InfoContext(context, "movie_updated", slog.String("movie_id", movieID), slog.Int("fields", len(patch.Columns())))
	container.notifier.Notify(context, notify.KindSuccess, i18n.T(context, i18n.TitleSuccess), i18n.T(context, i18n.MovieUpdated, movie.Title))
	return movie, nil
}

// Clear drops the loaded movie and any recorded error.
func (container *Container) Clear() {
	container.mu.Lock()
	defer container.mu.Unlock()

	container.generation++
	container.movie = nil
	container.loading = false
	container.saving = false
	container.err = ""
}
