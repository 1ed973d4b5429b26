// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
)

// # Entities

// Movie is a catalog entry as stored remotely.
type Movie struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ReleaseYear     int       `json:"release_year"`
	DurationMinutes int       `json:"duration_minutes"`
	Description     string    `json:"description"`
	Rating          float64   `json:"rating"`
	Subtitles       *string   `json:"subtitles"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RankedMovie is a row of the ranked search procedure.
type RankedMovie struct {
	Movie
	Rank float64 `json:"rank"`
}

// # Writes

// MovieInput is the payload of a new movie row.
type MovieInput struct {
	Title           string  `json:"title"            validate:"required"`
	ReleaseYear     int     `json:"release_year"     validate:"gte=1888"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0"`
	Description     string  `json:"description"`
	Rating          float64 `json:"rating"           validate:"gte=0,lte=10"`
	Subtitles       *string `json:"subtitles"`
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func movieValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator
}

// Validate enforces the persistence constraints of a movie row.
func (input MovieInput) Validate() error {
	err := movieValidator().Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.ValidationError(err.Error())
	}

	details := make([]apperr.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		details = append(details, apperr.FieldError{
			Field:   jsonFieldName(fieldError.StructField()),
			Message: fieldError.Tag() + " " + fieldError.Param(),
		})
	}
	return apperr.ValidationError("Invalid movie record", details...)
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Title":
		return schema.Movies.Title
	case "ReleaseYear":
		return schema.Movies.ReleaseYear
	case "DurationMinutes":
		return schema.Movies.DurationMinutes
	case "Rating":
		return schema.Movies.Rating
	default:
		return structField
	}
}

// MoviePatch holds the changed fields of an update. Nil fields are left untouched.
type MoviePatch struct {
	Title           *string  `json:"title,omitempty"`
	ReleaseYear     *int     `json:"release_year,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	Subtitles       *string  `json:"subtitles,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (patch MoviePatch) IsEmpty() bool {
	return len(patch.Columns()) == 0
}

// Columns returns the changed column names paired with their new values,
// in a stable order.
func (patch MoviePatch) Columns() []ColumnValue {
	var columns []ColumnValue
	if patch.Title != nil {
		columns = append(columns, ColumnValue{schema.Movies.Title, *patch.Title})
	}
	if patch.ReleaseYear != nil {
		columns = append(columns, ColumnValue{schema.Movies.ReleaseYear, *patch.ReleaseYear})
	}
	if patch.DurationMinutes != nil {
		columns = append(columns, ColumnValue{schema.Movies.DurationMinutes, *patch.DurationMinutes})
	}
	if patch.Description != nil {
		columns = append(columns, ColumnValue{schema.Movies.Description, *patch.Description})
	}
	if patch.Rating != nil {
		columns = append(columns, ColumnValue{schema.Movies.Rating, *patch.Rating})
	}
	if patch.Subtitles != nil {
		columns = append(columns, ColumnValue{schema.Movies.Subtitles, *patch.Subtitles})
	}
	return columns
}

// Apply returns a copy of movie with the patch applied.
func (patch MoviePatch) Apply(movie Movie) Movie {
	if patch.Title != nil {
		movie.Title = *patch.Title
	}
	if patch.ReleaseYear != nil {
		movie.ReleaseYear = *patch.ReleaseYear
	}
	if patch.DurationMinutes != nil {
		movie.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Description != nil {
		movie.Description = *patch.Description
	}
	if patch.Rating != nil {
		movie.Rating = *patch.Rating
	}
	if patch.Subtitles != nil {
		subtitles := *patch.Subtitles
		movie.Subtitles = &subtitles
	}
	return movie
}

// ColumnValue pairs a column name with the value written to it.
type ColumnValue struct {
	Column string
	Value  any
}
