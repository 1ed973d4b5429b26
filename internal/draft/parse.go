// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AliceG32/project-frontend-movies/internal/gateway/kinopoisk"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/pkg/convert"
	"github.com/AliceG32/project-frontend-movies/pkg/pointer"
	"github.com/AliceG32/project-frontend-movies/pkg/slice"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)\s*ч`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*мин`)
	leadingInt     = regexp.MustCompile(`^\s*(\d+)`)
	leadingNumber  = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)`)
)

// placeholderRating marks a movie that has votes but no usable rating yet.
const placeholderRating = 0.1

// # Candidate Mapping

// FromCandidate maps a metadata search result onto a fresh draft.
func FromCandidate(candidate kinopoisk.Candidate) Draft {
	title := candidate.Title()

	draft := Draft{
		Title:       title,
		Description: strings.TrimSpace(candidate.Description),
		Rating:      pointer.To(ParseRating(candidate.Rating.String(), candidate.RatingVoteCount.String())),
	}

	if year := convert.ToInt(strings.TrimSpace(candidate.Year.String())); year > 0 {
		draft.ReleaseYear = pointer.To(year)
	}
	if minutes, ok := ParseDuration(candidate.FilmLength.String()); ok {
		draft.DurationMinutes = pointer.To(minutes)
	}
	if draft.Description == "" {
		draft.Description = SynthesizeDescription(title, candidate.Year.String(), candidate.Genres, candidate.Countries)
	}

	return draft
}

/*
ParseDuration reads a film length in minutes.

Accepted forms, in precedence order: "H:MM", "Xч Yмин" and a bare number of
minutes. ok is false when nothing parses or the result is not positive.
*/
func ParseDuration(raw string) (minutes int, ok bool) {
	raw = strings.TrimSpace(raw)

	switch {
	case raw == "":
		return 0, false

	case strings.Contains(raw, ":"):
		hours, rest, _ := strings.Cut(raw, ":")
		h := convert.ToIntD(strings.TrimSpace(hours), -1)
		m := convert.ToIntD(strings.TrimSpace(rest), -1)
		if h < 0 || m < 0 {
			return 0, false
		}
		minutes = h*60 + m

	case strings.Contains(raw, "ч"):
		if match := hoursPattern.FindStringSubmatch(raw); match != nil {
			minutes += convert.ToInt(match[1]) * 60
		}
		if match := minutesPattern.FindStringSubmatch(raw); match != nil {
			minutes += convert.ToInt(match[1])
		}

	default:
		match := leadingInt.FindStringSubmatch(raw)
		if match == nil {
			return 0, false
		}
		minutes = convert.ToInt(match[1])
	}

	if minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

/*
ParseRating picks the draft rating.

A usable source rating wins. Otherwise a movie with votes gets the 0.1
placeholder, and anything else gets 0. The result is clamped to [0, 10].
*/
func ParseRating(rating, voteCount string) float64 {
	rating = strings.TrimSpace(rating)

	if rating != "" && rating != "null" && rating != "0" {
		if match := leadingNumber.FindStringSubmatch(rating); match != nil {
			return clampRating(convert.ToFloat64(strings.Replace(match[1], ",", ".", 1)))
		}
	}

	if match := leadingInt.FindStringSubmatch(voteCount); match != nil && convert.ToInt(match[1]) > 0 {
		return placeholderRating
	}
	return 0
}

func clampRating(value float64) float64 {
	return min(max(value, 0), constants.MaxRating)
}

// SynthesizeDescription builds a description from genre and country tags for sources that have none.
func SynthesizeDescription(title, year string, genres []kinopoisk.Genre, countries []kinopoisk.Country) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Фильм \"%s\"", title)
	if year = strings.TrimSpace(year); year != "" {
		fmt.Fprintf(&builder, " (%s)", year)
	}
	builder.WriteString(".")

	if len(genres) > 0 {
		names := slice.Map(genres, func(genre kinopoisk.Genre) string { return genre.Genre })
		fmt.Fprintf(&builder, " Жанр: %s.", strings.Join(names, ", "))
	}
	if len(countries) > 0 {
		names := slice.Map(countries, func(country kinopoisk.Country) string { return country.Country })
		fmt.Fprintf(&builder, " Страна: %s.", strings.Join(names, ", "))
	}

	return builder.String()
}
