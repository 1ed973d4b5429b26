// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import "strings"

// # Sorting

// SortField is a sortable movie column.
type SortField string

const (
	SortTitle       SortField = "title"
	SortReleaseYear SortField = "release_year"
	SortDuration    SortField = "duration_minutes"
	SortRating      SortField = "rating"
	SortUpdatedAt   SortField = "updated_at"
	SortCreatedAt   SortField = "created_at"
)

// ParseSortField maps a raw value to a SortField. Unknown values map to updated_at.
func ParseSortField(raw string) SortField {
	switch field := SortField(strings.TrimSpace(raw)); field {
	case SortTitle, SortReleaseYear, SortDuration, SortRating, SortUpdatedAt, SortCreatedAt:
		return field
	default:
		return SortUpdatedAt
	}
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseSortDirection maps a raw value to a SortDirection, or fallback when unknown.
func ParseSortDirection(raw string, fallback SortDirection) SortDirection {
	switch direction := SortDirection(strings.ToLower(strings.TrimSpace(raw))); direction {
	case Asc, Desc:
		return direction
	default:
		return fallback
	}
}

// Order is a sort field with its direction.
type Order struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// Ascending reports whether the order is ascending.
func (order Order) Ascending() bool {
	return order.Direction == Asc
}

// # Paging

// Page is an offset window over a result set.
type Page struct {
	Offset int
	Limit  int
}

// PageOf returns the window of a 1-based page number.
func PageOf(number, size int) Page {
	if number < 1 {
		number = 1
	}
	return Page{Offset: (number - 1) * size, Limit: size}
}

// End is the exclusive upper bound of the window.
func (page Page) End() int {
	return page.Offset + page.Limit
}
