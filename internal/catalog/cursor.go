// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// # View Cursor

// Search holds the typed (staged) and submitted (committed) search text.
type Search struct {
	Staged    string `json:"staged"`
	Committed string `json:"committed"`
}

// Cursor fully determines one catalog page request.
type Cursor struct {
	Page   int         `json:"page"`
	Sort   store.Order `json:"sort"`
	Search Search      `json:"search"`
}

// DefaultSort is the catalog order when none is chosen.
func DefaultSort() store.Order {
	return store.Order{Field: store.SortUpdatedAt, Direction: store.Desc}
}

// NewCursor returns the first page in default order without a search.
func NewCursor() Cursor {
	return Cursor{Page: 1, Sort: DefaultSort()}
}

// Window is the offset window of the cursor page.
func (cursor Cursor) Window() store.Page {
	return store.PageOf(cursor.Page, constants.PageSize)
}

// Term is the committed search term, trimmed.
func (cursor Cursor) Term() string {
	return strings.TrimSpace(cursor.Search.Committed)
}

// WithStaged updates the typed text only.
func (cursor Cursor) WithStaged(text string) Cursor {
	cursor.Search.Staged = text
	return cursor
}

// Committed submits the staged text and returns to page 1.
func (cursor Cursor) Committed() Cursor {
	cursor.Search.Committed = normalizeTerm(cursor.Search.Staged)
	cursor.Page = 1
	return cursor
}

// Cleared drops both search values and returns to page 1.
func (cursor Cursor) Cleared() Cursor {
	cursor.Search = Search{}
	cursor.Page = 1
	return cursor
}

// WithPage moves to page without touching sort or search.
func (cursor Cursor) WithPage(page int) Cursor {
	if page < 1 {
		page = 1
	}
	cursor.Page = page
	return cursor
}

// WithSort changes the order and returns to page 1.
func (cursor Cursor) WithSort(order store.Order) Cursor {
	cursor.Sort = store.Order{
		Field:     store.ParseSortField(string(order.Field)),
		Direction: store.ParseSortDirection(string(order.Direction), store.Desc),
	}
	cursor.Page = 1
	return cursor
}

// WithDefaultSort restores [DefaultSort] and returns to page 1.
func (cursor Cursor) WithDefaultSort() Cursor {
	cursor.Sort = DefaultSort()
	cursor.Page = 1
	return cursor
}

// normalizeTerm trims and composes the term so visually equal input searches alike.
func normalizeTerm(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
