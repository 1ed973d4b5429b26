// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// Cursor selects one page of the favorites list.
type Cursor struct {
	Page int         `json:"page"`
	Sort store.Order `json:"sort"`
}

// DefaultSort orders by the time the mark was created, newest first.
func DefaultSort() store.Order {
	return store.Order{Field: store.SortCreatedAt, Direction: store.Desc}
}

// NewCursor returns page 1 in the default order.
func NewCursor() Cursor {
	return Cursor{Page: 1, Sort: DefaultSort()}
}

// Window returns the offset window of the cursor page.
func (cursor Cursor) Window() store.Page {
	return store.PageOf(cursor.Page, constants.PageSize)
}

// ByMarkTime reports whether rows are ordered by mark timestamps rather than a movie column.
func (cursor Cursor) ByMarkTime() bool {
	return cursor.Sort.Field == store.SortCreatedAt
}

// WithPage changes the page only.
func (cursor Cursor) WithPage(page int) Cursor {
	if page < 1 {
		page = 1
	}
	cursor.Page = page
	return cursor
}

// WithSort changes the order and resets to page 1.
func (cursor Cursor) WithSort(order store.Order) Cursor {
	cursor.Sort = store.Order{
		Field:     store.ParseSortField(string(order.Field)),
		Direction: store.ParseSortDirection(string(order.Direction), store.Desc),
	}
	cursor.Page = 1
	return cursor
}

// WithDefaultSort restores created_at desc and resets to page 1.
func (cursor Cursor) WithDefaultSort() Cursor {
	cursor.Sort = DefaultSort()
	cursor.Page = 1
	return cursor
}
