// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import "time"

// Favorite marks a movie as favorited by a user. Unique per (user, movie).
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   string    `json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a user comment on a movie. AuthorName is empty when the
// author could not be resolved.
type Comment struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	UserID     string    `json:"user_id"`
	Text       string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	AuthorName string    `json:"author_name"`
}

// Edited reports whether the comment was changed after creation.
func (comment Comment) Edited() bool {
	return !comment.UpdatedAt.Equal(comment.CreatedAt)
}

// Identity is a row returned by the credential check procedure.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
