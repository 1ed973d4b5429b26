// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/sec"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/pkg/uuid"
)

// # Favorites

// FavoriteRepository implements [store.FavoriteRepository] over a [Store].
type FavoriteRepository struct {
	memory *Store
}

func (repository *FavoriteRepository) ListByUser(_ context.Context, userID string, direction store.SortDirection) ([]store.Favorite, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpFavoriteList); err != nil {
		return nil, err
	}

	var marks []store.Favorite
	for _, mark := range repository.memory.favorites {
		if mark.UserID == userID {
			marks = append(marks, mark)
		}
	}
	sort.Slice(marks, func(i, j int) bool {
		if direction == store.Asc {
			return marks[i].CreatedAt.Before(marks[j].CreatedAt)
		}
		return marks[i].CreatedAt.After(marks[j].CreatedAt)
	})
	return marks, nil
}

func (repository *FavoriteRepository) Exists(_ context.Context, userID, movieID string) (bool, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpFavoriteExists); err != nil {
		return false, err
	}
	_, found := repository.find(userID, movieID)
	return found, nil
}

func (repository *FavoriteRepository) find(userID, movieID string) (store.Favorite, bool) {
	for _, mark := range repository.memory.favorites {
		if mark.UserID == userID && mark.MovieID == movieID {
			return mark, true
		}
	}
	return store.Favorite{}, false
}

// Create enforces the (user, movie) uniqueness like the database constraint does.
func (repository *FavoriteRepository) Create(_ context.Context, userID, movieID string) (*store.Favorite, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpFavoriteCreate); err != nil {
		return nil, err
	}
	if _, found := repository.find(userID, movieID); found {
		return nil, apperr.Conflict("Record already exists")
	}

	mark := store.Favorite{ID: uuid.New(), UserID: userID, MovieID: movieID, CreatedAt: repository.memory.now()}
	repository.memory.favorites[mark.ID] = mark
	return &mark, nil
}

func (repository *FavoriteRepository) Delete(_ context.Context, userID, movieID string) error {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpFavoriteDelete); err != nil {
		return err
	}
	if mark, found := repository.find(userID, movieID); found {
		delete(repository.memory.favorites, mark.ID)
	}
	return nil
}

func (repository *FavoriteRepository) DeleteByMovie(_ context.Context, movieID string) error {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpFavoriteDeleteAll); err != nil {
		return err
	}
	for id, mark := range repository.memory.favorites {
		if mark.MovieID == movieID {
			delete(repository.memory.favorites, id)
		}
	}
	return nil
}

func (repository *FavoriteRepository) CountByUser(_ context.Context, userID string) (int, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpFavoriteCount); err != nil {
		return 0, err
	}
	count := 0
	for _, mark := range repository.memory.favorites {
		if mark.UserID == userID {
			count++
		}
	}
	return count, nil
}

// # Comments

// CommentRepository implements [store.CommentRepository] over a [Store].
type CommentRepository struct {
	memory *Store
}

func (repository *CommentRepository) withAuthor(comment store.Comment) store.Comment {
	if author, ok := repository.memory.users[comment.UserID]; ok {
		comment.AuthorName = author.Name
	}
	return comment
}

func (repository *CommentRepository) ListByMovie(_ context.Context, movieID string) ([]store.Comment, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpCommentList); err != nil {
		return nil, err
	}

	var comments []store.Comment
	for _, comment := range repository.memory.comments {
		if comment.MovieID == movieID {
			comments = append(comments, repository.withAuthor(comment))
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (repository *CommentRepository) CountByMovies(_ context.Context, movieIDs []string) (map[string]int, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpCommentCount); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(movieIDs))
	for _, id := range movieIDs {
		wanted[id] = true
	}
	counts := map[string]int{}
	for _, comment := range repository.memory.comments {
		if wanted[comment.MovieID] {
			counts[comment.MovieID]++
		}
	}
	return counts, nil
}

func (repository *CommentRepository) Create(_ context.Context, movieID, userID, text string) (*store.Comment, error) {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpCommentCreate); err != nil {
		return nil, err
	}

	now := repository.memory.now()
	comment := store.Comment{ID: uuid.New(), MovieID: movieID, UserID: userID, Text: text, CreatedAt: now, UpdatedAt: now}
	repository.memory.comments[comment.ID] = comment

	stored := repository.withAuthor(comment)
	return &stored, nil
}

func (repository *CommentRepository) UpdateText(_ context.Context, id, text string, updatedAt time.Time) error {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpCommentUpdate); err != nil {
		return err
	}
	if comment, ok := repository.memory.comments[id]; ok {
		comment.Text = text
		comment.UpdatedAt = updatedAt
		repository.memory.comments[id] = comment
	}
	return nil
}

func (repository *CommentRepository) Delete(_ context.Context, id string) error {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpCommentDelete); err != nil {
		return err
	}
	delete(repository.memory.comments, id)
	return nil
}

func (repository *CommentRepository) DeleteByMovie(_ context.Context, movieID string) error {
	repository.memory.mu.Lock()
	defer repository.memory.mu.Unlock()

	if err := repository.memory.begin(OpCommentDeleteAll); err != nil {
		return err
	}
	for id, comment := range repository.memory.comments {
		if comment.MovieID == movieID {
			delete(repository.memory.comments, id)
		}
	}
	return nil
}

// # Credentials

// Authenticator implements [store.Authenticator] with bcrypt hashes.
type Authenticator struct {
	memory *Store
}

func (authenticator *Authenticator) Authenticate(_ context.Context, username, password string) ([]store.Identity, error) {
	authenticator.memory.mu.Lock()
	if err := authenticator.memory.begin(OpAuthenticate); err != nil {
		authenticator.memory.mu.Unlock()
		return nil, err
	}
	var candidate *user
	for _, existing := range authenticator.memory.users {
		if existing.Name == username {
			found := existing
			candidate = &found
			break
		}
	}
	authenticator.memory.mu.Unlock()

	// bcrypt is slow; compare outside the lock.
	if candidate == nil || !sec.PasswordMatches(candidate.passwordHash, password) {
		return []store.Identity{}, nil
	}
	return []store.Identity{candidate.Identity}, nil
}
