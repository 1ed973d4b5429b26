// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"fmt"

	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// Demo credentials created by [Seed].
const (
	DemoUsername = "demo"
	DemoPassword = "demo1234"
)

var demoMovies = []store.Movie{
	{Title: "Матрица", ReleaseYear: 1999, DurationMinutes: 136, Rating: 8.5,
		Description: "Хакер Нео узнает, что привычный мир является симуляцией."},
	{Title: "Брат", ReleaseYear: 1997, DurationMinutes: 100, Rating: 8.3,
		Description: "Демобилизованный Данила Багров приезжает в Петербург к старшему брату."},
	{Title: "Интерстеллар", ReleaseYear: 2014, DurationMinutes: 169, Rating: 8.6,
		Description: "Группа исследователей отправляется через червоточину в поисках нового дома."},
	{Title: "Москва слезам не верит", ReleaseYear: 1979, DurationMinutes: 150, Rating: 8.2,
		Description: "История трех подруг, приехавших покорять Москву."},
}

// Seed loads the demo user and a handful of movies.
func Seed(memory *Store) error {
	if _, err := memory.AddUser(DemoUsername, DemoPassword); err != nil {
		return fmt.Errorf("memory_seed_user_failed: %w", err)
	}
	for _, movie := range demoMovies {
		memory.AddMovie(movie)
	}
	return nil
}
