package schema

// FavoritesTable represents the 'favorites' table
type FavoritesTable struct {
	Table     string
	ID        string
	UserID    string
	MovieID   string
	CreatedAt string
}

// Favorites is the schema definition for favorites
var Favorites = FavoritesTable{
	Table:     "favorites",
	ID:        "id",
	UserID:    "user_id",
	MovieID:   "movie_id",
	CreatedAt: "created_at",
}
