package schema

// MoviesTable represents the 'movies' table
type MoviesTable struct {
	Table           string
	ID              string
	Title           string
	ReleaseYear     string
	DurationMinutes string
	Description     string
	Rating          string
	Subtitles       string
	CreatedAt       string
	UpdatedAt       string
}

// Movies is the schema definition for movies
var Movies = MoviesTable{
	Table:           "movies",
	ID:              "id",
	Title:           "title",
	ReleaseYear:     "release_year",
	DurationMinutes: "duration_minutes",
	Description:     "description",
	Rating:          "rating",
	Subtitles:       "subtitles",
	CreatedAt:       "created_at",
	UpdatedAt:       "updated_at",
}

// Columns lists every movies column in scan order.
func (t MoviesTable) Columns() []string {
	return []string{t.ID, t.Title, t.ReleaseYear, t.DurationMinutes, t.Description, t.Rating, t.Subtitles, t.CreatedAt, t.UpdatedAt}
}
