package schema

// CommentsTable represents the 'comments' table
type CommentsTable struct {
	Table     string
	ID        string
	MovieID   string
	UserID    string
	Comment   string
	CreatedAt string
	UpdatedAt string
}

// Comments is the schema definition for comments
var Comments = CommentsTable{
	Table:     "comments",
	ID:        "id",
	MovieID:   "movie_id",
	UserID:    "user_id",
	Comment:   "comment",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
