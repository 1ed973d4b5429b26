package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table        string
	ID           string
	Name         string
	PasswordHash string
	CreatedAt    string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:        "users",
	ID:           "id",
	Name:         "name",
	PasswordHash: "password_hash",
	CreatedAt:    "created_at",
}
