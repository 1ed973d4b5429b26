package schema

// Remote procedures exposed by the store and their parameter names.
const (
	RPCAuthenticateUser  = "authenticate_user"
	ParamUsername        = "username_param"
	ParamPassword        = "password_param"
	RPCSearchMovies      = "search_movies"
	RPCSearchMoviesCount = "search_movies_count"
	ParamSearchText      = "search_text"
	ParamOffset          = "offset_val"
	ParamLimit           = "limit_val"
	ColumnRank           = "rank"
)
