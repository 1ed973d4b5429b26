// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

// # Notification Titles

const (
	TitleSuccess          = "title.success"
	TitleError            = "title.error"
	TitleInfo             = "title.info"
	TitleWarning          = "title.warning"
	TitleLoadError        = "title.load_error"
	TitleSaveError        = "title.save_error"
	TitleDeleteError      = "title.delete_error"
	TitleAddError         = "title.add_error"
	TitleSearchError      = "title.search_error"
	TitleDetailsError     = "title.details_error"
	TitleLoginError       = "title.login_error"
	TitleSubtitlesMissing = "title.subtitles_missing"
	TitleSubtitlesError   = "title.subtitles_error"
)

// # Catalog & Favorites

const (
	FavoriteAdded         = "favorites.added"
	FavoriteAlready       = "favorites.already"
	FavoriteRemoved       = "favorites.removed"
	FavoriteConfirmRemove = "favorites.confirm_remove"
	FavoriteLoadFailed    = "favorites.load_failed"
	FavoriteCheckFailed   = "favorites.check_failed"
	FavoriteAddFailed     = "favorites.add_failed"
	FavoriteRemoveFailed  = "favorites.remove_failed"
	FavoriteToggleBusy    = "favorites.toggle_busy"

	MovieConfirmDelete = "movie.confirm_delete"
	MovieDeleted       = "movie.deleted"
	MovieDeleteFailed  = "movie.delete_failed"
	MovieCascadeFailed = "movie.cascade_failed"
	MovieLoadFailed    = "movie.load_failed"
	MovieNotFound      = "movie.not_found"
	MovieUpdated       = "movie.updated"
	MovieUpdateFailed  = "movie.update_failed"
	MovieNoChanges     = "movie.no_changes"
	MovieAdded         = "movie.added"
	MovieAddFailed     = "movie.add_failed"
	MovieRequired      = "movie.required_fields"
	DatabaseFailed     = "remote.database_failed"
)

// # Creation Draft

const (
	DraftSearchBlank       = "draft.search_blank"
	DraftNotFound          = "draft.not_found"
	DraftProviderFailed    = "draft.provider_failed"
	DraftSelected          = "draft.selected"
	DraftTitleYearRequired = "draft.title_year_required"
	SubtitlesFound         = "subtitles.found"
	SubtitlesMissing       = "subtitles.missing"
)

// # Comments

const (
	CommentAdded         = "comments.added"
	CommentAddFailed     = "comments.add_failed"
	CommentUpdated       = "comments.updated"
	CommentUpdateFailed  = "comments.update_failed"
	CommentDeleted       = "comments.deleted"
	CommentDeleteFailed  = "comments.delete_failed"
	CommentConfirmDelete = "comments.confirm_delete"
	CommentEmpty         = "comments.empty"
	CommentAnonymous     = "comments.anonymous"
	CommentMovieMissing  = "comments.movie_missing"
	CommentUnknownMovie  = "comments.unknown_movie"
	CommentLoadFailed    = "comments.load_failed"
)

// # Auth

const (
	AuthInvalidCredentials  = "auth.invalid_credentials"
	AuthCredentialsRequired = "auth.credentials_required"
	AuthRequired            = "auth.required"
	AuthServerError         = "auth.server_error"
)

// # Form Validation

const (
	FormTitleRequired       = "form.title_required"
	FormDescriptionRequired = "form.description_required"
	FormYearMin             = "form.year_min"
	FormDurationPositive    = "form.duration_positive"
	FormRatingRange         = "form.rating_range"
	FormRatingRequired      = "form.rating_required"
)
