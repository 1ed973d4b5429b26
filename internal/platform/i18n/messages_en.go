// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Titles
	message.SetString(lang, TitleSuccess, "Success")
	message.SetString(lang, TitleError, "Error")
	message.SetString(lang, TitleInfo, "Info")
	message.SetString(lang, TitleWarning, "Warning")
	message.SetString(lang, TitleLoadError, "Load failed")
	message.SetString(lang, TitleSaveError, "Save failed")
	message.SetString(lang, TitleDeleteError, "Delete failed")
	message.SetString(lang, TitleAddError, "Add failed")
	message.SetString(lang, TitleSearchError, "Search failed")
	message.SetString(lang, TitleDetailsError, "Could not load details")
	message.SetString(lang, TitleLoginError, "Login failed")
	message.SetString(lang, TitleSubtitlesMissing, "Subtitles not found")
	message.SetString(lang, TitleSubtitlesError, "Subtitle search failed")

	// Catalog & favorites
	message.SetString(lang, FavoriteAdded, "\"%s\" added to favorites.")
	message.SetString(lang, FavoriteAlready, "\"%s\" is already in favorites!")
	message.SetString(lang, FavoriteRemoved, "\"%s\" removed from favorites.")
	message.SetString(lang, FavoriteConfirmRemove, "Remove \"%s\" from favorites?")
	message.SetString(lang, FavoriteLoadFailed, "Could not load favorites: %s")
	message.SetString(lang, FavoriteCheckFailed, "Could not check favorites: %s")
	message.SetString(lang, FavoriteAddFailed, "Could not add: %s")
	message.SetString(lang, FavoriteRemoveFailed, "Could not remove: %s")
	message.SetString(lang, FavoriteToggleBusy, "\"%s\" is already being updated.")
	message.SetString(lang, MovieConfirmDelete, "Delete the movie \"%s\"?")
	message.SetString(lang, MovieDeleted, "\"%s\" was deleted.")
	message.SetString(lang, MovieDeleteFailed, "Could not delete: %s")
	message.SetString(lang, MovieCascadeFailed, "\"%s\" was deleted, but its favorites or comments could not be removed.")
	message.SetString(lang, MovieLoadFailed, "Could not load the movie: %s")
	message.SetString(lang, MovieNotFound, "Movie not found.")
	message.SetString(lang, MovieUpdated, "\"%s\" was updated!")
	message.SetString(lang, MovieUpdateFailed, "Could not save: %s")
	message.SetString(lang, MovieNoChanges, "No changes to save.")
	message.SetString(lang, MovieAdded, "\"%s\" was added!")
	message.SetString(lang, MovieAddFailed, "Database error while adding: %s")
	message.SetString(lang, MovieRequired, "Missing required fields: title, description or rating.")
	message.SetString(lang, DatabaseFailed, "Database error: %s")

	// Creation draft
	message.SetString(lang, DraftSearchBlank, "Enter a movie title to search.")
	message.SetString(lang, DraftNotFound, "No movies found for \"%s\"")
	message.SetString(lang, DraftProviderFailed, "Kinopoisk API error: %s")
	message.SetString(lang, DraftSelected, "Details for \"%s\" loaded.")
	message.SetString(lang, DraftTitleYearRequired, "Movie title or release year is missing")
	message.SetString(lang, SubtitlesFound, "Subtitles for \"%s\" found and downloaded.")
	message.SetString(lang, SubtitlesMissing, "No subtitles found for \"%s\".")

	// Comments
	message.SetString(lang, CommentAdded, "Comment added!")
	message.SetString(lang, CommentAddFailed, "Could not add the comment.")
	message.SetString(lang, CommentUpdated, "Comment updated!")
	message.SetString(lang, CommentUpdateFailed, "Could not update the comment.")
	message.SetString(lang, CommentDeleted, "Comment deleted.")
	message.SetString(lang, CommentDeleteFailed, "Could not delete the comment.")
	message.SetString(lang, CommentConfirmDelete, "Delete this comment?")
	message.SetString(lang, CommentEmpty, "A comment cannot be empty.")
	message.SetString(lang, CommentAnonymous, "Anonymous")
	message.SetString(lang, CommentMovieMissing, "Movie not found or database error.")
	message.SetString(lang, CommentUnknownMovie, "Unknown movie")
	message.SetString(lang, CommentLoadFailed, "Could not load comments: %s")

	// Auth
	message.SetString(lang, AuthInvalidCredentials, "Invalid username or password")
	message.SetString(lang, AuthCredentialsRequired, "Enter a username and password.")
	message.SetString(lang, AuthRequired, "You need to log in.")
	message.SetString(lang, AuthServerError, "Server error: %s")

	// Form validation
	message.SetString(lang, FormTitleRequired, "Title is required")
	message.SetString(lang, FormDescriptionRequired, "Description is required")
	message.SetString(lang, FormYearMin, "Release year cannot be earlier than %d")
	message.SetString(lang, FormDurationPositive, "Duration must be greater than 0")
	message.SetString(lang, FormRatingRange, "Rating must be between 0 and 10")
	message.SetString(lang, FormRatingRequired, "Rating is required")
}
